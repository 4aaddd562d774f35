package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-backend/handlers"
	"lms-backend/models"
)

func TestCreateBook(t *testing.T) {
	f := newFakeStore()
	admin := seedUser(t, f, "admin", "secret", "admin")
	h := handlers.NewBookHandler(f)

	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPost, "/api/books", map[string]interface{}{
		"title":    "The Go Programming Language",
		"author":   "Donovan & Kernighan",
		"isbn":     "978-0134190440",
		"category": "programming",
		"quantity": 3,
	}), admin)
	h.CreateBook(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	books, err := f.SearchBooks("", false)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 3, books[0].Quantity)
	assert.Equal(t, 3, books[0].AvailableCopies, "available_copies defaults to quantity")
	assert.Equal(t, admin.ID, books[0].AddedBy)
}

func TestCreateBookMissingFields(t *testing.T) {
	f := newFakeStore()
	admin := seedUser(t, f, "admin", "secret", "admin")
	h := handlers.NewBookHandler(f)

	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPost, "/api/books", map[string]interface{}{
		"title": "No Author",
	}), admin)
	h.CreateBook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookBadAvailableCopies(t *testing.T) {
	f := newFakeStore()
	admin := seedUser(t, f, "admin", "secret", "admin")
	h := handlers.NewBookHandler(f)

	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPost, "/api/books", map[string]interface{}{
		"title":            "Bad Copies",
		"author":           "Author",
		"isbn":             "978-1",
		"available_copies": "not-a-number",
	}), admin)
	h.CreateBook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBookNotFound(t *testing.T) {
	f := newFakeStore()
	admin := seedUser(t, f, "admin", "secret", "admin")
	h := handlers.NewBookHandler(f)

	rec := httptest.NewRecorder()
	title := "New Title"
	req := asUser(jsonRequest(t, http.MethodPut, "/api/books/999", models.BookUpdate{Title: &title}), admin)
	h.BookItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBook(t *testing.T) {
	f := newFakeStore()
	admin := seedUser(t, f, "admin", "secret", "admin")
	book := seedBook(t, f, "Old Title", 2, 2)
	h := handlers.NewBookHandler(f)

	rec := httptest.NewRecorder()
	title := "New Title"
	req := asUser(jsonRequest(t, http.MethodPut, "/api/books/1", models.BookUpdate{Title: &title}), admin)
	h.BookItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	updated, err := f.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
}

func TestDeleteBookNotFound(t *testing.T) {
	f := newFakeStore()
	admin := seedUser(t, f, "admin", "secret", "admin")
	h := handlers.NewBookHandler(f)

	rec := httptest.NewRecorder()
	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/books/42", nil), admin)
	h.BookItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBooksProjection(t *testing.T) {
	f := newFakeStore()
	seedBook(t, f, "Visible", 2, 1)
	h := handlers.NewBookHandler(f)

	rec := httptest.NewRecorder()
	h.ListBooks(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var books []map[string]interface{}
	decodeBody(t, rec, &books)
	require.Len(t, books, 1)
	assert.Contains(t, books[0], "title")
	assert.Contains(t, books[0], "available_copies")
	assert.NotContains(t, books[0], "isbn", "listing is a projection")
}

func TestSearchBooksRoleFiltering(t *testing.T) {
	f := newFakeStore()
	admin := seedUser(t, f, "admin", "secret", "admin")
	user := seedUser(t, f, "bob", "secret", "user")
	seedBook(t, f, "In Stock", 1, 1)
	seedBook(t, f, "Out of Stock", 1, 0)
	h := handlers.NewBookHandler(f)

	// Standard users only see available books.
	rec := httptest.NewRecorder()
	h.SearchBooks(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/books/search", nil), user))
	require.Equal(t, http.StatusOK, rec.Code)
	var visible []models.Book
	decodeBody(t, rec, &visible)
	require.Len(t, visible, 1)
	assert.Equal(t, "In Stock", visible[0].Title)

	// Admins see everything.
	rec = httptest.NewRecorder()
	h.SearchBooks(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/books/search", nil), admin))
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Book
	decodeBody(t, rec, &all)
	assert.Len(t, all, 2)
}

func TestSearchBooksTitleMatch(t *testing.T) {
	f := newFakeStore()
	user := seedUser(t, f, "bob", "secret", "user")
	seedBook(t, f, "The Go Programming Language", 1, 1)
	seedBook(t, f, "Learning Python", 1, 1)
	h := handlers.NewBookHandler(f)

	rec := httptest.NewRecorder()
	h.SearchBooks(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/books/search?q=GO", nil), user))

	require.Equal(t, http.StatusOK, rec.Code)
	var books []models.Book
	decodeBody(t, rec, &books)
	require.Len(t, books, 1, "match is case-insensitive")
	assert.Equal(t, "The Go Programming Language", books[0].Title)
}
