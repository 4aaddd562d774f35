package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lms-backend/middleware"
	"lms-backend/models"
	"lms-backend/store"
)

type BookHandler struct {
	Store Store
}

func NewBookHandler(store Store) *BookHandler {
	return &BookHandler{Store: store}
}

type addBookPayload struct {
	Title           string       `json:"title"`
	Author          string       `json:"author"`
	ISBN            string       `json:"isbn"`
	Category        string       `json:"category"`
	Quantity        *int         `json:"quantity"`
	AvailableCopies *json.Number `json:"available_copies"`
}

// CreateBook adds a catalog entry. Title, author and isbn are required;
// quantity defaults to 1 and available_copies to the quantity.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var payload addBookPayload
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if payload.Title == "" || payload.Author == "" || payload.ISBN == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}

	available := quantity
	if payload.AvailableCopies != nil {
		n, err := payload.AvailableCopies.Int64()
		if err != nil {
			respondError(w, http.StatusBadRequest, "available_copies must be a number")
			return
		}
		available = int(n)
	}

	book := &models.Book{
		Title:           payload.Title,
		Author:          payload.Author,
		ISBN:            payload.ISBN,
		Category:        payload.Category,
		Quantity:        quantity,
		AvailableCopies: available,
		AddedBy:         claims.UserID,
	}

	if err := h.Store.CreateBook(book); err != nil {
		log.Println("Create book error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusCreated, "Book added successfully")
}

// BookItem dispatches /api/books/{id} by method.
func (h *BookHandler) BookItem(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r.URL.Path, "/api/books/")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateBook(w, r, id)
	case http.MethodDelete:
		h.deleteBook(w, r, id)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request, id int) {
	var payload models.BookUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if err := h.Store.UpdateBook(id, payload); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Println("Update book error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusOK, "Book updated successfully")
}

func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.Store.DeleteBook(id); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Println("Delete book error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusOK, "Book deleted successfully")
}

// ListBooks serves the public catalog projection. No authentication needed.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.ListBookSummaries()
	if err != nil {
		log.Println("List books error:", err)
		respondError(w, http.StatusInternalServerError, "Error fetching books")
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// SearchBooks matches titles case-insensitively. Standard users only see
// books with copies available; admins see everything.
func (h *BookHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	isAdmin := false
	if user, err := h.Store.GetUserByID(claims.UserID); err == nil {
		isAdmin = user.Role == "admin"
	}

	books, err := h.Store.SearchBooks(r.URL.Query().Get("q"), !isAdmin)
	if err != nil {
		log.Println("Search books error:", err)
		respondError(w, http.StatusInternalServerError, "Error searching books")
		return
	}
	respondJSON(w, http.StatusOK, books)
}
