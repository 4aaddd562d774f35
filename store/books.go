package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"lms-backend/models"
)

func (s *MySQLStore) CreateBook(book *models.Book) error {
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	res, err := s.db.Exec(
		"INSERT INTO books (title, author, isbn, category, quantity, available_copies, added_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		book.Title, book.Author, book.ISBN, book.Category, book.Quantity, book.AvailableCopies, book.AddedBy, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	book.ID = int(id)
	return nil
}

func (s *MySQLStore) GetBookByID(id int) (*models.Book, error) {
	var book models.Book
	err := s.db.Get(&book,
		"SELECT id, title, author, isbn, category, quantity, available_copies, added_by, created_at, updated_at FROM books WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook applies a partial update restricted to the editable fields.
// An unknown id reports ErrBookNotFound instead of silently succeeding.
func (s *MySQLStore) UpdateBook(id int, update models.BookUpdate) error {
	sets := []string{}
	args := []interface{}{}

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *update.Author)
	}
	if update.ISBN != nil {
		sets = append(sets, "isbn = ?")
		args = append(args, *update.ISBN)
	}
	if update.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *update.Category)
	}
	if update.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *update.Quantity)
	}

	// Existence check first so an unchanged update still reports success.
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM books WHERE id = ?", id); err != nil {
		return err
	}
	if count == 0 {
		return ErrBookNotFound
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)
	_, err := s.db.Exec("UPDATE books SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

func (s *MySQLStore) DeleteBook(id int) error {
	res, err := s.db.Exec("DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// ListBookSummaries returns the public catalog projection.
func (s *MySQLStore) ListBookSummaries() ([]models.BookSummary, error) {
	books := []models.BookSummary{}
	err := s.db.Select(&books,
		"SELECT id, title, author, category, available_copies FROM books ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	return books, nil
}

// SearchBooks matches the title case-insensitively. With availableOnly set,
// books with no copies on the shelf are filtered out.
func (s *MySQLStore) SearchBooks(query string, availableOnly bool) ([]models.Book, error) {
	sqlQuery := "SELECT id, title, author, isbn, category, quantity, available_copies, added_by, created_at, updated_at FROM books"
	where := []string{}
	args := []interface{}{}

	if query != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(query)+"%")
	}
	if availableOnly {
		where = append(where, "available_copies > 0")
	}
	if len(where) > 0 {
		sqlQuery += " WHERE " + strings.Join(where, " AND ")
	}
	sqlQuery += " ORDER BY created_at DESC"

	books := []models.Book{}
	if err := s.db.Select(&books, sqlQuery, args...); err != nil {
		return nil, err
	}
	return books, nil
}
