package models

import "time"

type Book struct {
	ID              int       `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	ISBN            string    `json:"isbn" db:"isbn"`
	Category        string    `json:"category" db:"category"`
	Quantity        int       `json:"quantity" db:"quantity"`
	AvailableCopies int       `json:"available_copies" db:"available_copies"`
	AddedBy         string    `json:"added_by" db:"added_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// BookSummary is the projection served on the public listing.
type BookSummary struct {
	ID              int    `json:"id" db:"id"`
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	Category        string `json:"category" db:"category"`
	AvailableCopies int    `json:"available_copies" db:"available_copies"`
}

// BookUpdate carries the editable fields for a partial update.
// Nil means "leave unchanged".
type BookUpdate struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	ISBN     *string `json:"isbn"`
	Category *string `json:"category"`
	Quantity *int    `json:"quantity"`
}
