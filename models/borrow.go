package models

import "time"

// Borrow request statuses.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Borrow record statuses.
const (
	RecordBorrowed = "borrowed"
	RecordReturned = "returned"
)

type BorrowRequest struct {
	ID          int       `json:"id" db:"id"`
	BookID      int       `json:"book_id" db:"book_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Status      string    `json:"status" db:"status"`
	RequestedAt time.Time `json:"requested_at" db:"requested_at"`
}

type BorrowRecord struct {
	ID         int        `json:"id" db:"id"`
	MemberID   string     `json:"member_id" db:"member_id"` // borrowing user's id
	BookID     int        `json:"book_id" db:"book_id"`
	BorrowDate time.Time  `json:"borrow_date" db:"borrow_date"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnDate *time.Time `json:"return_date" db:"return_date"`
	Status     string     `json:"status" db:"status"`
	Fine       int        `json:"fine" db:"fine"`
}

// RequestActivity is a pending borrow request enriched with book and user
// info for the admin overview. Missing references come back as "Unknown".
type RequestActivity struct {
	ID                int       `json:"id" db:"id"`
	BookID            int       `json:"book_id" db:"book_id"`
	UserID            string    `json:"user_id" db:"user_id"`
	Status            string    `json:"status" db:"status"`
	RequestedAt       time.Time `json:"requested_at" db:"requested_at"`
	BookName          string    `json:"book_name" db:"book_name"`
	AvailableQuantity int       `json:"available_quantity" db:"available_quantity"`
	Username          string    `json:"username" db:"username"`
}

// RecordActivity is a borrow record enriched the same way.
type RecordActivity struct {
	ID                int        `json:"id" db:"id"`
	BookID            int        `json:"book_id" db:"book_id"`
	MemberID          string     `json:"member_id" db:"member_id"`
	BorrowDate        time.Time  `json:"borrow_date" db:"borrow_date"`
	DueDate           time.Time  `json:"due_date" db:"due_date"`
	ReturnDate        *time.Time `json:"return_date" db:"return_date"`
	Status            string     `json:"status" db:"status"`
	Fine              int        `json:"fine" db:"fine"`
	BookName          string     `json:"book_name" db:"book_name"`
	AvailableQuantity int        `json:"available_quantity" db:"available_quantity"`
	Username          string     `json:"username" db:"username"`
}

// BorrowActivity groups the admin overview: pending requests, books
// currently out, and completed returns.
type BorrowActivity struct {
	Requested []RequestActivity `json:"requested"`
	Borrowed  []RecordActivity  `json:"borrowed"`
	Returned  []RecordActivity  `json:"returned"`
}
