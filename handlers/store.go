package handlers

import (
	"time"

	"lms-backend/models"
)

// Store is the persistence surface the handlers run against. *store.MySQLStore
// is the production implementation; tests inject an in-memory one.
type Store interface {
	// Accounts
	CreateUser(username, passwordHash, role string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers() ([]models.User, error)
	TouchLastLogin(id string) error
	UpdateUser(id string, update models.UserUpdate, passwordHash string) error
	DeleteUser(id string) error

	// Catalog
	CreateBook(book *models.Book) error
	GetBookByID(id int) (*models.Book, error)
	UpdateBook(id int, update models.BookUpdate) error
	DeleteBook(id int) error
	ListBookSummaries() ([]models.BookSummary, error)
	SearchBooks(query string, availableOnly bool) ([]models.Book, error)

	// Borrow workflow
	CreateBorrowRequest(userID string, bookID int) (*models.BorrowRequest, error)
	ApproveBorrowRequest(requestID int) (*models.BorrowRecord, error)
	RejectBorrowRequest(requestID int) error
	ReturnBorrowRecord(recordID int) (*models.BorrowRecord, error)
	ListBorrowsByUser(userID string) ([]models.BorrowRecord, error)
	ListBorrowActivity() (*models.BorrowActivity, error)
	ListOverdueRecords(asOf time.Time) ([]models.BorrowRecord, error)
	UpdateRecordFine(recordID, fine int) error

	// Members
	CreateMember(member *models.Member) error
	GetMemberByID(id string) (*models.Member, error)
	ListMembers() ([]models.Member, error)
	UpdateMember(member *models.Member) error
	DeleteMember(id string) error
}
