package store

import (
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"lms-backend/models"
)

var (
	ErrUserExists      = errors.New("username already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookNotFound    = errors.New("book not found")
	ErrBookUnavailable = errors.New("book unavailable")
	ErrRequestNotFound = errors.New("borrow request not found")
	ErrRequestDecided  = errors.New("borrow request already decided")
	ErrRecordNotFound  = errors.New("borrow record not found")
	ErrRecordReturned  = errors.New("borrow record already returned")
	ErrMemberNotFound  = errors.New("member not found")
)

type MySQLStore struct {
	db *sqlx.DB
}

func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}

func (s *MySQLStore) Ping() error {
	return s.db.Ping()
}

func (s *MySQLStore) InitSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(36) PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL,
			linked_member_id CHAR(36),
			status VARCHAR(50) NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL,
			last_login DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			author VARCHAR(255) NOT NULL,
			isbn VARCHAR(50) NOT NULL,
			category VARCHAR(100),
			quantity INT NOT NULL DEFAULT 1,
			available_copies INT NOT NULL DEFAULT 1,
			added_by CHAR(36),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS borrow_requests (
			id INT AUTO_INCREMENT PRIMARY KEY,
			book_id INT NOT NULL,
			user_id CHAR(36) NOT NULL,
			status VARCHAR(50) NOT NULL,
			requested_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS borrow_records (
			id INT AUTO_INCREMENT PRIMARY KEY,
			member_id CHAR(36) NOT NULL,
			book_id INT NOT NULL,
			borrow_date DATETIME NOT NULL,
			due_date DATETIME NOT NULL,
			return_date DATETIME,
			status VARCHAR(50) NOT NULL,
			fine INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id CHAR(36) PRIMARY KEY,
			member_id VARCHAR(50),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(50),
			address VARCHAR(255),
			joined_date DATETIME NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INT PRIMARY KEY,
			loan_period_days INT NOT NULL DEFAULT 14,
			fine_per_day INT NOT NULL DEFAULT 5000
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %v, error: %w", query, err)
		}
	}

	// Insert default settings if not exists
	var settingsCount int
	if err := s.db.Get(&settingsCount, "SELECT COUNT(*) FROM settings"); err != nil {
		return err
	}
	if settingsCount == 0 {
		if _, err := s.db.Exec("INSERT INTO settings (id, loan_period_days, fine_per_day) VALUES (1, 14, 5000)"); err != nil {
			return err
		}
	}

	return nil
}

// Reset empties every table except settings. Test support.
func (s *MySQLStore) Reset() error {
	tables := []string{"borrow_records", "borrow_requests", "books", "members", "users"}
	for _, table := range tables {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLStore) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	if err := s.db.Get(&settings, "SELECT id, loan_period_days, fine_per_day FROM settings WHERE id = 1"); err != nil {
		return nil, err
	}
	return &settings, nil
}
