package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"lms-backend/models"
)

func (s *MySQLStore) CreateUser(username, passwordHash, role string) (*models.User, error) {
	// Check if username is taken
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM users WHERE username = ?", username); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       "active",
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO users (id, username, password_hash, role, linked_member_id, status, created_at, last_login) VALUES (?, ?, ?, ?, NULL, ?, ?, NULL)",
		user.ID, user.Username, user.PasswordHash, user.Role, user.Status, user.CreatedAt,
	)
	if err != nil {
		// Race between the count check and the insert still hits the unique key.
		if strings.Contains(err.Error(), "Duplicate entry") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

func (s *MySQLStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user,
		"SELECT id, username, password_hash, role, linked_member_id, status, created_at, last_login FROM users WHERE username = ?",
		username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MySQLStore) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user,
		"SELECT id, username, password_hash, role, linked_member_id, status, created_at, last_login FROM users WHERE id = ?",
		id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all accounts without password hashes.
func (s *MySQLStore) ListUsers() ([]models.User, error) {
	users := []models.User{}
	err := s.db.Select(&users,
		"SELECT id, username, role, linked_member_id, status, created_at, last_login FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MySQLStore) TouchLastLogin(id string) error {
	_, err := s.db.Exec("UPDATE users SET last_login = ? WHERE id = ?", time.Now().UTC(), id)
	return err
}

// UpdateUser applies the admin-editable fields. Admin accounts cannot be
// targeted; an update that matches no row reports ErrUserNotFound.
func (s *MySQLStore) UpdateUser(id string, update models.UserUpdate, passwordHash string) error {
	sets := []string{}
	args := []interface{}{}

	if update.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *update.Username)
	}
	if passwordHash != "" {
		sets = append(sets, "password_hash = ?")
		args = append(args, passwordHash)
	}
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *update.Status)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := s.db.Exec(
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ? AND role != 'admin'", args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser removes an account. Admin accounts cannot be targeted.
func (s *MySQLStore) DeleteUser(id string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ? AND role != 'admin'", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
