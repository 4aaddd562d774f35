package models

import "time"

type User struct {
	ID             string     `json:"id" db:"id"`
	Username       string     `json:"username" db:"username"`
	PasswordHash   string     `json:"-" db:"password_hash"` // never serialized
	Role           string     `json:"role" db:"role"`       // "admin" or "user"
	LinkedMemberID *string    `json:"linked_member_id" db:"linked_member_id"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	LastLogin      *time.Time `json:"last_login" db:"last_login"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional, default "user"
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message    string `json:"message"`
	Token      string `json:"token"`
	Role       string `json:"role"`
	RedirectTo string `json:"redirect_to"`
}

// UserUpdate carries the admin-editable fields. Nil means "leave unchanged".
type UserUpdate struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Status   *string `json:"status"`
}
