package models

import "time"

// Member is a library member profile, optionally linked from a User account.
type Member struct {
	ID         string    `json:"id" db:"id"`
	MemberID   string    `json:"member_id" db:"member_id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Address    string    `json:"address" db:"address"`
	JoinedDate time.Time `json:"joined_date" db:"joined_date"`
	Status     string    `json:"status" db:"status"`
}
