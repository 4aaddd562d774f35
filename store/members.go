package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"lms-backend/models"
)

func (s *MySQLStore) CreateMember(member *models.Member) error {
	member.ID = uuid.NewString()
	member.JoinedDate = time.Now().UTC()
	if member.Status == "" {
		member.Status = "active"
	}

	_, err := s.db.Exec(
		"INSERT INTO members (id, member_id, name, email, phone, address, joined_date, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		member.ID, member.MemberID, member.Name, member.Email, member.Phone, member.Address, member.JoinedDate, member.Status,
	)
	return err
}

func (s *MySQLStore) GetMemberByID(id string) (*models.Member, error) {
	var member models.Member
	err := s.db.Get(&member,
		"SELECT id, member_id, name, email, phone, address, joined_date, status FROM members WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MySQLStore) ListMembers() ([]models.Member, error) {
	members := []models.Member{}
	err := s.db.Select(&members,
		"SELECT id, member_id, name, email, phone, address, joined_date, status FROM members ORDER BY joined_date")
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (s *MySQLStore) UpdateMember(member *models.Member) error {
	res, err := s.db.Exec(
		"UPDATE members SET member_id = ?, name = ?, email = ?, phone = ?, address = ?, status = ? WHERE id = ?",
		member.MemberID, member.Name, member.Email, member.Phone, member.Address, member.Status, member.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (s *MySQLStore) DeleteMember(id string) error {
	res, err := s.db.Exec("DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
