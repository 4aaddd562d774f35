package store

import (
	"database/sql"
	"errors"
	"time"

	"lms-backend/models"
)

// CreateBorrowRequest checks availability and files a pending request in one
// transaction, so the check cannot race a concurrent approval.
func (s *MySQLStore) CreateBorrowRequest(userID string, bookID int) (*models.BorrowRequest, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var available int
	err = tx.Get(&available, "SELECT available_copies FROM books WHERE id = ?", bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	if available <= 0 {
		return nil, ErrBookUnavailable
	}

	request := &models.BorrowRequest{
		BookID:      bookID,
		UserID:      userID,
		Status:      models.RequestPending,
		RequestedAt: time.Now().UTC(),
	}
	res, err := tx.Exec(
		"INSERT INTO borrow_requests (book_id, user_id, status, requested_at) VALUES (?, ?, ?, ?)",
		request.BookID, request.UserID, request.Status, request.RequestedAt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	request.ID = int(id)

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return request, nil
}

// ApproveBorrowRequest turns a pending request into a borrow record, takes
// one copy off the shelf and marks the request approved, all in a single
// transaction. A request that was already decided reports ErrRequestDecided;
// a book with no copies left reports ErrBookUnavailable.
func (s *MySQLStore) ApproveBorrowRequest(requestID int) (*models.BorrowRecord, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var request models.BorrowRequest
	err = tx.Get(&request,
		"SELECT id, book_id, user_id, status, requested_at FROM borrow_requests WHERE id = ? FOR UPDATE", requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestPending {
		return nil, ErrRequestDecided
	}

	var loanPeriodDays int
	if err := tx.Get(&loanPeriodDays, "SELECT loan_period_days FROM settings WHERE id = 1"); err != nil {
		loanPeriodDays = 14
	}

	// Guarded decrement keeps available_copies from going negative.
	res, err := tx.Exec(
		"UPDATE books SET available_copies = available_copies - 1 WHERE id = ? AND available_copies > 0",
		request.BookID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrBookUnavailable
	}

	now := time.Now().UTC()
	record := &models.BorrowRecord{
		MemberID:   request.UserID,
		BookID:     request.BookID,
		BorrowDate: now,
		DueDate:    now.AddDate(0, 0, loanPeriodDays),
		Status:     models.RecordBorrowed,
	}
	res, err = tx.Exec(
		"INSERT INTO borrow_records (member_id, book_id, borrow_date, due_date, return_date, status, fine) VALUES (?, ?, ?, ?, NULL, ?, 0)",
		record.MemberID, record.BookID, record.BorrowDate, record.DueDate, record.Status,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	record.ID = int(id)

	if _, err := tx.Exec(
		"UPDATE borrow_requests SET status = ? WHERE id = ?", models.RequestApproved, requestID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return record, nil
}

// RejectBorrowRequest marks a pending request rejected.
func (s *MySQLStore) RejectBorrowRequest(requestID int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	err = tx.Get(&status, "SELECT status FROM borrow_requests WHERE id = ? FOR UPDATE", requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	if status != models.RequestPending {
		return ErrRequestDecided
	}

	if _, err := tx.Exec(
		"UPDATE borrow_requests SET status = ? WHERE id = ?", models.RequestRejected, requestID); err != nil {
		return err
	}
	return tx.Commit()
}

// ReturnBorrowRecord closes a borrow record and puts the copy back on the
// shelf. A record that was already returned reports ErrRecordReturned, so a
// repeated return cannot increment the counter twice.
func (s *MySQLStore) ReturnBorrowRecord(recordID int) (*models.BorrowRecord, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var record models.BorrowRecord
	err = tx.Get(&record,
		"SELECT id, member_id, book_id, borrow_date, due_date, return_date, status, fine FROM borrow_records WHERE id = ? FOR UPDATE", recordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if record.Status == models.RecordReturned {
		return nil, ErrRecordReturned
	}

	returnDate := time.Now().UTC()
	if _, err := tx.Exec(
		"UPDATE borrow_records SET return_date = ?, status = ? WHERE id = ?",
		returnDate, models.RecordReturned, recordID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		"UPDATE books SET available_copies = available_copies + 1 WHERE id = ?", record.BookID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	record.Status = models.RecordReturned
	record.ReturnDate = &returnDate
	return &record, nil
}

func (s *MySQLStore) ListBorrowsByUser(userID string) ([]models.BorrowRecord, error) {
	records := []models.BorrowRecord{}
	err := s.db.Select(&records,
		"SELECT id, member_id, book_id, borrow_date, due_date, return_date, status, fine FROM borrow_records WHERE member_id = ? ORDER BY borrow_date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListBorrowActivity builds the admin overview. Books or users that no
// longer resolve come back as "Unknown" instead of dropping the row.
func (s *MySQLStore) ListBorrowActivity() (*models.BorrowActivity, error) {
	activity := &models.BorrowActivity{
		Requested: []models.RequestActivity{},
		Borrowed:  []models.RecordActivity{},
		Returned:  []models.RecordActivity{},
	}

	err := s.db.Select(&activity.Requested, `
		SELECT r.id, r.book_id, r.user_id, r.status, r.requested_at,
			COALESCE(b.title, 'Unknown') AS book_name,
			COALESCE(b.available_copies, 0) AS available_quantity,
			COALESCE(u.username, 'Unknown') AS username
		FROM borrow_requests r
		LEFT JOIN books b ON b.id = r.book_id
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.status = ?
		ORDER BY r.requested_at`, models.RequestPending)
	if err != nil {
		return nil, err
	}

	recordQuery := `
		SELECT rec.id, rec.book_id, rec.member_id, rec.borrow_date, rec.due_date,
			rec.return_date, rec.status, rec.fine,
			COALESCE(b.title, 'Unknown') AS book_name,
			COALESCE(b.available_copies, 0) AS available_quantity,
			COALESCE(u.username, 'Unknown') AS username
		FROM borrow_records rec
		LEFT JOIN books b ON b.id = rec.book_id
		LEFT JOIN users u ON u.id = rec.member_id
		WHERE rec.status = ?
		ORDER BY rec.borrow_date`

	if err := s.db.Select(&activity.Borrowed, recordQuery, models.RecordBorrowed); err != nil {
		return nil, err
	}
	if err := s.db.Select(&activity.Returned, recordQuery, models.RecordReturned); err != nil {
		return nil, err
	}

	return activity, nil
}

// ListOverdueRecords returns open records past their due date.
func (s *MySQLStore) ListOverdueRecords(asOf time.Time) ([]models.BorrowRecord, error) {
	records := []models.BorrowRecord{}
	err := s.db.Select(&records,
		"SELECT id, member_id, book_id, borrow_date, due_date, return_date, status, fine FROM borrow_records WHERE status = ? AND due_date < ?",
		models.RecordBorrowed, asOf)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateRecordFine writes the accrued fine for a record.
func (s *MySQLStore) UpdateRecordFine(recordID, fine int) error {
	_, err := s.db.Exec("UPDATE borrow_records SET fine = ? WHERE id = ?", fine, recordID)
	return err
}
