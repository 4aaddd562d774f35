package handlers_test

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"lms-backend/models"
	"lms-backend/store"
)

// fakeStore is an in-memory handlers.Store for tests.
type fakeStore struct {
	users    map[string]*models.User
	books    map[int]*models.Book
	requests map[int]*models.BorrowRequest
	records  map[int]*models.BorrowRecord
	members  map[string]*models.Member
	settings models.Settings
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*models.User{},
		books:    map[int]*models.Book{},
		requests: map[int]*models.BorrowRequest{},
		records:  map[int]*models.BorrowRecord{},
		members:  map[string]*models.Member{},
		settings: models.Settings{ID: 1, LoanPeriodDays: 14, FinePerDay: 5000},
	}
}

func (f *fakeStore) nextInt() int {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(username, passwordHash, role string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return nil, store.ErrUserExists
		}
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       "active",
		CreatedAt:    time.Now(),
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeStore) GetUserByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeStore) ListUsers() ([]models.User, error) {
	users := []models.User{}
	for _, u := range f.users {
		copied := *u
		copied.PasswordHash = ""
		users = append(users, copied)
	}
	return users, nil
}

func (f *fakeStore) TouchLastLogin(id string) error {
	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.LastLogin = &now
	}
	return nil
}

func (f *fakeStore) UpdateUser(id string, update models.UserUpdate, passwordHash string) error {
	u, ok := f.users[id]
	if !ok || u.Role == "admin" {
		return store.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	if update.Status != nil {
		u.Status = *update.Status
	}
	return nil
}

func (f *fakeStore) DeleteUser(id string) error {
	u, ok := f.users[id]
	if !ok || u.Role == "admin" {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) CreateBook(book *models.Book) error {
	book.ID = f.nextInt()
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now
	f.books[book.ID] = book
	return nil
}

func (f *fakeStore) GetBookByID(id int) (*models.Book, error) {
	if b, ok := f.books[id]; ok {
		return b, nil
	}
	return nil, store.ErrBookNotFound
}

func (f *fakeStore) UpdateBook(id int, update models.BookUpdate) error {
	b, ok := f.books[id]
	if !ok {
		return store.ErrBookNotFound
	}
	if update.Title != nil {
		b.Title = *update.Title
	}
	if update.Author != nil {
		b.Author = *update.Author
	}
	if update.ISBN != nil {
		b.ISBN = *update.ISBN
	}
	if update.Category != nil {
		b.Category = *update.Category
	}
	if update.Quantity != nil {
		b.Quantity = *update.Quantity
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) DeleteBook(id int) error {
	if _, ok := f.books[id]; !ok {
		return store.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeStore) ListBookSummaries() ([]models.BookSummary, error) {
	summaries := []models.BookSummary{}
	for _, b := range f.books {
		summaries = append(summaries, models.BookSummary{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			Category:        b.Category,
			AvailableCopies: b.AvailableCopies,
		})
	}
	return summaries, nil
}

func (f *fakeStore) SearchBooks(query string, availableOnly bool) ([]models.Book, error) {
	books := []models.Book{}
	for _, b := range f.books {
		if query != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(query)) {
			continue
		}
		if availableOnly && b.AvailableCopies <= 0 {
			continue
		}
		books = append(books, *b)
	}
	return books, nil
}

func (f *fakeStore) CreateBorrowRequest(userID string, bookID int) (*models.BorrowRequest, error) {
	b, ok := f.books[bookID]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	if b.AvailableCopies <= 0 {
		return nil, store.ErrBookUnavailable
	}
	request := &models.BorrowRequest{
		ID:          f.nextInt(),
		BookID:      bookID,
		UserID:      userID,
		Status:      models.RequestPending,
		RequestedAt: time.Now(),
	}
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeStore) ApproveBorrowRequest(requestID int) (*models.BorrowRecord, error) {
	request, ok := f.requests[requestID]
	if !ok {
		return nil, store.ErrRequestNotFound
	}
	if request.Status != models.RequestPending {
		return nil, store.ErrRequestDecided
	}
	book, ok := f.books[request.BookID]
	if !ok || book.AvailableCopies <= 0 {
		return nil, store.ErrBookUnavailable
	}
	book.AvailableCopies--
	now := time.Now()
	record := &models.BorrowRecord{
		ID:         f.nextInt(),
		MemberID:   request.UserID,
		BookID:     request.BookID,
		BorrowDate: now,
		DueDate:    now.AddDate(0, 0, f.settings.LoanPeriodDays),
		Status:     models.RecordBorrowed,
	}
	f.records[record.ID] = record
	request.Status = models.RequestApproved
	return record, nil
}

func (f *fakeStore) RejectBorrowRequest(requestID int) error {
	request, ok := f.requests[requestID]
	if !ok {
		return store.ErrRequestNotFound
	}
	if request.Status != models.RequestPending {
		return store.ErrRequestDecided
	}
	request.Status = models.RequestRejected
	return nil
}

func (f *fakeStore) ReturnBorrowRecord(recordID int) (*models.BorrowRecord, error) {
	record, ok := f.records[recordID]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	if record.Status == models.RecordReturned {
		return nil, store.ErrRecordReturned
	}
	now := time.Now()
	record.ReturnDate = &now
	record.Status = models.RecordReturned
	if book, ok := f.books[record.BookID]; ok {
		book.AvailableCopies++
	}
	return record, nil
}

func (f *fakeStore) ListBorrowsByUser(userID string) ([]models.BorrowRecord, error) {
	records := []models.BorrowRecord{}
	for _, r := range f.records {
		if r.MemberID == userID {
			records = append(records, *r)
		}
	}
	return records, nil
}

func (f *fakeStore) ListBorrowActivity() (*models.BorrowActivity, error) {
	activity := &models.BorrowActivity{
		Requested: []models.RequestActivity{},
		Borrowed:  []models.RecordActivity{},
		Returned:  []models.RecordActivity{},
	}
	for _, r := range f.requests {
		if r.Status != models.RequestPending {
			continue
		}
		activity.Requested = append(activity.Requested, models.RequestActivity{
			ID: r.ID, BookID: r.BookID, UserID: r.UserID, Status: r.Status,
			RequestedAt: r.RequestedAt,
			BookName:    f.bookName(r.BookID), AvailableQuantity: f.bookAvailable(r.BookID),
			Username: f.username(r.UserID),
		})
	}
	for _, rec := range f.records {
		row := models.RecordActivity{
			ID: rec.ID, BookID: rec.BookID, MemberID: rec.MemberID,
			BorrowDate: rec.BorrowDate, DueDate: rec.DueDate, ReturnDate: rec.ReturnDate,
			Status: rec.Status, Fine: rec.Fine,
			BookName: f.bookName(rec.BookID), AvailableQuantity: f.bookAvailable(rec.BookID),
			Username: f.username(rec.MemberID),
		}
		if rec.Status == models.RecordBorrowed {
			activity.Borrowed = append(activity.Borrowed, row)
		} else {
			activity.Returned = append(activity.Returned, row)
		}
	}
	return activity, nil
}

func (f *fakeStore) bookName(id int) string {
	if b, ok := f.books[id]; ok {
		return b.Title
	}
	return "Unknown"
}

func (f *fakeStore) bookAvailable(id int) int {
	if b, ok := f.books[id]; ok {
		return b.AvailableCopies
	}
	return 0
}

func (f *fakeStore) username(id string) string {
	if u, ok := f.users[id]; ok {
		return u.Username
	}
	return "Unknown"
}

func (f *fakeStore) ListOverdueRecords(asOf time.Time) ([]models.BorrowRecord, error) {
	records := []models.BorrowRecord{}
	for _, r := range f.records {
		if r.Status == models.RecordBorrowed && r.DueDate.Before(asOf) {
			records = append(records, *r)
		}
	}
	return records, nil
}

func (f *fakeStore) UpdateRecordFine(recordID, fine int) error {
	if r, ok := f.records[recordID]; ok {
		r.Fine = fine
		return nil
	}
	return store.ErrRecordNotFound
}

func (f *fakeStore) GetSettings() (*models.Settings, error) {
	settings := f.settings
	return &settings, nil
}

func (f *fakeStore) CreateMember(member *models.Member) error {
	member.ID = "m-" + strconv.Itoa(f.nextInt())
	member.JoinedDate = time.Now()
	if member.Status == "" {
		member.Status = "active"
	}
	f.members[member.ID] = member
	return nil
}

func (f *fakeStore) GetMemberByID(id string) (*models.Member, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, store.ErrMemberNotFound
}

func (f *fakeStore) ListMembers() ([]models.Member, error) {
	members := []models.Member{}
	for _, m := range f.members {
		members = append(members, *m)
	}
	return members, nil
}

func (f *fakeStore) UpdateMember(member *models.Member) error {
	if _, ok := f.members[member.ID]; !ok {
		return store.ErrMemberNotFound
	}
	f.members[member.ID] = member
	return nil
}

func (f *fakeStore) DeleteMember(id string) error {
	if _, ok := f.members[id]; !ok {
		return store.ErrMemberNotFound
	}
	delete(f.members, id)
	return nil
}
