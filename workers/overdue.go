package workers

import (
	"log"
	"time"

	"lms-backend/models"
)

// FineStore is the slice of the store the sweeper needs.
type FineStore interface {
	ListOverdueRecords(asOf time.Time) ([]models.BorrowRecord, error)
	UpdateRecordFine(recordID, fine int) error
	GetSettings() (*models.Settings, error)
}

// OverdueSweeper keeps the fine column of overdue borrow records current.
// It only writes the accrued amount; nothing is sent anywhere.
type OverdueSweeper struct {
	Store    FineStore
	Interval time.Duration
	stop     chan struct{}
}

func NewOverdueSweeper(store FineStore) *OverdueSweeper {
	return &OverdueSweeper{
		Store:    store,
		Interval: 24 * time.Hour,
		stop:     make(chan struct{}),
	}
}

func (s *OverdueSweeper) Start() {
	go func() {
		s.Sweep(time.Now()) // initial pass
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *OverdueSweeper) Stop() {
	close(s.stop)
}

// Sweep recomputes fines for every overdue open record.
func (s *OverdueSweeper) Sweep(now time.Time) {
	records, err := s.Store.ListOverdueRecords(now)
	if err != nil {
		log.Println("Overdue sweep error:", err)
		return
	}
	if len(records) == 0 {
		return
	}

	finePerDay := 5000
	if settings, err := s.Store.GetSettings(); err == nil {
		finePerDay = settings.FinePerDay
	}

	for _, record := range records {
		daysLate := int(now.Sub(record.DueDate).Hours() / 24)
		if daysLate < 1 {
			daysLate = 1 // past due counts as at least one day
		}
		fine := daysLate * finePerDay
		if fine == record.Fine {
			continue
		}
		if err := s.Store.UpdateRecordFine(record.ID, fine); err != nil {
			log.Println("Overdue fine update error:", err)
		}
	}
}
