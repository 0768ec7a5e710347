package services

import (
	"context"
	"log"
	"time"

	"campus-keyledger/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// LedgerAutoService runs scheduled ledger housekeeping: a daily summary of
// open borrowings and a periodic sweep flagging keys that have been out too
// long. It only observes and logs; ledger state is never mutated here.
type LedgerAutoService struct {
	borrowingRepo    *repositories.BorrowingRepository
	refreshTokenRepo *repositories.RefreshTokenRepository
	summarySpec      string
	overdueAfter     time.Duration
	cron             *cron.Cron
	stopChan         chan struct{}
}

// NewLedgerAutoService creates a new auto service. summarySpec is a cron
// expression for the daily summary; overdueAfter is how long a borrowing
// may stay open before it gets flagged.
func NewLedgerAutoService(
	borrowingRepo *repositories.BorrowingRepository,
	refreshTokenRepo *repositories.RefreshTokenRepository,
	summarySpec string,
	overdueAfter time.Duration,
) *LedgerAutoService {
	return &LedgerAutoService{
		borrowingRepo:    borrowingRepo,
		refreshTokenRepo: refreshTokenRepo,
		summarySpec:      summarySpec,
		overdueAfter:     overdueAfter,
		cron:             cron.New(),
		stopChan:         make(chan struct{}),
	}
}

// Start schedules the daily summary and launches the overdue sweep loop
func (s *LedgerAutoService) Start() error {
	if _, err := s.cron.AddFunc(s.summarySpec, s.logDailySummary); err != nil {
		return err
	}
	s.cron.Start()

	go s.runOverdueLoop()

	log.Printf("LedgerAutoService started (summary %q, overdue after %s)", s.summarySpec, s.overdueAfter)
	return nil
}

// Stop stops the cron scheduler and the sweep loop
func (s *LedgerAutoService) Stop() {
	s.cron.Stop()
	close(s.stopChan)
	log.Println("LedgerAutoService stopped")
}

func (s *LedgerAutoService) runOverdueLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flagOverdueBorrowings()
		case <-s.stopChan:
			return
		}
	}
}

func (s *LedgerAutoService) logDailySummary() {
	ctx := context.Background()

	borrowings, err := s.borrowingRepo.Ongoing(ctx)
	if err != nil {
		log.Printf("daily summary query error: %v", err)
		return
	}
	log.Printf("daily summary: %d keys currently out", len(borrowings))

	// Expired refresh tokens pile up otherwise; this is the one place that
	// deletes them.
	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("refresh token cleanup error: %v", err)
	}
}

func (s *LedgerAutoService) flagOverdueBorrowings() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.overdueAfter)

	borrowings, err := s.borrowingRepo.OngoingOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("overdue sweep query error: %v", err)
		return
	}

	for _, b := range borrowings {
		name := "unknown borrower"
		if b.Authorization != nil && b.Authorization.Person != nil {
			name = b.Authorization.Person.FullName()
		}
		room := ""
		if b.Key != nil && b.Key.Room != nil {
			room = b.Key.Room.Name
		}
		log.Printf("overdue: borrowing %d (room %s, %s) open since %s", b.ID, room, name, b.Borrowed.Format(time.RFC3339))
	}
}
