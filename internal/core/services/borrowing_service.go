package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/adapters/persistence/repositories"
	"campus-keyledger/internal/core/domain"

	"gorm.io/gorm"
)

const (
	exportDateFormat = "02.01.2006"
	exportTimeFormat = "15:04"
)

// BorrowingService handles the borrow/return ledger
type BorrowingService struct {
	borrowingRepo *repositories.BorrowingRepository
}

// NewBorrowingService creates a new borrowing service
func NewBorrowingService(borrowingRepo *repositories.BorrowingRepository) *BorrowingService {
	return &BorrowingService{borrowingRepo: borrowingRepo}
}

// Add opens a borrowing of a key under an authorization. Fails with
// domain.ErrKeyAlreadyBorrowed while the key has an open borrowing. The
// borrowing row and the room counter increment commit together.
func (s *BorrowingService) Add(ctx context.Context, keyID, authorizationID uint) (*models.Borrowing, error) {
	return s.borrowingRepo.Borrow(ctx, keyID, authorizationID, time.Now().UTC())
}

// Return closes an open borrowing. Not idempotent: a second call for the
// same borrowing fails with domain.ErrAlreadyReturned.
func (s *BorrowingService) Return(ctx context.Context, borrowingID uint) (*models.Borrowing, error) {
	return s.borrowingRepo.Return(ctx, borrowingID, time.Now().UTC())
}

// GetByID gets a borrowing by ID
func (s *BorrowingService) GetByID(ctx context.Context, id uint) (*models.Borrowing, error) {
	borrowing, err := s.borrowingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBorrowingNotFound
		}
		return nil, err
	}
	return borrowing, nil
}

// Ongoing lists open borrowings, oldest first
func (s *BorrowingService) Ongoing(ctx context.Context) ([]*models.Borrowing, error) {
	return s.borrowingRepo.Ongoing(ctx)
}

// ExportRows emits one row per borrowing for spreadsheet generation:
// borrowed date, borrowed time, key registration number, borrower full
// name, returned date and time (empty while the borrowing is open).
// Rendering the spreadsheet itself is left to the consumer.
func (s *BorrowingService) ExportRows(ctx context.Context) ([][]string, error) {
	borrowings, err := s.borrowingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(borrowings))
	for _, b := range borrowings {
		row := []string{
			b.Borrowed.Format(exportDateFormat),
			b.Borrowed.Format(exportTimeFormat),
			"",
			"",
			"",
			"",
		}
		if b.Key != nil {
			row[2] = strconv.Itoa(b.Key.RegistrationNumber)
		}
		if b.Authorization != nil && b.Authorization.Person != nil {
			row[3] = b.Authorization.Person.FullName()
		}
		if b.Returned != nil {
			row[4] = b.Returned.Format(exportDateFormat)
			row[5] = b.Returned.Format(exportTimeFormat)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
