package repositories

import (
	"context"
	"time"

	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BorrowingRepository handles borrowing data access. The two mutations run
// as single transactions so the at-most-one-open-borrowing-per-key
// invariant holds under concurrent calls.
type BorrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository creates a new borrowing repository
func NewBorrowingRepository(db *gorm.DB) *BorrowingRepository {
	return &BorrowingRepository{db: db}
}

// lockRow adds a SELECT ... FOR UPDATE clause on dialects that support it.
// SQLite has no row locks; its single-writer model already serializes the
// transactions below.
func lockRow(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// GetByID gets a borrowing by ID
func (r *BorrowingRepository) GetByID(ctx context.Context, id uint) (*models.Borrowing, error) {
	var borrowing models.Borrowing
	err := r.db.WithContext(ctx).
		Preload("Key").
		Preload("Authorization.Person").
		First(&borrowing, id).Error
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// Borrow opens a borrowing for a key under an authorization and increments
// the borrowings counter of the authorization's room, atomically. The key
// row is locked for the duration of the transaction so a concurrent Borrow
// for the same key serializes behind the open-borrowing check.
func (r *BorrowingRepository) Borrow(ctx context.Context, keyID, authorizationID uint, now time.Time) (*models.Borrowing, error) {
	var borrowing *models.Borrowing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var key models.Key
		if err := lockRow(tx).First(&key, keyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrKeyNotFound
			}
			return err
		}

		var open int64
		if err := tx.Model(&models.Borrowing{}).
			Where("key_id = ? AND returned IS NULL", keyID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return domain.ErrKeyAlreadyBorrowed
		}

		var authorization models.Authorization
		if err := tx.First(&authorization, authorizationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrAuthorizationNotFound
			}
			return err
		}

		borrowing = &models.Borrowing{
			KeyID:           keyID,
			AuthorizationID: authorizationID,
			Borrowed:        now,
		}
		if err := tx.Create(borrowing).Error; err != nil {
			return err
		}

		return tx.Model(&models.Room{}).
			Where("id = ?", authorization.RoomID).
			UpdateColumn("borrowings_count", gorm.Expr("borrowings_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return borrowing, nil
}

// Return closes an open borrowing. Closing twice fails.
func (r *BorrowingRepository) Return(ctx context.Context, id uint, now time.Time) (*models.Borrowing, error) {
	var borrowing models.Borrowing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx).First(&borrowing, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrBorrowingNotFound
			}
			return err
		}
		if borrowing.Returned != nil {
			return domain.ErrAlreadyReturned
		}

		borrowing.Returned = &now
		return tx.Model(&borrowing).Update("returned", now).Error
	})
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// Ongoing lists open borrowings, oldest first
func (r *BorrowingRepository) Ongoing(ctx context.Context) ([]*models.Borrowing, error) {
	var borrowings []*models.Borrowing
	err := r.db.WithContext(ctx).
		Preload("Key.Room").
		Preload("Authorization.Person").
		Where("returned IS NULL").
		Order("borrowed").
		Find(&borrowings).Error
	return borrowings, err
}

// OngoingOlderThan lists open borrowings that started before the cutoff,
// oldest first
func (r *BorrowingRepository) OngoingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Borrowing, error) {
	var borrowings []*models.Borrowing
	err := r.db.WithContext(ctx).
		Preload("Key.Room").
		Preload("Authorization.Person").
		Where("returned IS NULL AND borrowed < ?", cutoff).
		Order("borrowed").
		Find(&borrowings).Error
	return borrowings, err
}

// ListAll lists every borrowing with the relations the export needs
func (r *BorrowingRepository) ListAll(ctx context.Context) ([]*models.Borrowing, error) {
	var borrowings []*models.Borrowing
	err := r.db.WithContext(ctx).
		Preload("Key").
		Preload("Authorization.Person").
		Find(&borrowings).Error
	return borrowings, err
}
