package repositories

import (
	"context"

	"campus-keyledger/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// KeyRepository handles key data access
type KeyRepository struct {
	db *gorm.DB
}

// NewKeyRepository creates a new key repository
func NewKeyRepository(db *gorm.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

// Create creates a new key
func (r *KeyRepository) Create(ctx context.Context, key *models.Key) error {
	return r.db.WithContext(ctx).Create(key).Error
}

// GetByID gets a key by ID with its room
func (r *KeyRepository) GetByID(ctx context.Context, id uint) (*models.Key, error) {
	var key models.Key
	err := r.db.WithContext(ctx).Preload("Room").First(&key, id).Error
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// ListAll lists all keys
func (r *KeyRepository) ListAll(ctx context.Context) ([]*models.Key, error) {
	var keys []*models.Key
	err := r.db.WithContext(ctx).Preload("Room").Find(&keys).Error
	return keys, err
}

// BorrowableByFloor lists keys on a floor with no open borrowing, ordered
// by the owning room's borrowings count descending.
func (r *KeyRepository) BorrowableByFloor(ctx context.Context, floor int, onlyOrdinary bool) ([]*models.Key, error) {
	openKeyIDs := r.db.WithContext(ctx).
		Model(&models.Borrowing{}).
		Select("key_id").
		Where("returned IS NULL")

	q := r.db.WithContext(ctx).
		Preload("Room").
		Joins("JOIN rooms ON rooms.id = keys.room_id").
		Where("rooms.floor = ?", floor).
		Where("keys.id NOT IN (?)", openKeyIDs).
		Order("rooms.borrowings_count DESC")
	if onlyOrdinary {
		q = q.Where("keys.key_class = ?", models.KeyClassOrdinary)
	}

	var keys []*models.Key
	err := q.Find(&keys).Error
	return keys, err
}
