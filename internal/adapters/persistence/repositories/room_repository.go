package repositories

import (
	"context"

	"campus-keyledger/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// RoomRepository handles room data access
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID gets a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Type").
		Preload("Faculty").
		Preload("Keys").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListFloors lists distinct floor numbers, ascending
func (r *RoomRepository) ListFloors(ctx context.Context) ([]int, error) {
	var floors []int
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Distinct("floor").
		Order("floor").
		Pluck("floor", &floors).Error
	return floors, err
}

// ListAll lists all rooms
func (r *RoomRepository) ListAll(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).Find(&rooms).Error
	return rooms, err
}

// ListByFloor lists rooms on a floor, most-borrowed first
func (r *RoomRepository) ListByFloor(ctx context.Context, floor int) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Where("floor = ?", floor).
		Order("borrowings_count DESC").
		Find(&rooms).Error
	return rooms, err
}

// Search searches rooms by name substring, ordered by name. A non-nil
// floor restricts the result to that floor.
func (r *RoomRepository) Search(ctx context.Context, expression string, floor *int) ([]*models.Room, error) {
	q := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+expression+"%").
		Order("name")
	if floor != nil {
		q = q.Where("floor = ?", *floor)
	}

	var rooms []*models.Room
	err := q.Find(&rooms).Error
	return rooms, err
}

// unavailableRoomIDs builds a subquery selecting ids of rooms with at least
// one open borrowing on a key. With onlyOrdinary only key_class 0 keys count.
func (r *RoomRepository) unavailableRoomIDs(ctx context.Context, onlyOrdinary bool) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Key{}).
		Select("keys.room_id").
		Joins("JOIN borrowings ON borrowings.key_id = keys.id").
		Where("borrowings.returned IS NULL")
	if onlyOrdinary {
		q = q.Where("keys.key_class = ?", models.KeyClassOrdinary)
	}
	return q
}

// keyedRoomIDs builds a subquery selecting ids of rooms that have at least
// one (optionally ordinary) key. Rooms without a matching key are never
// listed as available.
func (r *RoomRepository) keyedRoomIDs(ctx context.Context, onlyOrdinary bool) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Key{}).
		Select("keys.room_id")
	if onlyOrdinary {
		q = q.Where("keys.key_class = ?", models.KeyClassOrdinary)
	}
	return q
}

// AvailableByFloor lists rooms on a floor whose keys are not currently
// borrowed, most-borrowed first.
func (r *RoomRepository) AvailableByFloor(ctx context.Context, floor int, onlyOrdinary bool) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Where("floor = ?", floor).
		Where("id IN (?)", r.keyedRoomIDs(ctx, onlyOrdinary)).
		Where("id NOT IN (?)", r.unavailableRoomIDs(ctx, onlyOrdinary)).
		Order("borrowings_count DESC").
		Find(&rooms).Error
	return rooms, err
}

// AvailabilityByFloor partitions the rooms of a floor into available and
// unavailable sets, both most-borrowed first. A non-empty expression adds a
// substring filter on the room name before partitioning.
func (r *RoomRepository) AvailabilityByFloor(ctx context.Context, floor int, onlyOrdinary bool, expression string) (available, unavailable []*models.Room, err error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Where("floor = ?", floor)
		if expression != "" {
			q = q.Where("name LIKE ?", "%"+expression+"%")
		}
		return q
	}

	err = base().
		Where("id IN (?)", r.unavailableRoomIDs(ctx, onlyOrdinary)).
		Order("borrowings_count DESC").
		Find(&unavailable).Error
	if err != nil {
		return nil, nil, err
	}

	err = base().
		Where("id IN (?)", r.keyedRoomIDs(ctx, onlyOrdinary)).
		Where("id NOT IN (?)", r.unavailableRoomIDs(ctx, onlyOrdinary)).
		Order("borrowings_count DESC").
		Find(&available).Error
	if err != nil {
		return nil, nil, err
	}

	return available, unavailable, nil
}
