package services

import (
	"context"
	"strings"

	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/adapters/persistence/repositories"
	"campus-keyledger/internal/core/domain"
)

// RoomAvailability partitions the rooms of a floor by whether a key can be
// borrowed for them right now.
type RoomAvailability struct {
	Available   []*models.Room `json:"available"`
	Unavailable []*models.Room `json:"unavailable"`
}

// LedgerService answers room and key availability queries
type LedgerService struct {
	roomRepo *repositories.RoomRepository
	keyRepo  *repositories.KeyRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(roomRepo *repositories.RoomRepository, keyRepo *repositories.KeyRepository) *LedgerService {
	return &LedgerService{
		roomRepo: roomRepo,
		keyRepo:  keyRepo,
	}
}

// ListFloors lists distinct floor numbers, ascending
func (s *LedgerService) ListFloors(ctx context.Context) ([]int, error) {
	return s.roomRepo.ListFloors(ctx)
}

// ListAllRooms lists all rooms
func (s *LedgerService) ListAllRooms(ctx context.Context) ([]*models.Room, error) {
	return s.roomRepo.ListAll(ctx)
}

// ListRoomsByFloor lists rooms on a floor, most-borrowed first
func (s *LedgerService) ListRoomsByFloor(ctx context.Context, floor int) ([]*models.Room, error) {
	return s.roomRepo.ListByFloor(ctx, floor)
}

// SearchRooms searches rooms by name substring, optionally limited to one
// floor, ordered by name
func (s *LedgerService) SearchRooms(ctx context.Context, expression string, floor *int) ([]*models.Room, error) {
	return s.roomRepo.Search(ctx, expression, floor)
}

// ListAvailableRoomsByFloor lists rooms on a floor whose keys are not
// currently borrowed. With onlyOrdinary only key_class 0 keys count, so
// borrowed master keys never make a room unavailable.
func (s *LedgerService) ListAvailableRoomsByFloor(ctx context.Context, floor int, onlyOrdinary bool) ([]*models.Room, error) {
	return s.roomRepo.AvailableByFloor(ctx, floor, onlyOrdinary)
}

// RoomAvailabilityByFloor partitions the rooms of a floor into available
// and unavailable sets, both most-borrowed first
func (s *LedgerService) RoomAvailabilityByFloor(ctx context.Context, floor int, onlyOrdinary bool) (*RoomAvailability, error) {
	available, unavailable, err := s.roomRepo.AvailabilityByFloor(ctx, floor, onlyOrdinary, "")
	if err != nil {
		return nil, err
	}
	return &RoomAvailability{Available: available, Unavailable: unavailable}, nil
}

// SearchRoomAvailabilityByFloor is RoomAvailabilityByFloor with a substring
// filter on the room name applied before partitioning
func (s *LedgerService) SearchRoomAvailabilityByFloor(ctx context.Context, expression string, floor int, onlyOrdinary bool) (*RoomAvailability, error) {
	available, unavailable, err := s.roomRepo.AvailabilityByFloor(ctx, floor, onlyOrdinary, expression)
	if err != nil {
		return nil, err
	}
	return &RoomAvailability{Available: available, Unavailable: unavailable}, nil
}

// ListAllKeys lists all keys
func (s *LedgerService) ListAllKeys(ctx context.Context) ([]*models.Key, error) {
	return s.keyRepo.ListAll(ctx)
}

// ListBorrowableKeysByFloor lists keys on a floor with no open borrowing,
// ordered by the owning room's borrowings count descending
func (s *LedgerService) ListBorrowableKeysByFloor(ctx context.Context, floor int, onlyOrdinary bool) ([]*models.Key, error) {
	return s.keyRepo.BorrowableByFloor(ctx, floor, onlyOrdinary)
}

// splitSearchExpression tokenizes a name search on whitespace. One or two
// tokens are supported; anything else is rejected rather than silently
// matching nothing.
func splitSearchExpression(expression string) ([]string, error) {
	tokens := strings.Fields(expression)
	if len(tokens) == 0 || len(tokens) > 2 {
		return nil, domain.ErrSearchExpression
	}
	return tokens, nil
}
