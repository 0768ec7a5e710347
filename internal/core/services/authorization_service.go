package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/adapters/persistence/repositories"
	"campus-keyledger/internal/core/domain"

	"gorm.io/gorm"
)

// AuthorizationService handles authorization grants and priority queries
type AuthorizationService struct {
	authorizationRepo *repositories.AuthorizationRepository
	personRepo        *repositories.PersonRepository
	roomRepo          *repositories.RoomRepository
}

// NewAuthorizationService creates a new authorization service
func NewAuthorizationService(
	authorizationRepo *repositories.AuthorizationRepository,
	personRepo *repositories.PersonRepository,
	roomRepo *repositories.RoomRepository,
) *AuthorizationService {
	return &AuthorizationService{
		authorizationRepo: authorizationRepo,
		personRepo:        personRepo,
		roomRepo:          roomRepo,
	}
}

// AddAuthorizationInput represents add authorization input
type AddAuthorizationInput struct {
	PersonID   uint      `json:"person_id" validate:"required"`
	RoomID     uint      `json:"room_id" validate:"required"`
	Expiration time.Time `json:"expiration" validate:"required"`
	OriginID   uint      `json:"origin_id"`
}

// Add grants a person the right to borrow keys for a room until the
// expiration. Multiple concurrent authorizations for the same person and
// room are allowed.
func (s *AuthorizationService) Add(ctx context.Context, input *AddAuthorizationInput) (*models.Authorization, error) {
	if _, err := s.personRepo.GetByID(ctx, input.PersonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}
	if _, err := s.roomRepo.GetByID(ctx, input.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}

	originID := input.OriginID
	if originID == 0 {
		originID = models.OriginAdmin
	}

	authorization := &models.Authorization{
		PersonID:   input.PersonID,
		RoomID:     input.RoomID,
		OriginID:   originID,
		Expiration: input.Expiration,
	}
	if err := s.authorizationRepo.Create(ctx, authorization); err != nil {
		return nil, err
	}
	return authorization, nil
}

// Invalidate expires an authorization now. A logical delete: the row stays
// because borrowings reference it. Invalidating an already-expired
// authorization changes nothing observable.
func (s *AuthorizationService) Invalidate(ctx context.Context, id uint) error {
	if _, err := s.authorizationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAuthorizationNotFound
		}
		return err
	}
	return s.authorizationRepo.SetExpiration(ctx, id, time.Now().UTC())
}

// ListAdminGranted lists authorizations granted by the admin origin
func (s *AuthorizationService) ListAdminGranted(ctx context.Context) ([]*models.Authorization, error) {
	return s.authorizationRepo.ListByOrigin(ctx, models.OriginAdmin)
}

// ValidForRoom lists non-expired authorizations for a room, fewest prior
// borrowings first, giving priority to under-used authorizations.
func (s *AuthorizationService) ValidForRoom(ctx context.Context, roomID uint) ([]*models.Authorization, error) {
	authorizations, err := s.authorizationRepo.ValidForRoom(ctx, roomID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	sort.SliceStable(authorizations, func(i, j int) bool {
		return len(authorizations[i].Borrowings) < len(authorizations[j].Borrowings)
	})
	return authorizations, nil
}

// PrioritizedForRoom ranks the valid authorizations of a room by borrowing
// count descending, then origin id descending, then expiration descending
func (s *AuthorizationService) PrioritizedForRoom(ctx context.Context, roomID uint) ([]*models.Authorization, error) {
	return s.authorizationRepo.PrioritizedForRoom(ctx, roomID, time.Now().UTC(), nil)
}

// SearchPrioritizedForRoom restricts the prioritized ranking to persons
// matching the name search expression
func (s *AuthorizationService) SearchPrioritizedForRoom(ctx context.Context, expression string, roomID uint) ([]*models.Authorization, error) {
	tokens, err := splitSearchExpression(expression)
	if err != nil {
		return nil, err
	}
	return s.authorizationRepo.PrioritizedForRoom(ctx, roomID, time.Now().UTC(), tokens)
}

// Search lists authorizations whose person matches the name search
// expression, ordered by surname
func (s *AuthorizationService) Search(ctx context.Context, expression string) ([]*models.Authorization, error) {
	tokens, err := splitSearchExpression(expression)
	if err != nil {
		return nil, err
	}
	return s.authorizationRepo.SearchByPersonName(ctx, tokens)
}

// Overview lists all valid authorizations joined with person, origin and
// room names
func (s *AuthorizationService) Overview(ctx context.Context) ([]*repositories.OverviewRow, error) {
	return s.authorizationRepo.Overview(ctx, time.Now().UTC())
}
