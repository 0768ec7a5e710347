package repositories

import (
	"context"
	"time"

	"campus-keyledger/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AuthorizationRepository handles authorization data access
type AuthorizationRepository struct {
	db *gorm.DB
}

// NewAuthorizationRepository creates a new authorization repository
func NewAuthorizationRepository(db *gorm.DB) *AuthorizationRepository {
	return &AuthorizationRepository{db: db}
}

// Create creates a new authorization
func (r *AuthorizationRepository) Create(ctx context.Context, authorization *models.Authorization) error {
	return r.db.WithContext(ctx).Create(authorization).Error
}

// GetByID gets an authorization by ID
func (r *AuthorizationRepository) GetByID(ctx context.Context, id uint) (*models.Authorization, error) {
	var authorization models.Authorization
	err := r.db.WithContext(ctx).
		Preload("Person").
		Preload("Room").
		Preload("Origin").
		First(&authorization, id).Error
	if err != nil {
		return nil, err
	}
	return &authorization, nil
}

// SetExpiration moves the expiration of an authorization. Used for the
// logical delete: authorizations are never removed because borrowings
// reference them.
func (r *AuthorizationRepository) SetExpiration(ctx context.Context, id uint, expiration time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Authorization{}).
		Where("id = ?", id).
		Update("expiration", expiration).Error
}

// ListByOrigin lists authorizations granted by one origin
func (r *AuthorizationRepository) ListByOrigin(ctx context.Context, originID uint) ([]*models.Authorization, error) {
	var authorizations []*models.Authorization
	err := r.db.WithContext(ctx).
		Preload("Person").
		Preload("Room").
		Where("origin_id = ?", originID).
		Find(&authorizations).Error
	return authorizations, err
}

// ValidForRoom lists non-expired authorizations for a room with their
// borrowings preloaded so callers can order by usage.
func (r *AuthorizationRepository) ValidForRoom(ctx context.Context, roomID uint, now time.Time) ([]*models.Authorization, error) {
	var authorizations []*models.Authorization
	err := r.db.WithContext(ctx).
		Preload("Person").
		Preload("Origin").
		Preload("Borrowings").
		Where("room_id = ? AND expiration > ?", roomID, now).
		Find(&authorizations).Error
	return authorizations, err
}

// PrioritizedForRoom ranks the valid authorizations of a room, one row per
// person, by the person's total borrowing count descending, then origin id
// descending (origin rows are seeded in ascending trust order), then
// expiration descending. A person holding several authorizations for the
// room is represented by their most-borrowed one, same tie-breaks.
//
//	SELECT authorizations.*
//	FROM authorizations
//	JOIN (
//	    SELECT authorizations.id AS id,
//	           SUM(COUNT(borrowings.id)) OVER (PARTITION BY person_id) AS person_borrow_count,
//	           ROW_NUMBER() OVER (PARTITION BY person_id
//	               ORDER BY COUNT(borrowings.id) DESC, origin_id DESC, expiration DESC) AS person_rank
//	    FROM authorizations
//	    JOIN authorized_persons ON authorized_persons.id = authorizations.person_id
//	    LEFT JOIN borrowings ON borrowings.authorization_id = authorizations.id
//	    WHERE room_id = ? AND expiration > ?
//	    GROUP BY authorizations.id
//	) ranked ON ranked.id = authorizations.id
//	WHERE ranked.person_rank = 1
//	ORDER BY ranked.person_borrow_count DESC, origin_id DESC, expiration DESC
//
// The inner query groups by the authorizations primary key, so every
// selected column is functionally dependent on the group key and the query
// runs under MySQL's ONLY_FULL_GROUP_BY as well as on SQLite. Window
// functions require MySQL 8 / SQLite 3.25.
//
// nameTokens, when non-empty, restrict the ranking by person name.
func (r *AuthorizationRepository) PrioritizedForRoom(ctx context.Context, roomID uint, now time.Time, nameTokens []string) ([]*models.Authorization, error) {
	ranked := r.db.WithContext(ctx).
		Model(&models.Authorization{}).
		Select("authorizations.id AS id, " +
			"SUM(COUNT(borrowings.id)) OVER (PARTITION BY authorizations.person_id) AS person_borrow_count, " +
			"ROW_NUMBER() OVER (PARTITION BY authorizations.person_id " +
			"ORDER BY COUNT(borrowings.id) DESC, authorizations.origin_id DESC, authorizations.expiration DESC) AS person_rank").
		Joins("JOIN authorized_persons ON authorized_persons.id = authorizations.person_id").
		Joins("LEFT JOIN borrowings ON borrowings.authorization_id = authorizations.id").
		Where("authorizations.room_id = ? AND authorizations.expiration > ?", roomID, now).
		Group("authorizations.id")

	if len(nameTokens) > 0 {
		ranked = filterByPersonName(ranked, nameTokens)
	}

	q := r.db.WithContext(ctx).
		Model(&models.Authorization{}).
		Select("authorizations.*").
		Joins("JOIN (?) AS ranked ON ranked.id = authorizations.id", ranked).
		Where("ranked.person_rank = 1").
		Order("ranked.person_borrow_count DESC, authorizations.origin_id DESC, authorizations.expiration DESC")

	var authorizations []*models.Authorization
	err := q.Preload("Person").Preload("Origin").Find(&authorizations).Error
	return authorizations, err
}

// SearchByPersonName lists authorizations whose person matches the
// tokenized name search, ordered by surname
func (r *AuthorizationRepository) SearchByPersonName(ctx context.Context, tokens []string) ([]*models.Authorization, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Authorization{}).
		Joins("JOIN authorized_persons ON authorized_persons.id = authorizations.person_id").
		Order("authorized_persons.surname")

	var authorizations []*models.Authorization
	err := filterByPersonName(q, tokens).
		Preload("Person").
		Preload("Room").
		Preload("Origin").
		Find(&authorizations).Error
	return authorizations, err
}

// OverviewRow is one line of the valid-authorizations overview
type OverviewRow struct {
	ID         uint      `json:"id"`
	Firstname  string    `json:"firstname"`
	Surname    string    `json:"surname"`
	Origin     string    `json:"origin"`
	Created    time.Time `json:"created"`
	Expiration time.Time `json:"expiration"`
	Room       string    `json:"room"`
}

// Overview lists all valid authorizations joined with person, origin and
// room names, ready for display.
func (r *AuthorizationRepository) Overview(ctx context.Context, now time.Time) ([]*OverviewRow, error) {
	var rows []*OverviewRow
	err := r.db.WithContext(ctx).
		Model(&models.Authorization{}).
		Select("authorizations.id, authorized_persons.firstname, authorized_persons.surname, "+
			"authorization_origins.name AS origin, authorizations.created, authorizations.expiration, "+
			"rooms.name AS room").
		Joins("JOIN authorized_persons ON authorized_persons.id = authorizations.person_id").
		Joins("JOIN authorization_origins ON authorization_origins.id = authorizations.origin_id").
		Joins("JOIN rooms ON rooms.id = authorizations.room_id").
		Where("authorizations.expiration > ?", now).
		Scan(&rows).Error
	return rows, err
}
