package repositories

import (
	"context"

	"campus-keyledger/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// PersonRepository handles authorized person data access
type PersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create creates a new person
func (r *PersonRepository) Create(ctx context.Context, person *models.AuthorizedPerson) error {
	return r.db.WithContext(ctx).Create(person).Error
}

// GetByID gets a person by ID
func (r *PersonRepository) GetByID(ctx context.Context, id uint) (*models.AuthorizedPerson, error) {
	var person models.AuthorizedPerson
	err := r.db.WithContext(ctx).Preload("Workplace").First(&person, id).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// UpdateFields partially updates a person; only the given columns change
func (r *PersonRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.AuthorizedPerson{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// ListAll lists all persons
func (r *PersonRepository) ListAll(ctx context.Context) ([]*models.AuthorizedPerson, error) {
	var persons []*models.AuthorizedPerson
	err := r.db.WithContext(ctx).Find(&persons).Error
	return persons, err
}

// Search lists persons matching the tokenized name search, ordered by
// surname
func (r *PersonRepository) Search(ctx context.Context, tokens []string) ([]*models.AuthorizedPerson, error) {
	q := r.db.WithContext(ctx).
		Model(&models.AuthorizedPerson{}).
		Order("authorized_persons.surname")

	var persons []*models.AuthorizedPerson
	err := filterByPersonName(q, tokens).Find(&persons).Error
	return persons, err
}
