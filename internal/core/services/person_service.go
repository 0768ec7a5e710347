package services

import (
	"context"
	"errors"

	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/adapters/persistence/repositories"
	"campus-keyledger/internal/core/domain"

	"gorm.io/gorm"
)

// PersonService handles the authorized persons register
type PersonService struct {
	personRepo *repositories.PersonRepository
}

// NewPersonService creates a new person service
func NewPersonService(personRepo *repositories.PersonRepository) *PersonService {
	return &PersonService{personRepo: personRepo}
}

// AddPersonInput represents add person input
type AddPersonInput struct {
	Firstname   string `json:"firstname" validate:"required"`
	Surname     string `json:"surname" validate:"required"`
	WorkplaceID *uint  `json:"workplace_id,omitempty"`
}

// Add registers a new authorized person
func (s *PersonService) Add(ctx context.Context, input *AddPersonInput) (*models.AuthorizedPerson, error) {
	if input.Firstname == "" || input.Surname == "" {
		return nil, domain.ErrInvalidInput
	}

	person := &models.AuthorizedPerson{
		Firstname:   input.Firstname,
		Surname:     input.Surname,
		WorkplaceID: input.WorkplaceID,
	}
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

// UpdatePersonInput represents partial update input; nil fields stay
// untouched
type UpdatePersonInput struct {
	Firstname   *string `json:"firstname,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	WorkplaceID *uint   `json:"workplace_id,omitempty"`
}

// Update changes only the provided fields of a person
func (s *PersonService) Update(ctx context.Context, id uint, input *UpdatePersonInput) (*models.AuthorizedPerson, error) {
	if _, err := s.personRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Firstname != nil {
		fields["firstname"] = *input.Firstname
	}
	if input.Surname != nil {
		fields["surname"] = *input.Surname
	}
	if input.WorkplaceID != nil {
		fields["workplace_id"] = *input.WorkplaceID
	}

	if len(fields) > 0 {
		if err := s.personRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.personRepo.GetByID(ctx, id)
}

// GetByID gets a person by ID
func (s *PersonService) GetByID(ctx context.Context, id uint) (*models.AuthorizedPerson, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

// ListAll lists all persons
func (s *PersonService) ListAll(ctx context.Context) ([]*models.AuthorizedPerson, error) {
	return s.personRepo.ListAll(ctx)
}

// Search lists persons matching the name search expression, ordered by
// surname
func (s *PersonService) Search(ctx context.Context, expression string) ([]*models.AuthorizedPerson, error) {
	tokens, err := splitSearchExpression(expression)
	if err != nil {
		return nil, err
	}
	return s.personRepo.Search(ctx, tokens)
}
