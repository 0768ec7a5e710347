package handlers

import (
	"campus-keyledger/internal/core/services"
	"campus-keyledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PersonHandler handles authorized person endpoints
type PersonHandler struct {
	personService *services.PersonService
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(personService *services.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// List handles listing all persons or searching them by name
func (h *PersonHandler) List(c *fiber.Ctx) error {
	if expression := c.Query("q"); expression != "" {
		persons, err := h.personService.Search(c.Context(), expression)
		if err != nil {
			return mapServiceError(c, err)
		}
		return response.Success(c, "Persons retrieved", persons)
	}

	persons, err := h.personService.ListAll(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Persons retrieved", persons)
}

// Get handles getting a person by ID
func (h *PersonHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid person ID")
	}

	person, err := h.personService.GetByID(c.Context(), uint(id))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Person retrieved", person)
}

// Create handles registering a new person
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var input services.AddPersonInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	person, err := h.personService.Add(c.Context(), &input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Created(c, "Person created", person)
}

// Update handles a partial person update
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid person ID")
	}

	var input services.UpdatePersonInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	person, err := h.personService.Update(c.Context(), uint(id), &input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Person updated", person)
}
