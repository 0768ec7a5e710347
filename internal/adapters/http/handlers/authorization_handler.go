package handlers

import (
	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/core/services"
	"campus-keyledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizationHandler handles authorization endpoints
type AuthorizationHandler struct {
	authorizationService *services.AuthorizationService
}

// NewAuthorizationHandler creates a new authorization handler
func NewAuthorizationHandler(authorizationService *services.AuthorizationService) *AuthorizationHandler {
	return &AuthorizationHandler{authorizationService: authorizationService}
}

// List handles listing admin-granted authorizations or searching them by
// person name
func (h *AuthorizationHandler) List(c *fiber.Ctx) error {
	if expression := c.Query("q"); expression != "" {
		authorizations, err := h.authorizationService.Search(c.Context(), expression)
		if err != nil {
			return mapServiceError(c, err)
		}
		return response.Success(c, "Authorizations retrieved", authorizations)
	}

	authorizations, err := h.authorizationService.ListAdminGranted(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Authorizations retrieved", authorizations)
}

// Overview handles the valid-authorizations display listing
func (h *AuthorizationHandler) Overview(c *fiber.Ctx) error {
	rows, err := h.authorizationService.Overview(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Authorization overview retrieved", rows)
}

// ValidForRoom handles listing valid authorizations for a room,
// least-used first
func (h *AuthorizationHandler) ValidForRoom(c *fiber.Ctx) error {
	roomID, err := c.ParamsInt("roomId")
	if err != nil {
		return response.BadRequest(c, "Invalid room ID")
	}

	authorizations, err := h.authorizationService.ValidForRoom(c.Context(), uint(roomID))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Valid authorizations retrieved", authorizations)
}

// PrioritizedForRoom handles the ranked authorization listing for a room,
// optionally restricted by a person name search
func (h *AuthorizationHandler) PrioritizedForRoom(c *fiber.Ctx) error {
	roomID, err := c.ParamsInt("roomId")
	if err != nil {
		return response.BadRequest(c, "Invalid room ID")
	}

	var authorizations []*models.Authorization
	if expression := c.Query("q"); expression != "" {
		authorizations, err = h.authorizationService.SearchPrioritizedForRoom(c.Context(), expression, uint(roomID))
	} else {
		authorizations, err = h.authorizationService.PrioritizedForRoom(c.Context(), uint(roomID))
	}
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Prioritized authorizations retrieved", authorizations)
}

// Create handles granting a new authorization
func (h *AuthorizationHandler) Create(c *fiber.Ctx) error {
	var input services.AddAuthorizationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.PersonID == 0 || input.RoomID == 0 || input.Expiration.IsZero() {
		return response.BadRequest(c, "person_id, room_id and expiration are required")
	}

	authorization, err := h.authorizationService.Add(c.Context(), &input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Created(c, "Authorization created", authorization)
}

// Invalidate handles expiring an authorization now (logical delete)
func (h *AuthorizationHandler) Invalidate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid authorization ID")
	}

	if err := h.authorizationService.Invalidate(c.Context(), uint(id)); err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Authorization invalidated", nil)
}
