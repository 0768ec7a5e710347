package handlers

import (
	"errors"

	"campus-keyledger/internal/core/services"
	"campus-keyledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "username and password are required")
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Login successful", result)
}

// RefreshRequest represents refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles refresh token exchange
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "refresh_token is required")
	}

	result, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrTokenRevoked) {
			return response.Unauthorized(c, err.Error())
		}
		return mapServiceError(c, err)
	}
	return response.Success(c, "Token refreshed", result)
}

// Logout handles revoking the caller's refresh tokens
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.Logout(c.Context(), userID); err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Logged out", nil)
}

// Register handles creating a new user account (superuser only)
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "username and password are required")
	}

	user, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Created(c, "User created", user.ToResponse())
}
