package handlers

import (
	"errors"

	"campus-keyledger/internal/core/domain"
	"campus-keyledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError translates domain errors into HTTP responses. Anything
// unrecognized becomes a 500 with a generic message.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrKeyNotFound),
		errors.Is(err, domain.ErrPersonNotFound),
		errors.Is(err, domain.ErrAuthorizationNotFound),
		errors.Is(err, domain.ErrBorrowingNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, domain.ErrKeyAlreadyBorrowed),
		errors.Is(err, domain.ErrUserAlreadyExists):
		return response.Conflict(c, err.Error())

	case errors.Is(err, domain.ErrAlreadyReturned):
		return response.UnprocessableEntity(c, err.Error())

	case errors.Is(err, domain.ErrSearchExpression),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidPassword):
		return response.BadRequest(c, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, err.Error())

	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
