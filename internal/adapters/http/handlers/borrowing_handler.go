package handlers

import (
	"campus-keyledger/internal/core/services"
	"campus-keyledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BorrowingHandler handles borrow/return endpoints
type BorrowingHandler struct {
	borrowingService *services.BorrowingService
}

// NewBorrowingHandler creates a new borrowing handler
func NewBorrowingHandler(borrowingService *services.BorrowingService) *BorrowingHandler {
	return &BorrowingHandler{borrowingService: borrowingService}
}

// CreateBorrowingRequest represents create borrowing request body
type CreateBorrowingRequest struct {
	KeyID           uint `json:"key_id"`
	AuthorizationID uint `json:"authorization_id"`
}

// Create handles opening a borrowing
func (h *BorrowingHandler) Create(c *fiber.Ctx) error {
	var req CreateBorrowingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.KeyID == 0 || req.AuthorizationID == 0 {
		return response.BadRequest(c, "key_id and authorization_id are required")
	}

	borrowing, err := h.borrowingService.Add(c.Context(), req.KeyID, req.AuthorizationID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Created(c, "Borrowing created", borrowing)
}

// Get handles getting a borrowing by ID
func (h *BorrowingHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid borrowing ID")
	}

	borrowing, err := h.borrowingService.GetByID(c.Context(), uint(id))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Borrowing retrieved", borrowing)
}

// Return handles closing a borrowing
func (h *BorrowingHandler) Return(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid borrowing ID")
	}

	borrowing, err := h.borrowingService.Return(c.Context(), uint(id))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Key returned", borrowing)
}

// Ongoing handles listing open borrowings, oldest first
func (h *BorrowingHandler) Ongoing(c *fiber.Ctx) error {
	borrowings, err := h.borrowingService.Ongoing(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Ongoing borrowings retrieved", borrowings)
}

// ExportRows handles the flat spreadsheet row export
func (h *BorrowingHandler) ExportRows(c *fiber.Ctx) error {
	rows, err := h.borrowingService.ExportRows(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Export rows retrieved", rows)
}
