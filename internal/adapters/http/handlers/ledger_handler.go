package handlers

import (
	"strconv"

	"campus-keyledger/internal/core/services"
	"campus-keyledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LedgerHandler handles room and key availability endpoints
type LedgerHandler struct {
	ledgerService *services.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// ordinaryOnly reads the ordinary_only query flag; special/master keys are
// excluded from availability unless explicitly requested otherwise.
func ordinaryOnly(c *fiber.Ctx) bool {
	return c.QueryBool("ordinary_only", true)
}

// ListFloors handles listing distinct floors
func (h *LedgerHandler) ListFloors(c *fiber.Ctx) error {
	floors, err := h.ledgerService.ListFloors(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Floors retrieved", floors)
}

// ListRooms handles listing all rooms or searching them by name
func (h *LedgerHandler) ListRooms(c *fiber.Ctx) error {
	expression := c.Query("q")
	if expression != "" {
		var floor *int
		if f := c.Query("floor"); f != "" {
			parsed, err := strconv.Atoi(f)
			if err != nil {
				return response.BadRequest(c, "Invalid floor")
			}
			floor = &parsed
		}
		rooms, err := h.ledgerService.SearchRooms(c.Context(), expression, floor)
		if err != nil {
			return mapServiceError(c, err)
		}
		return response.Success(c, "Rooms retrieved", rooms)
	}

	rooms, err := h.ledgerService.ListAllRooms(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Rooms retrieved", rooms)
}

// ListRoomsByFloor handles listing rooms on one floor, most-used first
func (h *LedgerHandler) ListRoomsByFloor(c *fiber.Ctx) error {
	floor, err := c.ParamsInt("floor")
	if err != nil {
		return response.BadRequest(c, "Invalid floor")
	}

	rooms, err := h.ledgerService.ListRoomsByFloor(c.Context(), floor)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Rooms retrieved", rooms)
}

// ListAvailableRooms handles listing rooms whose keys are all in
func (h *LedgerHandler) ListAvailableRooms(c *fiber.Ctx) error {
	floor, err := c.ParamsInt("floor")
	if err != nil {
		return response.BadRequest(c, "Invalid floor")
	}

	rooms, err := h.ledgerService.ListAvailableRoomsByFloor(c.Context(), floor, ordinaryOnly(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Available rooms retrieved", rooms)
}

// RoomAvailability handles the available/unavailable partition of a floor,
// optionally filtered by a room name substring
func (h *LedgerHandler) RoomAvailability(c *fiber.Ctx) error {
	floor, err := c.ParamsInt("floor")
	if err != nil {
		return response.BadRequest(c, "Invalid floor")
	}

	var availability *services.RoomAvailability
	if expression := c.Query("q"); expression != "" {
		availability, err = h.ledgerService.SearchRoomAvailabilityByFloor(c.Context(), expression, floor, ordinaryOnly(c))
	} else {
		availability, err = h.ledgerService.RoomAvailabilityByFloor(c.Context(), floor, ordinaryOnly(c))
	}
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Room availability retrieved", availability)
}

// ListKeys handles listing all keys
func (h *LedgerHandler) ListKeys(c *fiber.Ctx) error {
	keys, err := h.ledgerService.ListAllKeys(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Keys retrieved", keys)
}

// ListBorrowableKeys handles listing borrowable keys on a floor
func (h *LedgerHandler) ListBorrowableKeys(c *fiber.Ctx) error {
	floor, err := c.ParamsInt("floor")
	if err != nil {
		return response.BadRequest(c, "Invalid floor")
	}

	keys, err := h.ledgerService.ListBorrowableKeysByFloor(c.Context(), floor, ordinaryOnly(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "Borrowable keys retrieved", keys)
}
