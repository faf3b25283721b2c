package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/slot-booking-service/internal/api/dto"
	"github.com/spec-kit/slot-booking-service/internal/auth"
	"github.com/spec-kit/slot-booking-service/internal/domain"
	"github.com/spec-kit/slot-booking-service/internal/service"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

// SlotsHandler exposes the slot catalog and booking endpoints.
type SlotsHandler struct {
	catalog *service.CatalogService
	booking *service.BookingService
}

// NewSlotsHandler constructs handler.
func NewSlotsHandler(catalog *service.CatalogService, booking *service.BookingService) *SlotsHandler {
	return &SlotsHandler{catalog: catalog, booking: booking}
}

// List handles GET /slots.
func (h *SlotsHandler) List(c *fiber.Ctx) error {
	catalog, err := h.catalog.ListAvailableSlots(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(catalog)
}

// Book handles POST /slots/book. The route is gated, so a principal is
// always present; the student-only guard ran before this handler.
func (h *SlotsHandler) Book(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Role != domain.RoleStudent || principal.Student == nil {
		return apperrors.NewUnauthenticated("student account required")
	}

	var req dto.BookSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DeanName == "" || req.SlotNumber == 0 {
		return apperrors.NewValidationError("deanName and slotNumber required", nil)
	}

	booked, err := h.booking.Book(c.UserContext(), principal.Student, req.DeanName, req.SlotNumber)
	if err != nil {
		return err
	}

	return c.JSON(dto.BookSlotResponse{BookedSlot: booked})
}
