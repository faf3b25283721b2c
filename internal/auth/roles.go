package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/slot-booking-service/internal/domain"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

// RequireStudent ensures the authenticated principal is a student. Booking is
// a student-only operation.
func RequireStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleStudent || principal.Student == nil {
			return apperrors.NewUnauthenticated("student account required")
		}
		return c.Next()
	}
}
