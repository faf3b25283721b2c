package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/slot-booking-service/internal/api/dto"
	"github.com/spec-kit/slot-booking-service/internal/domain"
	"github.com/spec-kit/slot-booking-service/internal/service"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

// AuthHandler exposes the signup and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.UniversityID == "" || req.Password == "" {
		return apperrors.NewValidationError("name, universityID and password required", nil)
	}

	principal, token, _, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		Role:           domain.Role(req.Role),
		Name:           req.Name,
		UniversityID:   req.UniversityID,
		Password:       req.Password,
		AvailableSlots: req.AvailableSlots,
	})
	if err != nil {
		return err
	}

	universityID := ""
	switch principal.Role {
	case domain.RoleStudent:
		universityID = principal.Student.UniversityID
	case domain.RoleDean:
		universityID = principal.Dean.UniversityID
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"token": token,
			"user": dto.SignupUser{
				Name:         principal.Name(),
				UniversityID: universityID,
			},
		},
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UniversityID == "" || req.Password == "" {
		return apperrors.NewValidationError("please enter valid ID and password", nil)
	}

	token, _, err := h.auth.Login(c.UserContext(), req.UniversityID, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"token": token})
}
