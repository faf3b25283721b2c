package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/slot-booking-service/internal/domain"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, one of the two role
// variants.
type Principal struct {
	Role    domain.Role
	Student *domain.Student
	Dean    *domain.Dean
}

// ID returns the subject's record identifier.
func (p *Principal) ID() string {
	switch p.Role {
	case domain.RoleStudent:
		return p.Student.ID
	case domain.RoleDean:
		return p.Dean.ID
	}
	return ""
}

// Name returns the subject's display name.
func (p *Principal) Name() string {
	switch p.Role {
	case domain.RoleStudent:
		return p.Student.Name
	case domain.RoleDean:
		return p.Dean.Name
	}
	return ""
}

// IdentityResolver turns a bearer token into a Principal.
type IdentityResolver interface {
	ResolveByToken(ctx context.Context, token string) (*Principal, error)
}

// AuthMiddleware validates bearer tokens and loads principals. Resolution
// failure halts the handler chain; downstream handlers never run for an
// unauthenticated request.
type AuthMiddleware struct {
	resolver IdentityResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("you are not logged in")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	principal, err := m.resolver.ResolveByToken(c.UserContext(), parts[1])
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
