package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/slot-booking-service/internal/domain"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

type stubResolver struct {
	principal *Principal
	err       error
	calls     int
}

func (r *stubResolver) ResolveByToken(_ context.Context, _ string) (*Principal, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.principal, nil
}

func newGatedApp(resolver *stubResolver, reached *bool) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Message})
		},
	})

	m := NewAuthMiddleware(resolver)
	app.Get("/protected", m.Handle, func(c *fiber.Ctx) error {
		*reached = true
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewInternalError(errors.New("principal missing"))
		}
		return c.SendString(principal.Name())
	})
	return app
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{}
	reached := false
	app := newGatedApp(resolver, &reached)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if resolver.calls != 0 {
		t.Fatalf("resolver must not run without a header")
	}
	if reached {
		t.Fatalf("downstream handler ran for unauthenticated request")
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{}
	reached := false
	app := newGatedApp(resolver, &reached)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if reached {
		t.Fatalf("downstream handler ran for malformed header")
	}
}

func TestAuthMiddleware_ResolutionFailureHaltsChain(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{err: apperrors.NewUnauthenticated("invalid or expired token")}
	reached := false
	app := newGatedApp(resolver, &reached)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if reached {
		t.Fatalf("downstream handler must not run when resolution fails")
	}
}

func TestAuthMiddleware_AttachesPrincipal(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{principal: &Principal{
		Role:    domain.RoleStudent,
		Student: &domain.Student{ID: "s1", Name: "Riya"},
	}}
	reached := false
	app := newGatedApp(resolver, &reached)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d want %d", resp.StatusCode, http.StatusOK)
	}
	if !reached {
		t.Fatalf("downstream handler did not run for authenticated request")
	}
}
