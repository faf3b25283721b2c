package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/slot-booking-service/internal/domain"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", 60)

	token, exp, err := tm.GenerateToken("user-123", domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", exp)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.SubjectID != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", claims.SubjectID, "user-123")
	}
	if claims.Role != domain.RoleStudent {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, domain.RoleStudent)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("secret"), ttl: -time.Minute}

	token, _, err := tm.GenerateToken("u1", domain.RoleDean)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := tm.ParseToken(token); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenManager("right-secret", 60).GenerateToken("u2", domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := NewTokenManager("wrong-secret", 60).ParseToken(token); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenManager("k", 60).ParseToken("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
