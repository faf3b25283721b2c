package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/slot-booking-service/internal/auth"
	"github.com/spec-kit/slot-booking-service/internal/domain"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

func newIdentityFixture(t *testing.T) (*IdentityService, *auth.TokenManager, *memStore) {
	t.Helper()
	store := newMemStore()
	tokenMgr := auth.NewTokenManager("test-secret", 60)
	svc := NewIdentityService(&memStudentRepo{store: store}, &memDeanRepo{store: store}, tokenMgr)
	return svc, tokenMgr, store
}

func TestResolveByToken_StudentBeforeDean(t *testing.T) {
	t.Parallel()
	svc, tokenMgr, store := newIdentityFixture(t)
	ctx := context.Background()

	student := &domain.Student{Name: "Riya", UniversityID: "STU-1", PasswordHash: "x"}
	require.NoError(t, (&memStudentRepo{store: store}).Create(ctx, student))

	token, _, err := tokenMgr.GenerateToken(student.ID, domain.RoleStudent)
	require.NoError(t, err)

	principal, err := svc.ResolveByToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, principal.Role)
	require.Equal(t, student.ID, principal.Student.ID)
}

func TestResolveByToken_FallsBackToDeans(t *testing.T) {
	t.Parallel()
	svc, tokenMgr, store := newIdentityFixture(t)
	ctx := context.Background()

	dean := &domain.Dean{Name: "Alice", UniversityID: "DEAN-1", PasswordHash: "x"}
	require.NoError(t, (&memDeanRepo{store: store}).Create(ctx, dean))

	token, _, err := tokenMgr.GenerateToken(dean.ID, domain.RoleDean)
	require.NoError(t, err)

	principal, err := svc.ResolveByToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleDean, principal.Role)
	require.Equal(t, dean.ID, principal.Dean.ID)
}

func TestResolveByToken_DeletedAccount(t *testing.T) {
	t.Parallel()
	svc, tokenMgr, _ := newIdentityFixture(t)

	// Valid token for a subject that no longer exists in either collection.
	token, _, err := tokenMgr.GenerateToken("ghost-id", domain.RoleStudent)
	require.NoError(t, err)

	_, err = svc.ResolveByToken(context.Background(), token)
	require.Error(t, err)
	require.Equal(t, "UNAUTHENTICATED", apperrors.ToDomainError(err).Code)
}

func TestResolveByToken_GarbageToken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newIdentityFixture(t)

	_, err := svc.ResolveByToken(context.Background(), "not-a-token")
	require.Error(t, err)
	require.Equal(t, "UNAUTHENTICATED", apperrors.ToDomainError(err).Code)
}
