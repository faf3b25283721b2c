package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/slot-booking-service/internal/auth"
	"github.com/spec-kit/slot-booking-service/internal/domain"
	"github.com/spec-kit/slot-booking-service/internal/repository"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

// IdentityService resolves bearer tokens and credentials to concrete user
// records. Lookups always try students before deans.
type IdentityService struct {
	students repository.StudentRepository
	deans    repository.DeanRepository
	tokens   *auth.TokenManager
}

// NewIdentityService builds the resolver.
func NewIdentityService(students repository.StudentRepository, deans repository.DeanRepository, tokens *auth.TokenManager) *IdentityService {
	return &IdentityService{students: students, deans: deans, tokens: tokens}
}

// ResolveByToken verifies the token and loads the subject's record. A valid
// token whose subject no longer exists (account removed after issuance) is
// still unauthenticated.
func (s *IdentityService) ResolveByToken(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthenticated("invalid or expired token")
	}

	student, err := s.students.GetByID(ctx, claims.SubjectID)
	if err == nil {
		return &auth.Principal{Role: domain.RoleStudent, Student: student}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewPersistenceError(err)
	}

	dean, err := s.deans.GetByID(ctx, claims.SubjectID)
	if err == nil {
		return &auth.Principal{Role: domain.RoleDean, Dean: dean}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewPersistenceError(err)
	}

	return nil, apperrors.NewUnauthenticated("user no longer exists")
}

// ResolveByCredentials authenticates a universityID/password pair. An unknown
// ID and a wrong password fail with the same error.
func (s *IdentityService) ResolveByCredentials(ctx context.Context, universityID, password string) (*auth.Principal, error) {
	var principal *auth.Principal

	student, err := s.students.GetByUniversityID(ctx, universityID)
	switch {
	case err == nil:
		principal = &auth.Principal{Role: domain.RoleStudent, Student: student}
	case errors.Is(err, pgx.ErrNoRows):
		dean, deanErr := s.deans.GetByUniversityID(ctx, universityID)
		switch {
		case deanErr == nil:
			principal = &auth.Principal{Role: domain.RoleDean, Dean: dean}
		case errors.Is(deanErr, pgx.ErrNoRows):
			return nil, apperrors.NewInvalidCredentials()
		default:
			return nil, apperrors.NewPersistenceError(deanErr)
		}
	default:
		return nil, apperrors.NewPersistenceError(err)
	}

	hash := ""
	switch principal.Role {
	case domain.RoleStudent:
		hash = principal.Student.PasswordHash
	case domain.RoleDean:
		hash = principal.Dean.PasswordHash
	}
	if err := auth.ComparePassword(hash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	return principal, nil
}
