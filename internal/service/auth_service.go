package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/slot-booking-service/internal/auth"
	"github.com/spec-kit/slot-booking-service/internal/config"
	"github.com/spec-kit/slot-booking-service/internal/domain"
	"github.com/spec-kit/slot-booking-service/internal/events"
	"github.com/spec-kit/slot-booking-service/internal/repository"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

// AuthService coordinates signup and login flows.
type AuthService struct {
	students   repository.StudentRepository
	deans      repository.DeanRepository
	identity   *IdentityService
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	StudentRepo repository.StudentRepository
	DeanRepo    repository.DeanRepository
	Identity    *IdentityService
	TokenMgr    *auth.TokenManager
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		students:   deps.StudentRepo,
		deans:      deps.DeanRepo,
		identity:   deps.Identity,
		tokenMgr:   deps.TokenMgr,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// SignupInput is the validated, role-tagged creation request. AvailableSlots
// is only meaningful for deans; the DTO layer has already flattened and
// structured the raw slot tuples.
type SignupInput struct {
	Role           domain.Role
	Name           string
	UniversityID   string
	Password       string
	AvailableSlots []domain.Slot
}

// Signup creates a student or dean account and immediately issues a session
// token. Unknown roles fail before anything is constructed.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*auth.Principal, string, time.Time, error) {
	switch input.Role {
	case domain.RoleStudent, domain.RoleDean:
	default:
		return nil, "", time.Time{}, apperrors.NewRoleError(string(input.Role))
	}

	// universityID must be unique across BOTH collections, not just the
	// target one.
	if err := s.checkUniversityIDFree(ctx, input.UniversityID); err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	var principal *auth.Principal
	switch input.Role {
	case domain.RoleStudent:
		student := &domain.Student{
			Name:         input.Name,
			UniversityID: input.UniversityID,
			PasswordHash: hash,
			BookedSlots:  []domain.Slot{},
		}
		if err := s.students.Create(ctx, student); err != nil {
			return nil, "", time.Time{}, apperrors.NewPersistenceError(err)
		}
		principal = &auth.Principal{Role: domain.RoleStudent, Student: student}
	case domain.RoleDean:
		dean := &domain.Dean{
			Name:           input.Name,
			UniversityID:   input.UniversityID,
			PasswordHash:   hash,
			AvailableSlots: input.AvailableSlots,
			PendingSlots:   []domain.Slot{},
		}
		if err := s.deans.Create(ctx, dean); err != nil {
			return nil, "", time.Time{}, apperrors.NewPersistenceError(err)
		}
		principal = &auth.Principal{Role: domain.RoleDean, Dean: dean}

		if s.dispatcher != nil {
			_ = s.dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventDeanRegistered,
				Timestamp: time.Now(),
				Payload: events.DeanRegisteredPayload{
					DeanID:    dean.ID,
					DeanName:  dean.Name,
					SlotCount: len(dean.AvailableSlots),
				},
			})
		}
	}

	token, exp, err := s.tokenMgr.GenerateToken(principal.ID(), principal.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return principal, token, exp, nil
}

// Login authenticates by universityID and password and issues a token.
func (s *AuthService) Login(ctx context.Context, universityID, password string) (string, time.Time, error) {
	principal, err := s.identity.ResolveByCredentials(ctx, universityID, password)
	if err != nil {
		return "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(principal.ID(), principal.Role)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

func (s *AuthService) checkUniversityIDFree(ctx context.Context, universityID string) error {
	if _, err := s.students.GetByUniversityID(ctx, universityID); err == nil {
		return apperrors.NewConflict("university ID already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewPersistenceError(err)
	}

	if _, err := s.deans.GetByUniversityID(ctx, universityID); err == nil {
		return apperrors.NewConflict("university ID already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}
