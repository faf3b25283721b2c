package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/slot-booking-service/internal/domain"
	"github.com/spec-kit/slot-booking-service/internal/events"
	"github.com/spec-kit/slot-booking-service/internal/observability"
	"github.com/spec-kit/slot-booking-service/internal/repository"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

// BookingService moves a slot from a dean's available pool into a student's
// booked list. The dean pool is the only contended resource; writes are
// guarded by the dean row version and retried a bounded number of times.
type BookingService struct {
	deans       repository.DeanRepository
	booking     repository.BookingRepository
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	maxAttempts int
}

// BookingDependencies bundles requirements for the booking service.
type BookingDependencies struct {
	DeanRepo    repository.DeanRepository
	BookingRepo repository.BookingRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	MaxAttempts int
}

// NewBookingService builds the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	attempts := deps.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		deans:       deps.DeanRepo,
		booking:     deps.BookingRepo,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      logger,
		maxAttempts: attempts,
	}
}

// Book resolves the target slot by dean name and 1-based ordinal, removes it
// from the dean's pool and appends it to the student's booked list in one
// atomic transfer. The caller's ordinal is resolved against a catalog
// snapshot; the transfer itself always runs against a fresh dean read.
func (s *BookingService) Book(ctx context.Context, student *domain.Student, deanName string, slotNumber int) ([]domain.Slot, error) {
	if student == nil {
		return nil, apperrors.NewUnauthenticated("student account required")
	}
	if deanName == "" {
		return nil, apperrors.NewValidationError("deanName is required", nil)
	}
	if slotNumber < 1 {
		return nil, apperrors.NewValidationError("slotNumber must be a positive ordinal", nil)
	}

	deans, err := s.deans.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	// First dean with a matching name wins; duplicates are resolved
	// silently in catalog order. The match is case-sensitive.
	var target *domain.Dean
	for i := range deans {
		if deans[i].Name == deanName {
			target = &deans[i]
			break
		}
	}
	if target == nil {
		s.recordOutcome(deanName, false)
		return nil, apperrors.NewDeanNotFound(deanName)
	}

	if slotNumber > len(target.AvailableSlots) {
		s.recordOutcome(deanName, false)
		return nil, apperrors.NewSlotNotFound("slot number out of range")
	}
	selected := target.AvailableSlots[slotNumber-1]

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		booked, err := s.transfer(ctx, student, target.ID, selected)
		if err == nil {
			s.recordOutcome(deanName, true)
			s.publishBooked(ctx, target, student, selected)
			return booked, nil
		}
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logger.Debug("booking transfer conflicted, retrying",
				zap.String("dean", deanName),
				zap.Int("attempt", attempt),
			)
			continue
		}
		s.recordOutcome(deanName, false)
		return nil, err
	}

	s.recordOutcome(deanName, false)
	return nil, apperrors.NewBookingConflict()
}

// transfer re-reads the dean, locates the selected slot by its stable ID and
// attempts the atomic two-record write. Removal by ID moves exactly one slot
// even when structurally equal duplicates exist.
func (s *BookingService) transfer(ctx context.Context, student *domain.Student, deanID string, selected domain.Slot) ([]domain.Slot, error) {
	fresh, err := s.deans.GetByID(ctx, deanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewDeanNotFound(deanID)
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	idx := -1
	for i, slot := range fresh.AvailableSlots {
		if slot.ID == selected.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Someone else booked it between the snapshot and now.
		return nil, apperrors.NewSlotNotFound("slot no longer available")
	}

	remaining := make([]domain.Slot, 0, len(fresh.AvailableSlots)-1)
	remaining = append(remaining, fresh.AvailableSlots[:idx]...)
	remaining = append(remaining, fresh.AvailableSlots[idx+1:]...)
	fresh.AvailableSlots = remaining

	booked := append(append([]domain.Slot{}, student.BookedSlots...), selected)
	candidate := *student
	candidate.BookedSlots = booked

	if err := s.booking.TransferSlot(ctx, fresh, &candidate); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthenticated("student no longer exists")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	student.BookedSlots = booked
	return booked, nil
}

func (s *BookingService) publishBooked(ctx context.Context, dean *domain.Dean, student *domain.Student, slot domain.Slot) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSlotBooked,
		Timestamp: time.Now(),
		Payload: events.SlotBookedPayload{
			DeanID:    dean.ID,
			DeanName:  dean.Name,
			StudentID: student.ID,
			Slot:      slot,
		},
	})
}

func (s *BookingService) recordOutcome(deanName string, success bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordBooking(deanName, success)
}
