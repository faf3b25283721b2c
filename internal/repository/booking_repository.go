package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/slot-booking-service/internal/domain"
)

// ErrVersionConflict signals that a dean row changed between read and write.
var ErrVersionConflict = errors.New("dean record version conflict")

// BookingRepository moves a slot between a dean and a student as one atomic
// unit. The two writes either both land or neither does, so a failed student
// update can never strand a slot that was already removed from the dean.
type BookingRepository interface {
	TransferSlot(ctx context.Context, dean *domain.Dean, student *domain.Student) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository returns a Postgres-backed implementation.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

// TransferSlot persists the dean's reduced available pool and the student's
// extended booked pool in a single transaction. The dean write is conditional
// on the version the caller read; a concurrent booking that got there first
// yields ErrVersionConflict and rolls the transaction back.
func (r *bookingRepository) TransferSlot(ctx context.Context, dean *domain.Dean, student *domain.Student) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const deanQuery = `
        UPDATE deans SET available_slots=$1, version=version+1, updated_at=NOW()
        WHERE id=$2 AND version=$3`

	cmd, err := tx.Exec(ctx, deanQuery, dean.AvailableSlots, dean.ID, dean.Version)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	const studentQuery = `
        UPDATE students SET booked_slots=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err = tx.Exec(ctx, studentQuery, student.BookedSlots, student.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	dean.Version++
	return nil
}
