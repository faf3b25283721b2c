package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/slot-booking-service/internal/domain"
)

// DeanRepository defines persistence access for deans. List returns deans in
// record order (creation order), which fixes the ordering of the aggregated
// slot catalog.
type DeanRepository interface {
	Create(ctx context.Context, dean *domain.Dean) error
	GetByID(ctx context.Context, id string) (*domain.Dean, error)
	GetByUniversityID(ctx context.Context, universityID string) (*domain.Dean, error)
	List(ctx context.Context) ([]domain.Dean, error)
}

type deanRepository struct {
	pool *pgxpool.Pool
}

// NewDeanRepository returns a Postgres-backed implementation.
func NewDeanRepository(pool *pgxpool.Pool) DeanRepository {
	return &deanRepository{pool: pool}
}

func (r *deanRepository) Create(ctx context.Context, dean *domain.Dean) error {
	const query = `
        INSERT INTO deans (name, university_id, password_hash, available_slots, pending_slots)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, version, created_at, updated_at`

	if dean.AvailableSlots == nil {
		dean.AvailableSlots = []domain.Slot{}
	}
	if dean.PendingSlots == nil {
		dean.PendingSlots = []domain.Slot{}
	}
	return r.pool.QueryRow(ctx, query,
		dean.Name,
		dean.UniversityID,
		dean.PasswordHash,
		dean.AvailableSlots,
		dean.PendingSlots,
	).Scan(&dean.ID, &dean.Version, &dean.CreatedAt, &dean.UpdatedAt)
}

func (r *deanRepository) GetByID(ctx context.Context, id string) (*domain.Dean, error) {
	const query = deanSelect + ` WHERE id=$1`
	return scanDean(r.pool.QueryRow(ctx, query, id))
}

func (r *deanRepository) GetByUniversityID(ctx context.Context, universityID string) (*domain.Dean, error) {
	const query = deanSelect + ` WHERE university_id=$1`
	return scanDean(r.pool.QueryRow(ctx, query, universityID))
}

func (r *deanRepository) List(ctx context.Context) ([]domain.Dean, error) {
	const query = deanSelect + ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deans := make([]domain.Dean, 0)
	for rows.Next() {
		dean, err := scanDean(rows)
		if err != nil {
			return nil, err
		}
		deans = append(deans, *dean)
	}
	return deans, rows.Err()
}

const deanSelect = `
        SELECT id, name, university_id, password_hash, available_slots, pending_slots, version, created_at, updated_at
        FROM deans`

func scanDean(row pgx.Row) (*domain.Dean, error) {
	var dean domain.Dean
	if err := row.Scan(
		&dean.ID,
		&dean.Name,
		&dean.UniversityID,
		&dean.PasswordHash,
		&dean.AvailableSlots,
		&dean.PendingSlots,
		&dean.Version,
		&dean.CreatedAt,
		&dean.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dean, nil
}
