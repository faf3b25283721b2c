package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/slot-booking-service/internal/domain"
)

// StudentRepository defines persistence access for students.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByUniversityID(ctx context.Context, universityID string) (*domain.Student, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (name, university_id, password_hash, booked_slots)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	if student.BookedSlots == nil {
		student.BookedSlots = []domain.Slot{}
	}
	return r.pool.QueryRow(ctx, query,
		student.Name,
		student.UniversityID,
		student.PasswordHash,
		student.BookedSlots,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	const query = `
        SELECT id, name, university_id, password_hash, booked_slots, created_at, updated_at
        FROM students WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *studentRepository) GetByUniversityID(ctx context.Context, universityID string) (*domain.Student, error) {
	const query = `
        SELECT id, name, university_id, password_hash, booked_slots, created_at, updated_at
        FROM students WHERE university_id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, universityID))
}

func (r *studentRepository) scanOne(row pgx.Row) (*domain.Student, error) {
	var student domain.Student
	if err := row.Scan(
		&student.ID,
		&student.Name,
		&student.UniversityID,
		&student.PasswordHash,
		&student.BookedSlots,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}
