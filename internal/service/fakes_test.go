package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/slot-booking-service/internal/domain"
	"github.com/spec-kit/slot-booking-service/internal/repository"
)

// memStore is a shared in-memory stand-in for the document store. Repos hand
// out copies so tests observe only persisted state, like the real store.
type memStore struct {
	mu       sync.Mutex
	students map[string]*domain.Student
	deans    []*domain.Dean
}

func newMemStore() *memStore {
	return &memStore{students: make(map[string]*domain.Student)}
}

func copySlots(in []domain.Slot) []domain.Slot {
	out := make([]domain.Slot, len(in))
	copy(out, in)
	return out
}

func copyStudent(s *domain.Student) *domain.Student {
	c := *s
	c.BookedSlots = copySlots(s.BookedSlots)
	return &c
}

func copyDean(d *domain.Dean) *domain.Dean {
	c := *d
	c.AvailableSlots = copySlots(d.AvailableSlots)
	c.PendingSlots = copySlots(d.PendingSlots)
	return &c
}

type memStudentRepo struct{ store *memStore }

func (r *memStudentRepo) Create(_ context.Context, student *domain.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.BookedSlots == nil {
		student.BookedSlots = []domain.Slot{}
	}
	r.store.students[student.ID] = copyStudent(student)
	return nil
}

func (r *memStudentRepo) GetByID(_ context.Context, id string) (*domain.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.students[id]; ok {
		return copyStudent(s), nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memStudentRepo) GetByUniversityID(_ context.Context, universityID string) (*domain.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.students {
		if s.UniversityID == universityID {
			return copyStudent(s), nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memDeanRepo struct{ store *memStore }

func (r *memDeanRepo) Create(_ context.Context, dean *domain.Dean) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if dean.ID == "" {
		dean.ID = uuid.NewString()
	}
	if dean.AvailableSlots == nil {
		dean.AvailableSlots = []domain.Slot{}
	}
	if dean.PendingSlots == nil {
		dean.PendingSlots = []domain.Slot{}
	}
	r.store.deans = append(r.store.deans, copyDean(dean))
	return nil
}

func (r *memDeanRepo) GetByID(_ context.Context, id string) (*domain.Dean, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range r.store.deans {
		if d.ID == id {
			return copyDean(d), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memDeanRepo) GetByUniversityID(_ context.Context, universityID string) (*domain.Dean, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range r.store.deans {
		if d.UniversityID == universityID {
			return copyDean(d), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memDeanRepo) List(_ context.Context) ([]domain.Dean, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.Dean, 0, len(r.store.deans))
	for _, d := range r.store.deans {
		out = append(out, *copyDean(d))
	}
	return out, nil
}

// memBookingRepo mimics the transactional transfer including the version
// check. forcedConflicts makes the first N calls fail as if a concurrent
// writer won the race.
type memBookingRepo struct {
	store           *memStore
	forcedConflicts int
}

func (r *memBookingRepo) TransferSlot(_ context.Context, dean *domain.Dean, student *domain.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.forcedConflicts > 0 {
		r.forcedConflicts--
		return repository.ErrVersionConflict
	}

	var stored *domain.Dean
	for _, d := range r.store.deans {
		if d.ID == dean.ID {
			stored = d
			break
		}
	}
	if stored == nil {
		return pgx.ErrNoRows
	}
	if stored.Version != dean.Version {
		return repository.ErrVersionConflict
	}
	storedStudent, ok := r.store.students[student.ID]
	if !ok {
		return pgx.ErrNoRows
	}

	stored.AvailableSlots = copySlots(dean.AvailableSlots)
	stored.Version++
	storedStudent.BookedSlots = copySlots(student.BookedSlots)
	dean.Version++
	return nil
}
