package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/slot-booking-service/internal/domain"
	"github.com/spec-kit/slot-booking-service/internal/events"
	"github.com/spec-kit/slot-booking-service/internal/persistence"
	"github.com/spec-kit/slot-booking-service/internal/repository"
	apperrors "github.com/spec-kit/slot-booking-service/pkg/util"
)

const catalogCacheKey = "catalog:available_slots"

// DeanSlots is one catalog entry: a dean's name with their available pool.
type DeanSlots struct {
	DeanName string        `json:"deanName"`
	Slots    []domain.Slot `json:"slots"`
}

// CatalogService aggregates every dean's available slots into one
// dean-labeled view, with a best-effort Redis cache in front of the store.
type CatalogService struct {
	deans  repository.DeanRepository
	cache  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogService builds the catalog. cache may be nil, which disables
// caching entirely.
func NewCatalogService(deans repository.DeanRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{deans: deans, cache: cache, ttl: ttl, logger: logger}
}

// ListAvailableSlots returns one entry per dean in dean-record order. Zero
// deans yields an empty slice, not an error. Cache failures fall through to
// the store.
func (s *CatalogService) ListAvailableSlots(ctx context.Context) ([]DeanSlots, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	deans, err := s.deans.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	catalog := make([]DeanSlots, 0, len(deans))
	for _, dean := range deans {
		slots := dean.AvailableSlots
		if slots == nil {
			slots = []domain.Slot{}
		}
		catalog = append(catalog, DeanSlots{DeanName: dean.Name, Slots: slots})
	}

	s.toCache(ctx, catalog)
	return catalog, nil
}

// RegisterHandlers subscribes cache invalidation to the events that change
// the catalog.
func (s *CatalogService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		s.Invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventSlotBooked, invalidate)
	dispatcher.Subscribe(events.EventDeanRegistered, invalidate)
}

// Invalidate drops the cached catalog.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.logger.Debug("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CatalogService) fromCache(ctx context.Context) ([]DeanSlots, bool) {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var catalog []DeanSlots
	if err := json.Unmarshal(raw, &catalog); err != nil {
		s.logger.Debug("catalog cache corrupt, dropping", zap.Error(err))
		s.Invalidate(ctx)
		return nil, false
	}
	return catalog, true
}

func (s *CatalogService) toCache(ctx context.Context, catalog []DeanSlots) {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(catalog)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, catalogCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("catalog cache write failed", zap.Error(err))
	}
}
