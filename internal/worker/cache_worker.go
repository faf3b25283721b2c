package worker

import (
	"github.com/spec-kit/slot-booking-service/internal/events"
	"github.com/spec-kit/slot-booking-service/internal/service"
)

// StartCacheWorker subscribes catalog cache invalidation to the events that
// change which slots are bookable.
func StartCacheWorker(catalog *service.CatalogService, dispatcher events.Dispatcher) {
	if catalog == nil {
		return
	}
	catalog.RegisterHandlers(dispatcher)
}
