package orders

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasunkula/middys-assignment/internal/core/aggregation"
)

// OrderStore is the part of the statistics engine the order endpoints write to.
type OrderStore interface {
	AddOrder(o aggregation.Order, nowMs int64) error
	DeleteAll()
}

// Recorder receives accepted orders and clears for the audit journal.
// Both calls must not block; they report whether the entry was queued.
type Recorder interface {
	RecordOrder(o aggregation.Order, acceptedAt time.Time) bool
	RecordClear(at time.Time) bool
}

type Service struct {
	store            OrderStore
	recorder         Recorder
	maxBodySizeBytes int
	nowFn            func() time.Time
}

func NewService(store OrderStore, recorder Recorder, maxBodySizeMB int) *Service {
	if store == nil {
		panic("orders: store must not be nil")
	}
	if recorder == nil {
		panic("orders: recorder must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		recorder:         recorder,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn:            time.Now,
	}
}

// RegisterRoutes registers the order endpoints.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/orders", s.AddOrderHandler)
	r.DELETE("/v1/orders", s.DeleteOrdersHandler)
}
