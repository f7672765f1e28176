// Package queries contains read-only operations. Handlers read straight from
// the store with GORM and return flat views; they never load aggregates.
package queries

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID             uuid.UUID
	UserID         string
	ProductID      string
	Quantity       int
	Status         string
	TrackingNumber *string
	IdempotencyKey *string
	CreatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// DeliveryView is the read model of a delivery.
type DeliveryView struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	UserID         string
	ProductID      string
	Quantity       int
	Status         string
	TrackingNumber *string
	CreatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// OrderEventView is one entry of an order timeline.
type OrderEventView struct {
	EventType      string
	Status         string
	TrackingNumber string
	Topic          string
	Partition      int
	Offset         int64
	OccurredAt     time.Time
	RecordedAt     time.Time
}

// parseID maps malformed and nil ids to not found: no record can carry them.
func parseID(entity, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err == nil {
		err = id.Validate()
	}
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause(entity, raw, err)
	}
	return id, nil
}
