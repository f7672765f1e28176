package ports

import (
	"context"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// order_id is unique across deliveries.
type DeliveryRepository interface {
	// Add returns errs.ConflictError when a delivery for the same order exists.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// List returns deliveries newest first, optionally filtered by status.
	List(ctx context.Context, status *delivery.Status) ([]*delivery.Delivery, error)

	// UpdateStatus is a compare-and-swap on status, see OrderRepository.UpdateStatus.
	UpdateStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error
}
