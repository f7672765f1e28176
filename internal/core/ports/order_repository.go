// Package ports defines the contracts between the application core and its
// infrastructure: persistence, product availability and event publishing.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Returns errs.ConflictError if the id or the
	// idempotency key is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIdempotencyKey returns errs.ObjectNotFoundError when the key is unused.
	GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error)

	// List returns orders newest first, optionally filtered by status.
	List(ctx context.Context, status *order.Status) ([]*order.Order, error)

	// UpdateStatus writes the aggregate's status, tracking number and
	// timestamps only if the stored status still equals expected.
	//
	// Returns errs.ObjectNotFoundError if the order is gone and
	// errs.ConflictError if another writer moved it first.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Delete is a no-op for an unknown id.
	Delete(ctx context.Context, id kernel.UUID) error

	DeleteAll(ctx context.Context) error
}
