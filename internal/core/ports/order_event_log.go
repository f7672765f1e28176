package ports

import (
	"context"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/kernel"
)

// OrderEventLog is the append-only per-order timeline projected from the
// event log topic.
type OrderEventLog interface {
	// Append stores record unless its topic/partition/offset was already
	// recorded, in which case appended is false.
	Append(ctx context.Context, record events.Record) (appended bool, err error)

	// ListByOrderID returns records oldest first.
	ListByOrderID(ctx context.Context, orderID kernel.UUID) ([]events.Record, error)
}
