package events

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// Position locates a record in the log.
type Position struct {
	Topic     string
	Partition int
	Offset    int64
}

// Record is one entry of an order's timeline as read from the log.
type Record struct {
	Position       Position
	OrderID        kernel.UUID
	EventType      Type
	Status         string
	TrackingNumber string
	OccurredAt     time.Time
	RecordedAt     time.Time
}

// NewRecord describes e as found at pos.
func NewRecord(pos Position, e Event, recordedAt time.Time) Record {
	r := Record{
		Position:   pos,
		OrderID:    e.AggregateOrderID(),
		EventType:  e.Type(),
		OccurredAt: e.OccurredAt(),
		RecordedAt: recordedAt,
	}

	switch ev := e.(type) {
	case OrderCreated:
		r.Status = ev.Status
	case OrderShipped:
		r.Status = ev.Status
		r.TrackingNumber = ev.TrackingNumber.String()
	case OrderDelivered:
		r.Status = ev.Status
		r.TrackingNumber = ev.TrackingNumber.String()
	}

	if r.OccurredAt.IsZero() {
		r.OccurredAt = recordedAt
	}
	return r
}
