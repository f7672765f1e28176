package events

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

type Type string

const (
	TypeOrderCreated   Type = "OrderCreated"
	TypeOrderShipped   Type = "OrderShipped"
	TypeOrderDelivered Type = "OrderDelivered"
)

// Queue names, one durable queue per event type.
const (
	QueueOrdersCreated   = "orders.created"
	QueueOrdersShipped   = "orders.shipped"
	QueueOrdersDelivered = "orders.delivered"
)

// DefaultTopic is the log topic every event is appended to, keyed by order_id.
const DefaultTopic = "order-events"

// Queue returns the queue events of type t are routed to.
func (t Type) Queue() (string, error) {
	switch t {
	case TypeOrderCreated:
		return QueueOrdersCreated, nil
	case TypeOrderShipped:
		return QueueOrdersShipped, nil
	case TypeOrderDelivered:
		return QueueOrdersDelivered, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEventType, string(t))
}

// Event is implemented only by the types in this package.
type Event interface {
	Type() Type
	AggregateOrderID() kernel.UUID
	OccurredAt() time.Time
	isEvent()
}

// OrderCreated is published by sales once a new order is committed.
type OrderCreated struct {
	OrderID   kernel.UUID
	UserID    string
	ProductID string
	Quantity  int
	Status    string
	CreatedAt time.Time
	Timestamp time.Time
}

// OrderShipped is published by delivery after a delivery moves to Shipped.
type OrderShipped struct {
	OrderID        kernel.UUID
	DeliveryID     kernel.UUID
	Status         string
	TrackingNumber kernel.TrackingNumber
	ShippedAt      time.Time
	Timestamp      time.Time
}

// OrderDelivered is published by delivery after a delivery moves to Delivered.
// It repeats the shipment data so a consumer that never saw OrderShipped can
// still catch up.
type OrderDelivered struct {
	OrderID        kernel.UUID
	DeliveryID     kernel.UUID
	Status         string
	TrackingNumber kernel.TrackingNumber
	ShippedAt      time.Time
	DeliveredAt    time.Time
	Timestamp      time.Time
}

func (OrderCreated) Type() Type   { return TypeOrderCreated }
func (OrderShipped) Type() Type   { return TypeOrderShipped }
func (OrderDelivered) Type() Type { return TypeOrderDelivered }

func (e OrderCreated) AggregateOrderID() kernel.UUID   { return e.OrderID }
func (e OrderShipped) AggregateOrderID() kernel.UUID   { return e.OrderID }
func (e OrderDelivered) AggregateOrderID() kernel.UUID { return e.OrderID }

func (e OrderCreated) OccurredAt() time.Time   { return e.Timestamp }
func (e OrderShipped) OccurredAt() time.Time   { return e.Timestamp }
func (e OrderDelivered) OccurredAt() time.Time { return e.Timestamp }

func (OrderCreated) isEvent()   {}
func (OrderShipped) isEvent()   {}
func (OrderDelivered) isEvent() {}

// NewOrderCreated describes a freshly persisted order.
func NewOrderCreated(o *order.Order, at time.Time) OrderCreated {
	return OrderCreated{
		OrderID:   o.ID(),
		UserID:    o.UserID(),
		ProductID: o.ProductID(),
		Quantity:  o.Quantity().Int(),
		Status:    o.Status().String(),
		CreatedAt: o.CreatedAt(),
		Timestamp: at,
	}
}

// NewOrderShipped describes d after Ship. d must be Shipped.
func NewOrderShipped(d *delivery.Delivery, at time.Time) OrderShipped {
	return OrderShipped{
		OrderID:        d.OrderID(),
		DeliveryID:     d.ID(),
		Status:         d.Status().String(),
		TrackingNumber: d.TrackingNumber(),
		ShippedAt:      deref(d.ShippedAt()),
		Timestamp:      at,
	}
}

// NewOrderDelivered describes d after Deliver. d must be Delivered.
func NewOrderDelivered(d *delivery.Delivery, at time.Time) OrderDelivered {
	return OrderDelivered{
		OrderID:        d.OrderID(),
		DeliveryID:     d.ID(),
		Status:         d.Status().String(),
		TrackingNumber: d.TrackingNumber(),
		ShippedAt:      deref(d.ShippedAt()),
		DeliveredAt:    deref(d.DeliveredAt()),
		Timestamp:      at,
	}
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
