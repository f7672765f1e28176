package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrMalformedEvent   = errors.New("malformed event")
)

// Message is the flat JSON representation shared by both transports.
type Message struct {
	EventType      Type       `json:"event_type"`
	OrderID        string     `json:"order_id"`
	DeliveryID     string     `json:"delivery_id,omitempty"`
	UserID         string     `json:"user_id,omitempty"`
	ProductID      string     `json:"product_id,omitempty"`
	Quantity       int        `json:"quantity,omitempty"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	Timestamp      time.Time  `json:"timestamp"`
}

func Encode(e Event) ([]byte, error) {
	m, err := ToMessage(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func ToMessage(e Event) (Message, error) {
	switch ev := e.(type) {
	case OrderCreated:
		return Message{
			EventType: TypeOrderCreated,
			OrderID:   ev.OrderID.String(),
			UserID:    ev.UserID,
			ProductID: ev.ProductID,
			Quantity:  ev.Quantity,
			Status:    ev.Status,
			CreatedAt: timePtr(ev.CreatedAt),
			Timestamp: ev.Timestamp.UTC(),
		}, nil
	case OrderShipped:
		return Message{
			EventType:      TypeOrderShipped,
			OrderID:        ev.OrderID.String(),
			DeliveryID:     idString(ev.DeliveryID),
			Status:         ev.Status,
			TrackingNumber: ev.TrackingNumber.String(),
			ShippedAt:      timePtr(ev.ShippedAt),
			Timestamp:      ev.Timestamp.UTC(),
		}, nil
	case OrderDelivered:
		return Message{
			EventType:      TypeOrderDelivered,
			OrderID:        ev.OrderID.String(),
			DeliveryID:     idString(ev.DeliveryID),
			Status:         ev.Status,
			TrackingNumber: ev.TrackingNumber.String(),
			ShippedAt:      timePtr(ev.ShippedAt),
			DeliveredAt:    timePtr(ev.DeliveredAt),
			Timestamp:      ev.Timestamp.UTC(),
		}, nil
	case nil:
		return Message{}, fmt.Errorf("%w: nil event", ErrMalformedEvent)
	}
	return Message{}, fmt.Errorf("%w: %T", ErrUnknownEventType, e)
}

// Decode parses a wire payload into one of the Event types.
func Decode(data []byte) (Event, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	return m.ToEvent()
}

// ToEvent validates m and converts it to its Event type.
func (m Message) ToEvent() (Event, error) {
	orderID, err := parseID("order_id", m.OrderID)
	if err != nil {
		return nil, err
	}

	switch m.EventType {
	case TypeOrderCreated:
		if m.UserID == "" || m.ProductID == "" || m.Quantity < 1 || m.CreatedAt == nil {
			return nil, fmt.Errorf("%w: OrderCreated needs user_id, product_id, quantity and created_at", ErrMalformedEvent)
		}
		return OrderCreated{
			OrderID:   orderID,
			UserID:    m.UserID,
			ProductID: m.ProductID,
			Quantity:  m.Quantity,
			Status:    m.Status,
			CreatedAt: *m.CreatedAt,
			Timestamp: m.Timestamp,
		}, nil

	case TypeOrderShipped:
		sh, err := m.shipment()
		if err != nil {
			return nil, err
		}
		return OrderShipped{
			OrderID:        orderID,
			DeliveryID:     sh.deliveryID,
			Status:         m.Status,
			TrackingNumber: sh.trackingNumber,
			ShippedAt:      sh.shippedAt,
			Timestamp:      m.Timestamp,
		}, nil

	case TypeOrderDelivered:
		sh, err := m.shipment()
		if err != nil {
			return nil, err
		}
		if m.DeliveredAt == nil {
			return nil, fmt.Errorf("%w: OrderDelivered needs delivered_at", ErrMalformedEvent)
		}
		return OrderDelivered{
			OrderID:        orderID,
			DeliveryID:     sh.deliveryID,
			Status:         m.Status,
			TrackingNumber: sh.trackingNumber,
			ShippedAt:      sh.shippedAt,
			DeliveredAt:    *m.DeliveredAt,
			Timestamp:      m.Timestamp,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, string(m.EventType))
}

type shipment struct {
	deliveryID     kernel.UUID
	trackingNumber kernel.TrackingNumber
	shippedAt      time.Time
}

// shipment reads the optional shipment fields. Absent fields stay zero; a
// present field must be well formed.
func (m Message) shipment() (shipment, error) {
	var sh shipment
	if m.DeliveryID != "" {
		id, err := parseID("delivery_id", m.DeliveryID)
		if err != nil {
			return shipment{}, err
		}
		sh.deliveryID = id
	}
	if m.TrackingNumber != "" {
		tn, err := kernel.NewTrackingNumber(m.TrackingNumber)
		if err != nil {
			return shipment{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
		}
		sh.trackingNumber = tn
	}
	if m.ShippedAt != nil {
		sh.shippedAt = *m.ShippedAt
	}
	return sh, nil
}

func parseID(field, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err == nil {
		err = id.Validate()
	}
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %s: %w", ErrMalformedEvent, field, err)
	}
	return id, nil
}

func idString(id kernel.UUID) string {
	if id.Validate() != nil {
		return ""
	}
	return id.String()
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
