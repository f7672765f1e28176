package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/order"
)

type OrderResponse struct {
	OrderID        string     `json:"order_id"`
	UserID         string     `json:"user_id"`
	ProductID      string     `json:"product_id"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status"`
	TrackingNumber *string    `json:"tracking_number,omitempty"`
	IdempotencyKey *string    `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

type DeliveryResponse struct {
	DeliveryID     string     `json:"delivery_id"`
	OrderID        string     `json:"order_id"`
	UserID         string     `json:"user_id"`
	ProductID      string     `json:"product_id"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status"`
	TrackingNumber *string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

type OrderEventResponse struct {
	EventType      string    `json:"event_type"`
	Status         string    `json:"status,omitempty"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	Topic          string    `json:"topic"`
	Partition      int       `json:"partition"`
	Offset         int64     `json:"offset"`
	OccurredAt     time.Time `json:"occurred_at"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
}

type NewOrderRequest struct {
	UserID         string `json:"user_id"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	IdempotencyKey string `json:"idempotency_key"`
}

func orderFromDomain(o *order.Order) OrderResponse {
	s := o.Snapshot()
	return OrderResponse{
		OrderID:        s.ID.String(),
		UserID:         s.UserID,
		ProductID:      s.ProductID,
		Quantity:       s.Quantity,
		Status:         s.Status.String(),
		TrackingNumber: optional(s.TrackingNumber),
		IdempotencyKey: optional(s.IdempotencyKey),
		CreatedAt:      s.CreatedAt,
		ShippedAt:      s.ShippedAt,
		DeliveredAt:    s.DeliveredAt,
	}
}

func orderFromView(v queries.OrderView) OrderResponse {
	return OrderResponse{
		OrderID:        v.ID.String(),
		UserID:         v.UserID,
		ProductID:      v.ProductID,
		Quantity:       v.Quantity,
		Status:         v.Status,
		TrackingNumber: v.TrackingNumber,
		IdempotencyKey: v.IdempotencyKey,
		CreatedAt:      v.CreatedAt,
		ShippedAt:      v.ShippedAt,
		DeliveredAt:    v.DeliveredAt,
	}
}

func deliveryFromDomain(d *delivery.Delivery) DeliveryResponse {
	s := d.Snapshot()
	return DeliveryResponse{
		DeliveryID:     s.ID.String(),
		OrderID:        s.OrderID.String(),
		UserID:         s.UserID,
		ProductID:      s.ProductID,
		Quantity:       s.Quantity,
		Status:         s.Status.String(),
		TrackingNumber: optional(s.TrackingNumber),
		CreatedAt:      s.CreatedAt,
		ShippedAt:      s.ShippedAt,
		DeliveredAt:    s.DeliveredAt,
	}
}

func deliveryFromView(v queries.DeliveryView) DeliveryResponse {
	return DeliveryResponse{
		DeliveryID:     v.ID.String(),
		OrderID:        v.OrderID.String(),
		UserID:         v.UserID,
		ProductID:      v.ProductID,
		Quantity:       v.Quantity,
		Status:         v.Status,
		TrackingNumber: v.TrackingNumber,
		CreatedAt:      v.CreatedAt,
		ShippedAt:      v.ShippedAt,
		DeliveredAt:    v.DeliveredAt,
	}
}

func eventFromView(v queries.OrderEventView) OrderEventResponse {
	return OrderEventResponse{
		EventType:      v.EventType,
		Status:         v.Status,
		TrackingNumber: v.TrackingNumber,
		Topic:          v.Topic,
		Partition:      v.Partition,
		Offset:         v.Offset,
		OccurredAt:     v.OccurredAt,
		RecordedAt:     v.RecordedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
