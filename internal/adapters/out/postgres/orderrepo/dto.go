// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. Status is stored by name so
// the table stays readable from SQL.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         string    `gorm:"not null"`
	ProductID      string    `gorm:"not null"`
	Quantity       int       `gorm:"not null"`
	Status         string    `gorm:"type:varchar(16);not null;index"`
	TrackingNumber *string   `gorm:"type:varchar(64)"`
	IdempotencyKey *string   `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt      time.Time `gorm:"not null;index"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()
	return OrderDTO{
		ID:             s.ID.Bytes(),
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

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:             id,
		UserID:         dto.UserID,
		ProductID:      dto.ProductID,
		Quantity:       dto.Quantity,
		IdempotencyKey: deref(dto.IdempotencyKey),
		Status:         status,
		TrackingNumber: deref(dto.TrackingNumber),
		CreatedAt:      dto.CreatedAt,
		ShippedAt:      dto.ShippedAt,
		DeliveredAt:    dto.DeliveredAt,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
