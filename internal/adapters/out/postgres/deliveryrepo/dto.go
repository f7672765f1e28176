// Package deliveryrepo persists delivery aggregates with GORM.
package deliveryrepo

import (
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the row layout of the deliveries table. order_id is unique,
// which is what makes creation from a redelivered OrderCreated idempotent.
type DeliveryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	UserID         string    `gorm:"not null"`
	ProductID      string    `gorm:"not null"`
	Quantity       int       `gorm:"not null"`
	Status         string    `gorm:"type:varchar(16);not null;index"`
	TrackingNumber *string   `gorm:"type:varchar(64)"`
	CreatedAt      time.Time `gorm:"not null;index"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	s := aggregate.Snapshot()

	var tn *string
	if s.TrackingNumber != "" {
		tn = &s.TrackingNumber
	}

	return DeliveryDTO{
		ID:             s.ID.Bytes(),
		OrderID:        s.OrderID.Bytes(),
		UserID:         s.UserID,
		ProductID:      s.ProductID,
		Quantity:       s.Quantity,
		Status:         s.Status.String(),
		TrackingNumber: tn,
		CreatedAt:      s.CreatedAt,
		ShippedAt:      s.ShippedAt,
		DeliveredAt:    s.DeliveredAt,
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var tn string
	if dto.TrackingNumber != nil {
		tn = *dto.TrackingNumber
	}

	return delivery.RestoreDelivery(delivery.Snapshot{
		ID:             id,
		OrderID:        orderID,
		UserID:         dto.UserID,
		ProductID:      dto.ProductID,
		Quantity:       dto.Quantity,
		Status:         status,
		TrackingNumber: tn,
		CreatedAt:      dto.CreatedAt,
		ShippedAt:      dto.ShippedAt,
		DeliveredAt:    dto.DeliveredAt,
	})
}
