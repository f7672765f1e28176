// Package eventlogrepo stores the per-order timeline projected from the event
// log topic.
package eventlogrepo

import (
	"context"
	"time"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderEventDTO is one row of order_events. (topic, partition, offset) is
// unique so redelivered records collapse.
type OrderEventDTO struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	Topic          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_order_events_position"`
	Partition      int       `gorm:"column:log_partition;not null;uniqueIndex:idx_order_events_position"`
	Offset         int64     `gorm:"column:log_offset;not null;uniqueIndex:idx_order_events_position"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType      string    `gorm:"type:varchar(32);not null"`
	Status         string    `gorm:"type:varchar(16)"`
	TrackingNumber string    `gorm:"type:varchar(64)"`
	OccurredAt     time.Time `gorm:"not null"`
	RecordedAt     time.Time `gorm:"not null"`
}

func (OrderEventDTO) TableName() string {
	return "order_events"
}

// GormOrderEventLog implements ports.OrderEventLog.
type GormOrderEventLog struct {
	db *gorm.DB
}

func NewGormOrderEventLog(db *gorm.DB) *GormOrderEventLog {
	return &GormOrderEventLog{db: db}
}

func (l *GormOrderEventLog) Append(ctx context.Context, record events.Record) (bool, error) {
	dto := OrderEventDTO{
		Topic:          record.Position.Topic,
		Partition:      record.Position.Partition,
		Offset:         record.Position.Offset,
		OrderID:        record.OrderID.Bytes(),
		EventType:      string(record.EventType),
		Status:         record.Status,
		TrackingNumber: record.TrackingNumber,
		OccurredAt:     record.OccurredAt,
		RecordedAt:     record.RecordedAt,
	}

	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (l *GormOrderEventLog) ListByOrderID(ctx context.Context, orderID kernel.UUID) ([]events.Record, error) {
	var dtos []OrderEventDTO
	err := l.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]events.Record, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.OrderID[:])
		if err != nil {
			return nil, err
		}
		records = append(records, events.Record{
			Position: events.Position{
				Topic:     dto.Topic,
				Partition: dto.Partition,
				Offset:    dto.Offset,
			},
			OrderID:        id,
			EventType:      events.Type(dto.EventType),
			Status:         dto.Status,
			TrackingNumber: dto.TrackingNumber,
			OccurredAt:     dto.OccurredAt,
			RecordedAt:     dto.RecordedAt,
		})
	}
	return records, nil
}
