package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery lists what the event log recorded for one order,
// oldest first. An order with no records yields an empty timeline.
type GetOrderTimelineQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderTimelineQuery(rawOrderID string) (GetOrderTimelineQuery, error) {
	id, err := parseID("order", rawOrderID)
	if err != nil {
		return GetOrderTimelineQuery{}, err
	}
	return GetOrderTimelineQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

func (h GetOrderTimelineQueryHandler) Handle(ctx context.Context, query GetOrderTimelineQuery) ([]OrderEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]OrderEventView, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT event_type, status, tracking_number, topic,
		       log_partition AS partition, log_offset AS "offset",
		       occurred_at, recorded_at
		FROM order_events
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.orderID.Bytes()).Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
