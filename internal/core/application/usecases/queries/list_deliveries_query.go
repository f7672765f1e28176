package queries

import (
	"context"
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

type ListDeliveriesQuery struct {
	status *delivery.Status
	guard  guard.ConstructorGuard
}

func NewListDeliveriesQuery(status string) (ListDeliveriesQuery, error) {
	q := ListDeliveriesQuery{guard: guard.NewConstructorGuard()}
	if status = strings.TrimSpace(status); status != "" {
		s, err := delivery.ParseStatus(status)
		if err != nil {
			return ListDeliveriesQuery{}, err
		}
		q.status = &s
	}
	return q, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("deliveries").
		Select("id, order_id, user_id, product_id, quantity, status, " +
			"tracking_number, created_at, shipped_at, delivered_at").
		Order("created_at DESC")
	if query.status != nil {
		tx = tx.Where("status = ?", query.status.String())
	}

	views := make([]DeliveryView, 0)
	if err := tx.Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
