package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery finds one delivery by its own id or by the id of the order
// it was opened for.
type GetDeliveryQuery struct {
	id     kernel.UUID
	column string
	guard  guard.ConstructorGuard
}

func NewGetDeliveryQuery(rawID string) (GetDeliveryQuery, error) {
	id, err := parseID("delivery", rawID)
	if err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{id: id, column: "id", guard: guard.NewConstructorGuard()}, nil
}

func NewGetDeliveryByOrderQuery(rawOrderID string) (GetDeliveryQuery, error) {
	id, err := parseID("order", rawOrderID)
	if err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{id: id, column: "order_id", guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	var views []DeliveryView
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, user_id, product_id, quantity, status,
		       tracking_number, created_at, shipped_at, delivered_at
		FROM deliveries
		WHERE `+query.column+` = ?
	`, query.id.Bytes()).Scan(&views).Error
	if err != nil {
		return DeliveryView{}, err
	}

	if len(views) == 0 {
		return DeliveryView{}, errs.NewObjectNotFoundError("delivery "+query.column, query.id.String())
	}
	return views[0], nil
}
