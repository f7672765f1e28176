package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetOrderQuery returns errs.ObjectNotFoundError for a malformed or nil id.
func NewGetOrderQuery(rawID string) (GetOrderQuery, error) {
	id, err := parseID("order", rawID)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var views []OrderView
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, user_id, product_id, quantity, status, tracking_number,
		       idempotency_key, created_at, shipped_at, delivered_at
		FROM orders
		WHERE id = ?
	`, query.id.Bytes()).Scan(&views).Error
	if err != nil {
		return OrderView{}, err
	}

	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.id.String())
	}
	return views[0], nil
}
