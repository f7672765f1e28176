package queries

import (
	"context"
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders newest first, optionally only those in one status.
type ListOrdersQuery struct {
	status *order.Status
	guard  guard.ConstructorGuard
}

// NewListOrdersQuery accepts an empty status as "any".
func NewListOrdersQuery(status string) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if status = strings.TrimSpace(status); status != "" {
		s, err := order.ParseStatus(status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status = &s
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").
		Select("id, user_id, product_id, quantity, status, tracking_number, " +
			"idempotency_key, created_at, shipped_at, delivered_at").
		Order("created_at DESC")
	if query.status != nil {
		tx = tx.Where("status = ?", query.status.String())
	}

	views := make([]OrderView, 0)
	if err := tx.Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
