package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// ApplyOrderStatusResult reports whether the order was written. Applied is
// false when the order had already reached the target.
type ApplyOrderStatusResult struct {
	Order   *order.Order
	Applied bool
}

// ApplyOrderStatusCommandHandler is the sales-side consumer of shipment
// events. Redelivered and out-of-order events converge on the same state.
type ApplyOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewApplyOrderStatusCommandHandler(uowFactory OrderUoWFactory) ApplyOrderStatusCommandHandler {
	return ApplyOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h *ApplyOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyOrderStatusCommand,
) (ApplyOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ApplyOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.orderID)
	if err != nil {
		return ApplyOrderStatusResult{}, err
	}

	expected := o.Status()
	changed, err := o.AdvanceTo(cmd.target, cmd.trackingNumber, cmd.shippedAt, cmd.deliveredAt)
	if err != nil {
		return ApplyOrderStatusResult{}, err
	}
	if !changed {
		return ApplyOrderStatusResult{Order: o}, nil
	}

	if err = repo.UpdateStatus(ctx, o, expected); err != nil {
		return ApplyOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ApplyOrderStatusResult{}, err
	}

	return ApplyOrderStatusResult{Order: o, Applied: true}, nil
}
