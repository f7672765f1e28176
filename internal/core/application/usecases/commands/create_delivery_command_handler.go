package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// CreateDeliveryResult reports whether this call created the delivery or
// found the one an earlier delivery of the same event created.
type CreateDeliveryResult struct {
	Delivery *delivery.Delivery
	Created  bool
}

// CreateDeliveryCommandHandler is create-or-return keyed by order_id. Two
// concurrent inserts for one order collide on the unique order_id index; the
// loser reads back the winner's record.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (CreateDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateDeliveryResult{}, err
	}
	ev := cmd.Event()

	existing, err := h.uowFactory.Create().DeliveryRepository().GetByOrderID(ctx, ev.OrderID)
	switch {
	case err == nil:
		return CreateDeliveryResult{Delivery: existing}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return CreateDeliveryResult{}, err
	}

	d, err := delivery.NewDelivery(kernel.NewUUID(), ev.OrderID, ev.UserID, ev.ProductID, ev.Quantity, time.Now().UTC())
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = h.insert(ctx, d); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			existing, findErr := h.uowFactory.Create().DeliveryRepository().GetByOrderID(ctx, ev.OrderID)
			if findErr != nil {
				return CreateDeliveryResult{}, errors.Join(err, findErr)
			}
			return CreateDeliveryResult{Delivery: existing}, nil
		}
		return CreateDeliveryResult{}, err
	}

	return CreateDeliveryResult{Delivery: d, Created: true}, nil
}

func (h *CreateDeliveryCommandHandler) insert(ctx context.Context, d *delivery.Delivery) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeliveryRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
