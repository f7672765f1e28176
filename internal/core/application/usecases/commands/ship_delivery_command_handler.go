package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/ports"
)

// ShipDeliveryCommandHandler ships a delivery and publishes OrderShipped.
//
// The status write is conditional on the status read in the same
// transaction, so of two concurrent ships exactly one succeeds and the other
// gets errs.ConflictError. The returned delivery is re-read after commit.
type ShipDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	tracking   TrackingNumberGenerator
	publisher  ports.EventPublisher
}

func NewShipDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	tracking TrackingNumberGenerator,
	publisher ports.EventPublisher,
) ShipDeliveryCommandHandler {
	return ShipDeliveryCommandHandler{
		uowFactory: uowFactory,
		tracking:   tracking,
		publisher:  publisher,
	}
}

func (h *ShipDeliveryCommandHandler) Handle(ctx context.Context, cmd ShipDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	trackingNumber, err := h.tracking.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d, err := transitionDelivery(ctx, h.uowFactory, cmd.ref, func(d *delivery.Delivery) error {
		return d.Ship(trackingNumber, now)
	})
	if err != nil {
		return nil, err
	}

	if err = h.publisher.Publish(ctx, events.NewOrderShipped(d, now)); err != nil {
		return d, err
	}

	return d, nil
}

// transitionDelivery loads the referenced delivery, applies transition,
// writes it with a compare-and-swap on the previous status, commits and
// returns the stored state.
func transitionDelivery(
	ctx context.Context,
	uowFactory DeliveryUoWFactory,
	ref deliveryRef,
	transition func(*delivery.Delivery) error,
) (*delivery.Delivery, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	d, err := ref.load(ctx, repo)
	if err != nil {
		return nil, err
	}

	expected := d.Status()
	if err = transition(d); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, d, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return uowFactory.Create().DeliveryRepository().Get(ctx, d.ID())
}
