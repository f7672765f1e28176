package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/ports"
)

// DeliverDeliveryCommandHandler completes a shipped delivery and publishes
// OrderDelivered.
type DeliverDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

func NewDeliverDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
) DeliverDeliveryCommandHandler {
	return DeliverDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h *DeliverDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliverDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d, err := transitionDelivery(ctx, h.uowFactory, cmd.ref, func(d *delivery.Delivery) error {
		return d.Deliver(now)
	})
	if err != nil {
		return nil, err
	}

	if err = h.publisher.Publish(ctx, events.NewOrderDelivered(d, now)); err != nil {
		return d, err
	}

	return d, nil
}
