package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/events"
)

type createDeliveryHandler interface {
	Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) (commands.CreateDeliveryResult, error)
}

type applyOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ApplyOrderStatusCommand) (commands.ApplyOrderStatusResult, error)
}

// CreateDeliveryHandler opens a delivery for every OrderCreated.
func CreateDeliveryHandler(h createDeliveryHandler, logger *slog.Logger) Handler {
	return HandlerFunc(func(ctx context.Context, e events.Event) error {
		created, ok := e.(events.OrderCreated)
		if !ok {
			return fmt.Errorf("%w: %s", events.ErrUnknownEventType, e.Type())
		}

		cmd, err := commands.NewCreateDeliveryCommand(created)
		if err != nil {
			return err
		}

		res, err := h.Handle(ctx, cmd)
		if err != nil {
			return err
		}

		logger.InfoContext(ctx, "delivery ready",
			"order_id", created.OrderID.String(),
			"delivery_id", res.Delivery.ID().String(),
			"created", res.Created)
		return nil
	})
}

// ApplyOrderStatusHandler mirrors OrderShipped and OrderDelivered onto the order.
func ApplyOrderStatusHandler(h applyOrderStatusHandler, logger *slog.Logger) Handler {
	return HandlerFunc(func(ctx context.Context, e events.Event) error {
		cmd, err := commands.NewApplyOrderStatusCommand(e)
		if err != nil {
			return err
		}

		res, err := h.Handle(ctx, cmd)
		if err != nil {
			return err
		}

		logger.InfoContext(ctx, "order status applied",
			"order_id", cmd.OrderID().String(),
			"status", res.Order.Status().String(),
			"applied", res.Applied)
		return nil
	})
}
