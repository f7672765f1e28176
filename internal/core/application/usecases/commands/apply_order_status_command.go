package commands

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrApplyOrderStatusCommandIsNotConstructed = errors.New(
	"ApplyOrderStatusCommand must be created via NewApplyOrderStatusCommand constructor",
)

// ApplyOrderStatusCommand mirrors a delivery-side status change onto the order.
type ApplyOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	target         order.Status
	trackingNumber kernel.TrackingNumber
	shippedAt      time.Time
	deliveredAt    time.Time

	guard guard.ConstructorGuard
}

// NewApplyOrderStatusCommand accepts OrderShipped and OrderDelivered.
func NewApplyOrderStatusCommand(event events.Event) (ApplyOrderStatusCommand, error) {
	cmd := ApplyOrderStatusCommand{guard: guard.NewConstructorGuard()}

	switch ev := event.(type) {
	case events.OrderShipped:
		cmd.orderID = ev.OrderID
		cmd.target = order.Shipped
		cmd.trackingNumber = ev.TrackingNumber
		cmd.shippedAt = firstSet(ev.ShippedAt, ev.Timestamp)
	case events.OrderDelivered:
		cmd.orderID = ev.OrderID
		cmd.target = order.Delivered
		cmd.trackingNumber = ev.TrackingNumber
		cmd.shippedAt = firstSet(ev.ShippedAt, ev.DeliveredAt)
		cmd.deliveredAt = ev.DeliveredAt
	default:
		return ApplyOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"event", fmt.Errorf("%T does not change order status", event))
	}

	if err := cmd.orderID.Validate(); err != nil {
		return ApplyOrderStatusCommand{}, err
	}
	return cmd, nil
}

func (c ApplyOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderStatusCommandIsNotConstructed)
}

func (c ApplyOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ApplyOrderStatusCommand) Target() order.Status { return c.target }

func firstSet(times ...time.Time) time.Time {
	for _, t := range times {
		if !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}
