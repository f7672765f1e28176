package commands

import (
	"errors"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand opens a delivery for a newly created order.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	event events.OrderCreated
	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(event events.OrderCreated) (CreateDeliveryCommand, error) {
	if err := event.OrderID.Validate(); err != nil {
		return CreateDeliveryCommand{}, err
	}
	return CreateDeliveryCommand{event: event, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) Event() events.OrderCreated { return c.event }
