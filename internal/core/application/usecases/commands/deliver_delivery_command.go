package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDeliverDeliveryCommandIsNotConstructed = errors.New(
	"DeliverDeliveryCommand must be created via NewDeliverDeliveryCommand constructor",
)

// DeliverDeliveryCommand moves a Shipped delivery to Delivered.
type DeliverDeliveryCommand struct { //nolint:recvcheck //using for validation
	ref   deliveryRef
	guard guard.ConstructorGuard
}

func NewDeliverDeliveryCommand(rawID string, lookup Lookup) (DeliverDeliveryCommand, error) {
	ref, err := newDeliveryRef(rawID, lookup)
	if err != nil {
		return DeliverDeliveryCommand{}, err
	}
	return DeliverDeliveryCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeliverDeliveryCommandIsNotConstructed)
}

func (c DeliverDeliveryCommand) ID() kernel.UUID { return c.ref.id }
func (c DeliverDeliveryCommand) Lookup() Lookup  { return c.ref.lookup }
