package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrShipDeliveryCommandIsNotConstructed = errors.New(
	"ShipDeliveryCommand must be created via NewShipDeliveryCommand constructor",
)

// ShipDeliveryCommand moves a Processing delivery to Shipped.
type ShipDeliveryCommand struct { //nolint:recvcheck //using for validation
	ref   deliveryRef
	guard guard.ConstructorGuard
}

// NewShipDeliveryCommand addresses the delivery by raw id, interpreted per lookup.
// A malformed or nil id yields errs.ObjectNotFoundError.
func NewShipDeliveryCommand(rawID string, lookup Lookup) (ShipDeliveryCommand, error) {
	ref, err := newDeliveryRef(rawID, lookup)
	if err != nil {
		return ShipDeliveryCommand{}, err
	}
	return ShipDeliveryCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c ShipDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrShipDeliveryCommandIsNotConstructed)
}

func (c ShipDeliveryCommand) ID() kernel.UUID { return c.ref.id }
func (c ShipDeliveryCommand) Lookup() Lookup  { return c.ref.lookup }
