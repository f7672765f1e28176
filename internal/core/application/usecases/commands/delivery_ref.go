package commands

import (
	"context"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// Lookup selects which identifier a delivery command addresses.
type Lookup int

const (
	// ByDeliveryID addresses the delivery by its own id.
	ByDeliveryID Lookup = iota
	// ByOrderID addresses the delivery by the correlating order id.
	ByOrderID
)

type deliveryRef struct {
	id     kernel.UUID
	lookup Lookup
}

// newDeliveryRef parses raw; malformed and nil ids are reported as not found
// since no delivery can carry them.
func newDeliveryRef(raw string, lookup Lookup) (deliveryRef, error) {
	id, err := kernel.UUIDFromString(raw)
	if err == nil {
		err = id.Validate()
	}
	if err != nil {
		return deliveryRef{}, errs.NewObjectNotFoundErrorWithCause(lookup.entity(), raw, err)
	}
	return deliveryRef{id: id, lookup: lookup}, nil
}

func (r deliveryRef) load(ctx context.Context, repo ports.DeliveryRepository) (*delivery.Delivery, error) {
	if r.lookup == ByOrderID {
		return repo.GetByOrderID(ctx, r.id)
	}
	return repo.Get(ctx, r.id)
}

func (l Lookup) entity() string {
	if l == ByOrderID {
		return "order"
	}
	return "delivery"
}
