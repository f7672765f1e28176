package kernel

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
)

// Stage is the position of an order or delivery along the shared fulfillment
// path. Both aggregates map their own status enum onto it.
type Stage int

const (
	StageUnknown Stage = iota
	StageOpen
	StageShipped
	StageDelivered
)

// ValidateFulfillment checks that tracking data and timestamps agree with stage:
// shippedAt and trackingNumber are set iff stage >= Shipped, deliveredAt iff
// stage == Delivered, and delivery does not precede shipment. Timestamps are
// not compared with createdAt since they may come from another service's clock.
func ValidateFulfillment(
	stage Stage,
	createdAt time.Time,
	trackingNumber TrackingNumber,
	shippedAt, deliveredAt *time.Time,
) error {
	var problems []error

	if createdAt.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("created_at"))
	}

	shipped := stage >= StageShipped
	if shipped != (shippedAt != nil) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"shipped_at", fmt.Errorf("presence must match stage %d", stage)))
	}
	if shipped != !trackingNumber.IsZero() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"tracking_number", fmt.Errorf("presence must match stage %d", stage)))
	}
	if (stage == StageDelivered) != (deliveredAt != nil) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"delivered_at", fmt.Errorf("presence must match stage %d", stage)))
	}
	if deliveredAt != nil && shippedAt != nil && deliveredAt.Before(*shippedAt) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"delivered_at", errors.New("precedes shipped_at")))
	}

	return errors.Join(problems...)
}
