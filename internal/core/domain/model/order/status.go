package order

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Shipped ──> Delivered
//
// Delivered is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a created order.
	Pending

	// Shipped indicates the fulfillment side handed the order to a carrier.
	Shipped

	// Delivered is the final state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Shipped:   "Shipped",
		Delivered: "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Shipped:   "Shipped",
		Delivered: "Delivered",
	}
}

// successors is the legal state graph.
func successors() map[Status][]Status {
	//nolint:exhaustive // Unknown has no successors
	return map[Status][]Status{
		Pending:   {Shipped},
		Shipped:   {Delivered},
		Delivered: {},
	}
}

// ParseStatus converts a wire or query value ("Pending", "Shipped", "Delivered").
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// IsValidTransition reports whether next is in the successor set of current.
// It is pure; values outside the enum have no successors.
func IsValidTransition(current, next Status) bool {
	for _, s := range successors()[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Validate checks that s is one of Pending, Shipped, Delivered.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo is IsValidTransition with s as the current status.
func (s Status) CanTransitionTo(next Status) bool {
	return IsValidTransition(s, next)
}

// Reached reports whether target is at or behind s on the lifecycle path,
// i.e. a transition to target has already been applied.
func (s Status) Reached(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	return target.Stage() <= s.Stage()
}

// Stage maps the status onto the shared fulfillment path.
func (s Status) Stage() kernel.Stage {
	switch s {
	case Pending:
		return kernel.StageOpen
	case Shipped:
		return kernel.StageShipped
	case Delivered:
		return kernel.StageDelivered
	case Unknown:
		return kernel.StageUnknown
	}
	return kernel.StageUnknown
}

// Ship returns Shipped if the transition from s is legal.
func (s Status) Ship() (Status, error) {
	if !s.CanTransitionTo(Shipped) {
		return 0, errs.NewInvalidTransitionError("order", s, Shipped)
	}
	return Shipped, nil
}

// Deliver returns Delivered if the transition from s is legal.
func (s Status) Deliver() (Status, error) {
	if !s.CanTransitionTo(Delivered) {
		return 0, errs.NewInvalidTransitionError("order", s, Delivered)
	}
	return Delivered, nil
}
