package delivery

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
//	Processing ──> Shipped ──> Delivered
type Status int

const (
	Unknown Status = iota
	Processing
	Shipped
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
	}
}

func successors() map[Status][]Status {
	//nolint:exhaustive // Unknown has no successors
	return map[Status][]Status{
		Processing: {Shipped},
		Shipped:    {Delivered},
		Delivered:  {},
	}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", s))
}

// IsValidTransition reports whether next is in the successor set of current.
func IsValidTransition(current, next Status) bool {
	for _, s := range successors()[current] {
		if s == next {
			return true
		}
	}
	return false
}

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

func (s Status) CanTransitionTo(next Status) bool {
	return IsValidTransition(s, next)
}

func (s Status) Stage() kernel.Stage {
	switch s {
	case Processing:
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

func (s Status) Ship() (Status, error) {
	if !s.CanTransitionTo(Shipped) {
		return 0, errs.NewInvalidTransitionError("delivery", s, Shipped)
	}
	return Shipped, nil
}

func (s Status) Deliver() (Status, error) {
	if !s.CanTransitionTo(Delivered) {
		return 0, errs.NewInvalidTransitionError("delivery", s, Delivered)
	}
	return Delivered, nil
}
