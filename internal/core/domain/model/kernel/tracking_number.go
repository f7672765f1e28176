package kernel

import (
	"fmt"
	"regexp"

	"orderflow/internal/pkg/errs"
)

var trackingNumberPattern = regexp.MustCompile(`^TRACK-[0-9]+-[A-Z0-9]{9}$`)

// TrackingNumber is the human-presentable shipment identifier.
type TrackingNumber struct {
	value string
}

// NewTrackingNumber validates s against TRACK-<digits>-<9 uppercase alphanumerics>.
func NewTrackingNumber(s string) (TrackingNumber, error) {
	if s == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("tracking_number")
	}
	if !trackingNumberPattern.MatchString(s) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking_number",
			fmt.Errorf("%q does not match TRACK-<digits>-<9 alphanumerics>", s),
		)
	}
	return TrackingNumber{value: s}, nil
}

func (t TrackingNumber) String() string {
	return t.value
}

func (t TrackingNumber) IsZero() bool {
	return t.value == ""
}

func (t TrackingNumber) Validate() error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("tracking_number")
	}
	return nil
}
