package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Quantity is a strictly positive number of product units.
type Quantity int

func NewQuantity(v int) (Quantity, error) {
	if v < 1 {
		return 0, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than or equal to 1", v))
	}
	return Quantity(v), nil
}

func (q Quantity) Int() int {
	return int(q)
}

func (q Quantity) Validate() error {
	if q < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than or equal to 1", int(q)))
	}
	return nil
}
