package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
	ErrUnavailable       = errors.New("product is not available")
	ErrTransport         = errors.New("transport failure")
)

// InvalidTransitionError reports a move the status graph does not allow.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidTransitionError(entity string, from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		From:   from.String(),
		To:     to.String(),
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition %s from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError reports a write that lost against a concurrent one, or a
// duplicate identity.
type ConflictError struct {
	Entity string
	ID     string
	Cause  error
}

func NewConflictError(entity, id string) *ConflictError {
	return &ConflictError{
		Entity: entity,
		ID:     id,
	}
}

func NewConflictErrorWithCause(entity, id string, cause error) *ConflictError {
	return &ConflictError{
		Entity: entity,
		ID:     id,
		Cause:  cause,
	}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s was modified concurrently (cause: %v)", ErrConflict, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s was modified concurrently", ErrConflict, e.Entity, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UnavailableError reports that inventory cannot cover a requested quantity.
type UnavailableError struct {
	ProductID string
	Quantity  int
}

func NewUnavailableError(productID string, quantity int) *UnavailableError {
	return &UnavailableError{
		ProductID: productID,
		Quantity:  quantity,
	}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s or insufficient quantity: product %s, requested %d",
		ErrUnavailable, sanitize("%s", e.ProductID), e.Quantity)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// TransportError reports a failed publish or consume on a messaging transport.
type TransportError struct {
	Transport string
	Op        string
	Cause     error
}

func NewTransportError(transport, op string, cause error) *TransportError {
	return &TransportError{
		Transport: transport,
		Op:        op,
		Cause:     cause,
	}
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrTransport, e.Transport, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrTransport, e.Transport, e.Op)
}

func (e *TransportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Cause}
}
