// Package guard detects value objects and commands that were created as zero
// values instead of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs whose invariants are established by a
// constructor. Its zero value fails validation.
//
//	type CreateOrderCommand struct {
//	    quantity int
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c CreateOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a constructed guard, otherwise err
// (or ErrDefaultConstructorGuard when err is nil).
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
