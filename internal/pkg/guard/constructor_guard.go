// Package guard ensures commands, queries and value objects are only used
// after going through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs whose zero value must be rejected.
// Only NewConstructorGuard produces a guard that passes Validate.
//
// Example:
//
//	var ErrBookDeliveryCommandIsNotConstructed = errors.New("BookDeliveryCommand must be created via NewBookDeliveryCommand")
//
//	type BookDeliveryCommand struct {
//	    key   string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c BookDeliveryCommand) Validate() error {
//	    return c.guard.Validate(ErrBookDeliveryCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
