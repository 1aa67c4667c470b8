// Package guard holds ConstructorGuard, a marker embedded in commands, queries and value objects
// so that a zero value can be told apart from one built by its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. Embed it and call Validate from the
// owning type's Validate method:
//
//	type SubmitCheckoutCommand struct {
//	    source CartSource
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c SubmitCheckoutCommand) Validate() error {
//	    return c.guard.Validate(ErrSubmitCheckoutCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns err (or ErrDefaultConstructorGuard when err is nil) for a zero-value guard.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
