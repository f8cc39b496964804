// Package guard holds ConstructorGuard, which lets value objects, commands and
// queries detect that they were built as zero values instead of through their
// constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object was
// not constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// Embed it as a field and set it with NewConstructorGuard inside the constructor:
//
//	type SubmitReviewCommand struct {
//	    rating int
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c SubmitReviewCommand) Validate() error {
//	    return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
//	}
//
// The zero value reports the object as not constructed.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
