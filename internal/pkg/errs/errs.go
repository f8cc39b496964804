package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrForbidden         = errors.New("action is forbidden")
	ErrInvalidTransition = errors.New("transition is invalid")
	ErrInvalidState      = errors.New("state is invalid")
	ErrConflict          = errors.New("conflict")
)

// ObjectNotFoundError reports that an entity referenced by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed input. ParamName is the field path
// reported back to the caller.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside the inclusive [Min, Max] range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory input.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ForbiddenError reports that the actor lacks the relationship or role the
// action requires.
type ForbiddenError struct {
	Action string
	Reason string
}

func NewForbiddenError(action, reason string) *ForbiddenError {
	return &ForbiddenError{Action: action, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrForbidden, e.Action, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError reports a lifecycle move that the current state does not allow.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidStateError reports an action that requires the entity to be in another state.
type InvalidStateError struct {
	Entity string
	State  string
	Reason string
}

func NewInvalidStateError(entity, state, reason string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, State: state, Reason: reason}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s is %s: %s", ErrInvalidState, e.Entity, e.State, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Resource string
	Reason   string
	Cause    error
}

func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}

func NewConflictErrorWithCause(resource, reason string, cause error) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (cause: %v)", ErrConflict, e.Resource, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConflict, e.Resource, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// IsValidation reports whether err (or any error joined into it) is an input
// validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// FieldError is one {field path, message} pair of a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors flattens err, including errors combined with errors.Join,
// into the validation failures it carries. Non-validation errors are skipped.
func FieldErrors(err error) []FieldError {
	var out []FieldError
	collectFieldErrors(err, &out)
	return out
}

func collectFieldErrors(err error, out *[]FieldError) {
	if err == nil {
		return
	}

	switch e := err.(type) { //nolint:errorlint // joined errors are walked explicitly below
	case *ValueIsRequiredError:
		*out = append(*out, FieldError{Field: e.ParamName, Message: "is required"})
		return
	case *ValueIsInvalidError:
		msg := "is invalid"
		if e.Cause != nil {
			msg = e.Cause.Error()
		}
		*out = append(*out, FieldError{Field: e.ParamName, Message: msg})
		return
	case *ValueIsOutOfRangeError:
		*out = append(*out, FieldError{
			Field:   e.ParamName,
			Message: fmt.Sprintf("must be between %s and %s", sanitize(e.Min), sanitize(e.Max)),
		})
		return
	}

	switch u := err.(type) { //nolint:errorlint // unwrapping by hand
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			collectFieldErrors(inner, out)
		}
	case interface{ Unwrap() error }:
		collectFieldErrors(u.Unwrap(), out)
	}
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
