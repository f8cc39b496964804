package delivery

import (
	"fmt"

	"carrierlink/internal/pkg/errs"
)

// Status is the lifecycle stage of a delivery.
//
//	Requested ──> Accepted ──> Picked ──> Delivered
//
// Each transition method checks only the source state. Who may perform the
// transition is decided by the aggregate and the lifecycle service.
type Status int

const (
	// Unknown catches uninitialized values and is never persisted.
	Unknown Status = iota
	Requested
	Accepted
	Picked
	Delivered
)

var statusNames = map[Status]string{
	Requested: "requested",
	Accepted:  "accepted",
	Picked:    "picked",
	Delivered: "delivered",
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Requested, Accepted, Picked, Delivered}
}

// ParseStatus converts the wire name of a status. Matching is exact.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition exists.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Accept transitions Requested to Accepted.
func (s Status) Accept() (Status, error) {
	return s.advance(Requested, Accepted)
}

// Pickup transitions Accepted to Picked.
func (s Status) Pickup() (Status, error) {
	return s.advance(Accepted, Picked)
}

// Deliver transitions Picked to Delivered.
func (s Status) Deliver() (Status, error) {
	return s.advance(Picked, Delivered)
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}

// ValidateCanHaveCarrier checks the carrier invariant: Requested deliveries
// have no carrier, every later status has one.
func (s Status) ValidateCanHaveCarrier(hasCarrier bool) error {
	if hasCarrier && s == Requested {
		return errs.NewValueIsInvalidErrorWithCause(
			"carrierId",
			fmt.Errorf("%s is not a valid status to have a carrier", s),
		)
	}

	if !hasCarrier && s != Requested {
		return errs.NewValueIsInvalidErrorWithCause(
			"carrierId",
			fmt.Errorf("%s is not a valid status to have no carrier", s),
		)
	}

	return nil
}
