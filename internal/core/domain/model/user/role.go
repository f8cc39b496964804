package user

import (
	"fmt"

	"carrierlink/internal/pkg/errs"
)

// Role states which side of a delivery a user signs up for.
type Role int

const (
	UnknownRole Role = iota
	Sender
	Carrier
	Both
)

var roleNames = map[Role]string{
	Sender:  "sender",
	Carrier: "carrier",
	Both:    "both",
}

// ParseRole converts the wire name of a role.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not one of sender, carrier, both", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}
