package services

import (
	"errors"
	"strings"

	"carrierlink/internal/core/domain/model/user"
)

var ErrAcceptancePolicyIsEmpty = errors.New("acceptance policy must allow at least one role")

// AcceptancePolicy is the set of roles allowed to accept a delivery request.
// It is supplied at construction time so the product rule can change without
// touching the lifecycle.
type AcceptancePolicy struct {
	roles map[user.Role]struct{}
}

// NewAcceptancePolicy builds a policy from the given roles.
func NewAcceptancePolicy(roles ...user.Role) (AcceptancePolicy, error) {
	p := AcceptancePolicy{roles: make(map[user.Role]struct{}, len(roles))}
	for _, r := range roles {
		if err := r.Validate(); err != nil {
			return AcceptancePolicy{}, err
		}
		p.roles[r] = struct{}{}
	}
	if len(p.roles) == 0 {
		return AcceptancePolicy{}, ErrAcceptancePolicyIsEmpty
	}
	return p, nil
}

// ParseAcceptancePolicy reads a comma separated role list such as "carrier,both".
func ParseAcceptancePolicy(s string) (AcceptancePolicy, error) {
	var roles []user.Role
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := user.ParseRole(part)
		if err != nil {
			return AcceptancePolicy{}, err
		}
		roles = append(roles, r)
	}
	return NewAcceptancePolicy(roles...)
}

// DefaultAcceptancePolicy lets carriers and dual-role users accept.
func DefaultAcceptancePolicy() AcceptancePolicy {
	return AcceptancePolicy{roles: map[user.Role]struct{}{
		user.Carrier: {},
		user.Both:    {},
	}}
}

func (p AcceptancePolicy) Allows(role user.Role) bool {
	_, ok := p.roles[role]
	return ok
}
