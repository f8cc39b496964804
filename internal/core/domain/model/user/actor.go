package user

import (
	"errors"

	"carrierlink/internal/core/domain/model/kernel"
)

// Actor is the authenticated identity attached to a mutating request.
type Actor struct {
	id   kernel.UserID
	role Role
}

func NewActor(id kernel.UserID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

func (a Actor) ID() kernel.UserID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
