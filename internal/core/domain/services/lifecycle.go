package services

import (
	"fmt"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/pkg/errs"
)

// Lifecycle applies a requested status change to a delivery on behalf of an actor.
//
// Rules, in order:
//   - accepted: the delivery must be requested, the actor must not be the
//     sender and the actor's role must be allowed by the acceptance policy
//   - picked, delivered: the actor must be a party, the delivery must be in
//     the preceding status and the actor must be the carrier
//   - any other target is a validation error
//
// State violations return errs.InvalidTransitionError, actor violations
// errs.ForbiddenError. The delivery is modified only on success.
type Lifecycle struct {
	policy AcceptancePolicy
}

func NewLifecycle(policy AcceptancePolicy) Lifecycle {
	return Lifecycle{policy: policy}
}

// Transition moves d to target. It returns the status d had before the move,
// which persistence uses as the compare-and-swap guard.
func (l Lifecycle) Transition(d *delivery.Delivery, actor user.Actor, target delivery.Status) (delivery.Status, error) {
	if err := d.Validate(); err != nil {
		return delivery.Unknown, err
	}
	if err := actor.Validate(); err != nil {
		return delivery.Unknown, err
	}

	previous := d.Status()

	switch target {
	case delivery.Accepted:
		if err := l.accept(d, actor); err != nil {
			return delivery.Unknown, err
		}
	case delivery.Picked, delivery.Delivered:
		if !d.IsParty(actor.ID()) {
			return delivery.Unknown, errs.NewForbiddenError("update delivery status", "not associated with this delivery")
		}
		advance := d.Pickup
		if target == delivery.Delivered {
			advance = d.Deliver
		}
		if err := advance(actor.ID()); err != nil {
			return delivery.Unknown, err
		}
	case delivery.Unknown, delivery.Requested:
		return delivery.Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a reachable status", target),
		)
	default:
		return delivery.Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", target))
	}

	return previous, nil
}

func (l Lifecycle) accept(d *delivery.Delivery, actor user.Actor) error {
	if _, err := d.Status().Accept(); err != nil {
		return err
	}
	if d.IsSender(actor.ID()) {
		return errs.NewForbiddenError("accept delivery", "sender cannot accept their own delivery")
	}
	if !l.policy.Allows(actor.Role()) {
		return errs.NewForbiddenError("accept delivery", fmt.Sprintf("role %s may not accept deliveries", actor.Role()))
	}
	return d.Accept(actor.ID())
}
