package services

import (
	"errors"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"
)

// ReviewPolicy checks whether reviewer may rate reviewee for delivery d.
// Duplicate detection and rating range are left to the caller, which checks
// them after this policy in that order.
type ReviewPolicy struct{}

func NewReviewPolicy() ReviewPolicy {
	return ReviewPolicy{}
}

// Check returns errs.InvalidStateError when d is not delivered,
// errs.ForbiddenError when reviewer is not a party and a validation error when
// reviewee is not the other party.
func (ReviewPolicy) Check(d *delivery.Delivery, reviewer, reviewee kernel.UserID) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Status() != delivery.Delivered {
		return errs.NewInvalidStateError("delivery", d.Status().String(), "can only review completed deliveries")
	}
	if !d.IsParty(reviewer) {
		return errs.NewForbiddenError("review delivery", "not associated with this delivery")
	}
	counterpart, ok := d.OtherParty(reviewer)
	if !ok || !counterpart.IsEqual(reviewee) {
		return errs.NewValueIsInvalidErrorWithCause("revieweeId", errors.New("must be the other party of the delivery"))
	}
	return nil
}
