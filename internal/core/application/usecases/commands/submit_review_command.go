package commands

import (
	"errors"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"
	"carrierlink/internal/pkg/guard"
)

var (
	ErrSubmitReviewCommandIsNotConstructed = errors.New(
		"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
	)
)

// SubmitReviewCommand is a party's rating of the counterpart on a delivered delivery.
// The rating range is checked by the handler, after the lifecycle and
// duplicate checks, so callers learn about the most fundamental problem first.
type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	reviewID   kernel.UUID
	deliveryID kernel.UUID
	reviewerID kernel.UserID
	revieweeID kernel.UserID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

func NewSubmitReviewCommand(
	reviewID, deliveryID kernel.UUID,
	reviewerID, revieweeID kernel.UserID,
	rating int,
	comment string,
) (SubmitReviewCommand, error) {
	cmd := SubmitReviewCommand{
		rating:  rating,
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(reviewID, deliveryID),
		cmd.setParties(reviewerID, revieweeID),
	); err != nil {
		return SubmitReviewCommand{}, err
	}

	return cmd, nil
}

func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

func (c SubmitReviewCommand) ReviewID() kernel.UUID { return c.reviewID }
func (c SubmitReviewCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c SubmitReviewCommand) ReviewerID() kernel.UserID { return c.reviewerID }
func (c SubmitReviewCommand) RevieweeID() kernel.UserID { return c.revieweeID }
func (c SubmitReviewCommand) Rating() int { return c.rating }
func (c SubmitReviewCommand) Comment() string { return c.comment }

func (c *SubmitReviewCommand) setIDs(reviewID, deliveryID kernel.UUID) error {
	if err := reviewID.Validate(); err != nil {
		return err
	}
	if err := deliveryID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("id")
	}
	c.reviewID = reviewID
	c.deliveryID = deliveryID
	return nil
}

func (c *SubmitReviewCommand) setParties(reviewerID, revieweeID kernel.UserID) error {
	if err := reviewerID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("reviewerId")
	}
	if err := revieweeID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("revieweeId")
	}
	c.reviewerID = reviewerID
	c.revieweeID = revieweeID
	return nil
}
