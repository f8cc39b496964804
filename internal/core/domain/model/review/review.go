package review

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"
)

const (
	MinRating        = 1
	MaxRating        = 5
	CommentMaxLength = 1000
)

var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

// Review is one party's rating of the other after a completed delivery.
type Review struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	reviewerID kernel.UserID
	revieweeID kernel.UserID
	rating     int
	comment    string
	createdAt  time.Time

	isConstructed bool
}

// NewReview validates a new review.
func NewReview(
	id, deliveryID kernel.UUID,
	reviewerID, revieweeID kernel.UserID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	r := &Review{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setDelivery(deliveryID),
		r.setParties(reviewerID, revieweeID),
		r.setRating(rating),
		r.setComment(comment),
		r.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreReview rebuilds a persisted review. It applies the same checks as NewReview.
func RestoreReview(
	id, deliveryID kernel.UUID,
	reviewerID, revieweeID kernel.UserID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	return NewReview(id, deliveryID, reviewerID, revieweeID, rating, comment, createdAt)
}

func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}
	return nil
}

func (r *Review) ID() kernel.UUID { return r.id }
func (r *Review) DeliveryID() kernel.UUID { return r.deliveryID }
func (r *Review) ReviewerID() kernel.UserID { return r.reviewerID }
func (r *Review) RevieweeID() kernel.UserID { return r.revieweeID }
func (r *Review) Rating() int { return r.rating }
func (r *Review) Comment() string { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }

// ValidateRating checks the accepted rating range.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	return nil
}

func (r *Review) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Review) setDelivery(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("deliveryId")
	}
	r.deliveryID = deliveryID
	return nil
}

func (r *Review) setParties(reviewerID, revieweeID kernel.UserID) error {
	if err := reviewerID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("reviewerId")
	}
	if err := revieweeID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("revieweeId")
	}
	if reviewerID.IsEqual(revieweeID) {
		return errs.NewValueIsInvalidErrorWithCause("revieweeId", errors.New("cannot review yourself"))
	}
	r.reviewerID = reviewerID
	r.revieweeID = revieweeID
	return nil
}

func (r *Review) setRating(rating int) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	r.rating = rating
	return nil
}

func (r *Review) setComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > CommentMaxLength {
		return errs.NewValueIsInvalidErrorWithCause("comment", fmt.Errorf("must be at most %d characters", CommentMaxLength))
	}
	r.comment = comment
	return nil
}

func (r *Review) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	r.createdAt = createdAt
	return nil
}
