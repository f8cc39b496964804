package ports

import (
	"context"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/review"
)

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	// Add inserts a review. A second review for the same delivery and
	// reviewer yields errs.ConflictError.
	Add(ctx context.Context, aggregate *review.Review) error

	ExistsForReviewer(ctx context.Context, deliveryID kernel.UUID, reviewerID kernel.UserID) (bool, error)

	// ListForReviewee returns reviews received by the user, newest first.
	ListForReviewee(ctx context.Context, revieweeID kernel.UserID) ([]*review.Review, error)

	// StatsForReviewee returns count and sum of all ratings the user received.
	StatsForReviewee(ctx context.Context, revieweeID kernel.UserID) (review.Stats, error)
}
