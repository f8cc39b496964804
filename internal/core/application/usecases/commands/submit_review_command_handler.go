package commands

import (
	"context"
	"time"

	"carrierlink/internal/core/domain/model/review"
	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/core/domain/services"
	"carrierlink/internal/pkg/errs"
)

// SubmitReviewResult is the stored review and the reviewee's refreshed profile.
type SubmitReviewResult struct {
	Review   *review.Review
	Reviewee user.PublicProfile
}

// SubmitReviewCommandHandler is the rating engine's write path.
//
// Checks run in this order: delivery exists and is delivered, reviewer is a
// party, reviewee is the other party, no earlier review by this reviewer,
// rating in range. The reviewee row is locked before the duplicate check, so
// the insert and the recomputed aggregate commit together and concurrent
// reviews of the same user apply one after another.
type SubmitReviewCommandHandler struct {
	uowFactory UoWFactory
	policy     services.ReviewPolicy
	now        func() time.Time
}

func NewSubmitReviewCommandHandler(uowFactory UoWFactory) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewReviewPolicy(),
		now:        time.Now,
	}
}

func (h SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (SubmitReviewResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitReviewResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SubmitReviewResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveries := uow.DeliveryRepository()
	users := uow.UserRepository()
	reviews := uow.ReviewRepository()

	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return SubmitReviewResult{}, err
	}

	if err = h.policy.Check(d, cmd.ReviewerID(), cmd.RevieweeID()); err != nil {
		return SubmitReviewResult{}, err
	}

	reviewee, err := users.GetForUpdate(ctx, cmd.RevieweeID())
	if err != nil {
		return SubmitReviewResult{}, err
	}

	exists, err := reviews.ExistsForReviewer(ctx, cmd.DeliveryID(), cmd.ReviewerID())
	if err != nil {
		return SubmitReviewResult{}, err
	}
	if exists {
		return SubmitReviewResult{}, errs.NewConflictError("review", "already reviewed")
	}

	r, err := review.NewReview(
		cmd.ReviewID(),
		cmd.DeliveryID(),
		cmd.ReviewerID(),
		cmd.RevieweeID(),
		cmd.Rating(),
		cmd.Comment(),
		h.now().UTC(),
	)
	if err != nil {
		return SubmitReviewResult{}, err
	}

	if err = reviews.Add(ctx, r); err != nil {
		return SubmitReviewResult{}, err
	}

	stats, err := reviews.StatsForReviewee(ctx, cmd.RevieweeID())
	if err != nil {
		return SubmitReviewResult{}, err
	}

	if err = reviewee.ApplyRating(stats.AggregateRating(), stats.Count); err != nil {
		return SubmitReviewResult{}, err
	}

	if err = users.UpdateRating(ctx, reviewee); err != nil {
		return SubmitReviewResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitReviewResult{}, err
	}

	return SubmitReviewResult{Review: r, Reviewee: reviewee.PublicProfile()}, nil
}
