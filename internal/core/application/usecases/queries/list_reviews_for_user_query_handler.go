package queries

import (
	"context"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/ports"
)

// ListReviewsForUserQueryHandler returns the reviews a user received, newest
// first. An unknown user yields errs.ObjectNotFoundError rather than an
// empty list.
type ListReviewsForUserQueryHandler struct {
	repos ports.Repositories
}

func NewListReviewsForUserQueryHandler(repos ports.Repositories) ListReviewsForUserQueryHandler {
	return ListReviewsForUserQueryHandler{repos: repos}
}

func (h ListReviewsForUserQueryHandler) Handle(ctx context.Context, query ListReviewsForUserQuery) ([]ReviewView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.repos.Users().Get(ctx, query.UserID()); err != nil {
		return nil, err
	}

	reviews, err := h.repos.Reviews().ListForReviewee(ctx, query.UserID())
	if err != nil {
		return nil, err
	}

	reviewers := make([]kernel.UserID, 0, len(reviews))
	for _, r := range reviews {
		reviewers = append(reviewers, r.ReviewerID())
	}
	profiles, err := loadProfiles(ctx, h.repos.Users(), reviewers)
	if err != nil {
		return nil, err
	}

	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		view := ReviewView{Review: r}
		if p, ok := profiles[r.ReviewerID()]; ok {
			view.ReviewerHandle = p.Handle
			view.ReviewerName = p.Name
		}
		views = append(views, view)
	}
	return views, nil
}
