package memory

import (
	"context"
	"sort"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/review"
	"carrierlink/internal/pkg/errs"
)

type ReviewRepository struct {
	session session
}

func (r *ReviewRepository) Add(ctx context.Context, aggregate *review.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := reviewFromDomain(aggregate)
	key := reviewKey{deliveryID: rec.DeliveryID, reviewerID: rec.ReviewerID}
	return r.session.update(func(d *data) error {
		if _, dup := d.reviewKeys[key]; dup {
			return errs.NewConflictError("review", "already reviewed")
		}
		if _, dup := d.reviews[rec.ID]; dup {
			return errs.NewConflictError("review", "id already exists")
		}
		d.reviews[rec.ID] = rec
		d.reviewKeys[key] = struct{}{}
		return nil
	})
}

func (r *ReviewRepository) ExistsForReviewer(ctx context.Context, deliveryID kernel.UUID, reviewerID kernel.UserID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var exists bool
	err := r.session.view(func(d *data) error {
		_, exists = d.reviewKeys[reviewKey{deliveryID: deliveryID.Bytes(), reviewerID: reviewerID.Int64()}]
		return nil
	})
	return exists, err
}

func (r *ReviewRepository) ListForReviewee(ctx context.Context, revieweeID kernel.UserID) ([]*review.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var recs []reviewRecord
	err := r.session.view(func(d *data) error {
		for _, rec := range d.reviews {
			if rec.RevieweeID == revieweeID.Int64() {
				recs = append(recs, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID.String() > recs[j].ID.String()
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	out := make([]*review.Review, 0, len(recs))
	for _, rec := range recs {
		agg, err := reviewToDomain(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}

func (r *ReviewRepository) StatsForReviewee(ctx context.Context, revieweeID kernel.UserID) (review.Stats, error) {
	if err := ctx.Err(); err != nil {
		return review.Stats{}, err
	}

	var stats review.Stats
	err := r.session.view(func(d *data) error {
		for _, rec := range d.reviews {
			if rec.RevieweeID == revieweeID.Int64() {
				stats.Count++
				stats.Sum += rec.Rating
			}
		}
		return nil
	})
	return stats, err
}

func reviewFromDomain(r *review.Review) reviewRecord {
	return reviewRecord{
		ID:         r.ID().Bytes(),
		DeliveryID: r.DeliveryID().Bytes(),
		ReviewerID: r.ReviewerID().Int64(),
		RevieweeID: r.RevieweeID().Int64(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}

func reviewToDomain(rec reviewRecord) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(rec.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	reviewer, err := kernel.NewUserID(rec.ReviewerID)
	if err != nil {
		return nil, err
	}
	reviewee, err := kernel.NewUserID(rec.RevieweeID)
	if err != nil {
		return nil, err
	}
	return review.RestoreReview(id, deliveryID, reviewer, reviewee, rec.Rating, rec.Comment, rec.CreatedAt)
}
