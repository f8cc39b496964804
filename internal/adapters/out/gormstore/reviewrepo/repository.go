package reviewrepo

import (
	"context"
	"errors"
	"fmt"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/review"
	"carrierlink/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReviewRepository implements ports.ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Add inserts a review. A concurrent duplicate that passes the existence
// check still fails on the unique index and is reported the same way.
func (r *GormReviewRepository) Add(ctx context.Context, aggregate *review.Review) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	exists, err := r.ExistsForReviewer(ctx, aggregate.DeliveryID(), aggregate.ReviewerID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewConflictError("review", "already reviewed")
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("review", "already reviewed", err)
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *GormReviewRepository) ExistsForReviewer(
	ctx context.Context,
	deliveryID kernel.UUID,
	reviewerID kernel.UserID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ReviewDTO{}).
		Where("delivery_id = ? AND reviewer_id = ?", deliveryID.Bytes(), reviewerID.Int64()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForReviewee returns received reviews, newest first.
func (r *GormReviewRepository) ListForReviewee(ctx context.Context, revieweeID kernel.UserID) ([]*review.Review, error) {
	var dtos []ReviewDTO
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID.Int64()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]*review.Review, 0, len(dtos))
	for _, dto := range dtos {
		rv, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, nil
}

// StatsForReviewee aggregates in the database so the mean always covers
// every stored review, including the one inserted by the current transaction.
func (r *GormReviewRepository) StatsForReviewee(ctx context.Context, revieweeID kernel.UserID) (review.Stats, error) {
	var row struct {
		Count int
		Sum   int
	}
	err := r.db.WithContext(ctx).
		Model(&ReviewDTO{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum").
		Where("reviewee_id = ?", revieweeID.Int64()).
		Scan(&row).Error
	if err != nil {
		return review.Stats{}, err
	}
	return review.Stats{Count: row.Count, Sum: row.Sum}, nil
}
