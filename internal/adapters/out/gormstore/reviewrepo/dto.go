// Package reviewrepo maps reviews to the reviews table.
package reviewrepo

import (
	"time"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/review"

	"github.com/google/uuid"
)

// ReviewDTO is one row of the reviews table. The composite unique index
// allows one review per delivery and reviewer.
type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_delivery_reviewer,priority:1"`
	ReviewerID int64     `gorm:"not null;uniqueIndex:idx_reviews_delivery_reviewer,priority:2"`
	RevieweeID int64     `gorm:"not null;index"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"size:1000"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

func fromDomain(r *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         r.ID().Bytes(),
		DeliveryID: r.DeliveryID().Bytes(),
		ReviewerID: r.ReviewerID().Int64(),
		RevieweeID: r.RevieweeID().Int64(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt().UTC(),
	}
}

func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	reviewer, err := kernel.NewUserID(dto.ReviewerID)
	if err != nil {
		return nil, err
	}
	reviewee, err := kernel.NewUserID(dto.RevieweeID)
	if err != nil {
		return nil, err
	}
	return review.RestoreReview(id, deliveryID, reviewer, reviewee, dto.Rating, dto.Comment, dto.CreatedAt)
}
