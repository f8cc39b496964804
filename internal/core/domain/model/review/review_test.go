package review_test

import (
	"strings"
	"testing"
	"time"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/review"
	"carrierlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	id, deliveryID := kernel.NewUUID(), kernel.NewUUID()
	reviewer, reviewee := kernel.MustNewUserID(1), kernel.MustNewUserID(2)
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		r, err := review.NewReview(id, deliveryID, reviewer, reviewee, 5, " on time ", now)
		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(id))
		assert.True(t, r.DeliveryID().IsEqual(deliveryID))
		assert.Equal(t, reviewer, r.ReviewerID())
		assert.Equal(t, reviewee, r.RevieweeID())
		assert.Equal(t, 5, r.Rating())
		assert.Equal(t, "on time", r.Comment())
		assert.Equal(t, now, r.CreatedAt())
	})

	t.Run("rating bounds", func(t *testing.T) {
		for _, rating := range []int{0, -1, 6} {
			_, err := review.NewReview(id, deliveryID, reviewer, reviewee, rating, "", now)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, rating)
			assert.Equal(t, "rating", errs.FieldErrors(err)[0].Field)
		}
		for _, rating := range []int{1, 5} {
			_, err := review.NewReview(id, deliveryID, reviewer, reviewee, rating, "", now)
			assert.NoError(t, err)
		}
	})

	t.Run("self review", func(t *testing.T) {
		_, err := review.NewReview(id, deliveryID, reviewer, reviewer, 3, "", now)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("comment too long", func(t *testing.T) {
		_, err := review.NewReview(id, deliveryID, reviewer, reviewee, 3, strings.Repeat("a", review.CommentMaxLength+1), now)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value", func(t *testing.T) {
		var r *review.Review
		assert.ErrorIs(t, r.Validate(), review.ErrReviewIsNotConstructed)
	})
}

func TestStats_AggregateRating(t *testing.T) {
	tests := []struct {
		name  string
		stats review.Stats
		want  *int
	}{
		{"no reviews", review.Stats{}, nil},
		{"single", review.Stats{Count: 1, Sum: 5}, ptr(5)},
		{"half rounds up", review.Stats{Count: 2, Sum: 9}, ptr(5)},
		{"below half rounds down", review.Stats{Count: 3, Sum: 13}, ptr(4)},
		{"above half rounds up", review.Stats{Count: 3, Sum: 14}, ptr(5)},
		{"two and a half", review.Stats{Count: 2, Sum: 5}, ptr(3)},
		{"one and a half", review.Stats{Count: 2, Sum: 3}, ptr(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.AggregateRating())
		})
	}
}

func ptr(v int) *int { return &v }
