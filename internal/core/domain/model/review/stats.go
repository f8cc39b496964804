package review

import "math"

// Stats is the running total of ratings a user has received.
type Stats struct {
	Count int
	Sum   int
}

// AggregateRating is the rounded mean of the received ratings, or nil when
// there are none. Halves round away from zero, so a mean of 4.5 becomes 5.
func (s Stats) AggregateRating() *int {
	if s.Count <= 0 {
		return nil
	}
	r := int(math.Round(float64(s.Sum) / float64(s.Count)))
	return &r
}
