// Package review holds the Review aggregate and the aggregate-rating rule.
//
// A review is written once per (delivery, reviewer) pair after the delivery is
// delivered and is immutable afterwards. A user's aggregate rating is the mean
// of every rating they received, rounded half away from zero.
package review
