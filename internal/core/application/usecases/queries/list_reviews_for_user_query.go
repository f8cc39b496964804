package queries

import (
	"errors"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/guard"
)

var ErrListReviewsForUserQueryIsNotConstructed = errors.New(
	"ListReviewsForUserQuery must be created via NewListReviewsForUserQuery constructor",
)

type ListReviewsForUserQuery struct {
	userID kernel.UserID
	guard  guard.ConstructorGuard
}

func NewListReviewsForUserQuery(userID kernel.UserID) (ListReviewsForUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListReviewsForUserQuery{}, err
	}
	return ListReviewsForUserQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListReviewsForUserQuery) UserID() kernel.UserID {
	return q.userID
}

func (q ListReviewsForUserQuery) Validate() error {
	return q.guard.Validate(ErrListReviewsForUserQueryIsNotConstructed)
}
