package queries

import (
	"errors"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/guard"
)

var ErrGetUserProfileQueryIsNotConstructed = errors.New(
	"GetUserProfileQuery must be created via NewGetUserProfileQuery constructor",
)

type GetUserProfileQuery struct {
	userID kernel.UserID
	guard  guard.ConstructorGuard
}

func NewGetUserProfileQuery(userID kernel.UserID) (GetUserProfileQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserProfileQuery{}, err
	}
	return GetUserProfileQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserProfileQuery) UserID() kernel.UserID {
	return q.userID
}

func (q GetUserProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetUserProfileQueryIsNotConstructed)
}
