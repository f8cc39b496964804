package queries

import (
	"context"

	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/core/ports"
)

type GetUserProfileQueryHandler struct {
	repos ports.Repositories
}

func NewGetUserProfileQueryHandler(repos ports.Repositories) GetUserProfileQueryHandler {
	return GetUserProfileQueryHandler{repos: repos}
}

func (h GetUserProfileQueryHandler) Handle(ctx context.Context, query GetUserProfileQuery) (user.PublicProfile, error) {
	if err := query.Validate(); err != nil {
		return user.PublicProfile{}, err
	}

	u, err := h.repos.Users().Get(ctx, query.UserID())
	if err != nil {
		return user.PublicProfile{}, err
	}
	return u.PublicProfile(), nil
}
