package commands

import (
	"context"
	"fmt"
	"time"

	"carrierlink/internal/core/domain/model/user"
)

// RegisterUserCommandHandler creates a user with a hashed credential and
// returns its public profile, including the store-assigned id.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     PasswordHasher
	now        func() time.Time
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory, hasher PasswordHasher) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		now:        time.Now,
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (user.PublicProfile, error) {
	if err := cmd.Validate(); err != nil {
		return user.PublicProfile{}, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return user.PublicProfile{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := user.NewUser(cmd.Handle(), hash, cmd.Name(), cmd.Role(), h.now().UTC())
	if err != nil {
		return user.PublicProfile{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return user.PublicProfile{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return user.PublicProfile{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return user.PublicProfile{}, err
	}

	return u.PublicProfile(), nil
}
