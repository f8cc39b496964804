package queries

import (
	"context"
	"errors"

	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/core/ports"
	"carrierlink/internal/pkg/errs"
)

// PasswordVerifier compares a plain password with a stored credential secret.
// It returns a non-nil error on mismatch.
type PasswordVerifier interface {
	Compare(secretHash, password string) error
}

// AuthenticateUserQueryHandler resolves credentials to a public profile.
// An unknown handle and a wrong password produce the same errs.ForbiddenError.
type AuthenticateUserQueryHandler struct {
	repos    ports.Repositories
	verifier PasswordVerifier
}

func NewAuthenticateUserQueryHandler(repos ports.Repositories, verifier PasswordVerifier) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{repos: repos, verifier: verifier}
}

func (h AuthenticateUserQueryHandler) Handle(ctx context.Context, query AuthenticateUserQuery) (user.PublicProfile, error) {
	if err := query.Validate(); err != nil {
		return user.PublicProfile{}, err
	}

	u, err := h.repos.Users().GetByHandle(ctx, query.Handle())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return user.PublicProfile{}, errInvalidCredentials()
	}
	if err != nil {
		return user.PublicProfile{}, err
	}

	if err = h.verifier.Compare(u.SecretHash(), query.Password()); err != nil {
		return user.PublicProfile{}, errInvalidCredentials()
	}
	return u.PublicProfile(), nil
}

func errInvalidCredentials() error {
	return errs.NewForbiddenError("login", "invalid handle or password")
}
