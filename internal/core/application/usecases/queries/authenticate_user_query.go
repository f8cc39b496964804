package queries

import (
	"errors"
	"strings"

	"carrierlink/internal/pkg/errs"
	"carrierlink/internal/pkg/guard"
)

var ErrAuthenticateUserQueryIsNotConstructed = errors.New(
	"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
)

// AuthenticateUserQuery checks a handle and password pair. It reads only;
// issuing a token for the result is up to the caller.
type AuthenticateUserQuery struct {
	handle   string
	password string
	guard    guard.ConstructorGuard
}

func NewAuthenticateUserQuery(handle, password string) (AuthenticateUserQuery, error) {
	handle = strings.TrimSpace(handle)

	var errList []error
	if handle == "" {
		errList = append(errList, errs.NewValueIsRequiredError("handle"))
	}
	if password == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(errList...); err != nil {
		return AuthenticateUserQuery{}, err
	}

	return AuthenticateUserQuery{
		handle:   handle,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q AuthenticateUserQuery) Handle() string {
	return q.handle
}

func (q AuthenticateUserQuery) Password() string {
	return q.password
}

func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}
