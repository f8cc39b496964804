package commands

import (
	"errors"
	"fmt"
	"strings"

	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/pkg/errs"
	"carrierlink/internal/pkg/guard"
)

const (
	PasswordMinLength = 8
	// bcrypt ignores everything past 72 bytes.
	PasswordMaxLength = 72
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
)

// RegisterUserCommand signs up a new user. The plain password never reaches
// the domain; the handler stores only its hash.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	handle   string
	password string
	name     string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(handle, password, name, role string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		handle: strings.TrimSpace(handle),
		name:   name,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		user.ValidateProfile(cmd.handle, name),
		cmd.setPassword(password),
		cmd.setRole(role),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Handle() string {
	return c.handle
}

func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c RegisterUserCommand) Name() string {
	return c.name
}

func (c RegisterUserCommand) Role() user.Role {
	return c.role
}

func (c *RegisterUserCommand) setPassword(password string) error {
	switch {
	case password == "":
		return errs.NewValueIsRequiredError("password")
	case len(password) < PasswordMinLength || len(password) > PasswordMaxLength:
		return errs.NewValueIsInvalidErrorWithCause(
			"password",
			fmt.Errorf("must be %d to %d characters", PasswordMinLength, PasswordMaxLength),
		)
	}
	c.password = password
	return nil
}

func (c *RegisterUserCommand) setRole(role string) error {
	if role == "" {
		return errs.NewValueIsRequiredError("role")
	}
	r, err := user.ParseRole(role)
	if err != nil {
		return err
	}
	c.role = r
	return nil
}
