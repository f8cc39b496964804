package commands_test

import (
	"errors"
	"strings"
	"testing"

	"carrierlink/internal/core/application/usecases/commands"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterUserCommand(t *testing.T) {
	cmd, err := commands.NewRegisterUserCommand(" ravi_k ", "s3cret-pass", "Ravi", "carrier")
	require.NoError(t, err)
	assert.Equal(t, "ravi_k", cmd.Handle())
	assert.Equal(t, user.Carrier, cmd.Role())

	_, err = commands.NewRegisterUserCommand("R!", "short", "", "admin")
	require.Error(t, err)
	var fields []string
	for _, fe := range errs.FieldErrors(err) {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"handle", "name", "password", "role"}, fields)

	_, err = commands.NewRegisterUserCommand("ravi", strings.Repeat("p", 73), "Ravi", "both")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRegisterUserCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterUserCommand("asha", "s3cret-pass", "Asha", "sender")
	require.NoError(t, err)

	hasher := new(MockHasher)
	hasher.On("Hash", "s3cret-pass").Return("hashed", nil).Once()

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(u *user.User) bool {
			return u.Handle() == "asha" && u.SecretHash() == "hashed"
		})).Run(func(args mock.Arguments) {
			_ = args.Get(1).(*user.User).AssignID(kernel.MustNewUserID(7))
		}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	profile, err := commands.NewRegisterUserCommandHandler(factory, hasher).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.ID.Int64())
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, user.Sender, profile.Role)
	assert.Nil(t, profile.Rating)

	hasher.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterUserCommandHandler_Handle_DuplicateHandle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterUserCommand("asha", "s3cret-pass", "Asha", "sender")
	require.NoError(t, err)

	hasher := new(MockHasher)
	hasher.On("Hash", mock.Anything).Return("hashed", nil).Once()
	repo := new(MockUserRepository)
	repo.On("Add", ctx, mock.Anything).Return(errs.NewConflictError("user", "handle is already taken")).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewRegisterUserCommandHandler(factory, hasher).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRegisterUserCommandHandler_Handle_HashError(t *testing.T) {
	cmd, err := commands.NewRegisterUserCommand("asha", "s3cret-pass", "Asha", "sender")
	require.NoError(t, err)

	hasher := new(MockHasher)
	hasher.On("Hash", mock.Anything).Return("", errors.New("boom")).Once()
	factory := new(MockUserUoWFactory)

	_, err = commands.NewRegisterUserCommandHandler(factory, hasher).Handle(t.Context(), cmd)
	require.ErrorContains(t, err, "hash password")
	factory.AssertNotCalled(t, "Create")
}
