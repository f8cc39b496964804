package kernel

import (
	"fmt"
	"strconv"

	"carrierlink/internal/pkg/errs"
)

// ErrUserIDIsNotConstructed is returned by Validate on the zero UserID.
var ErrUserIDIsNotConstructed = errs.NewValueIsRequiredError("userId")

// UserID is the opaque integer identity of a user. It is handed to the core by
// the identity provider and assigned by the store at registration.
type UserID struct {
	id int64
}

// NewUserID wraps a positive integer identity.
func NewUserID(id int64) (UserID, error) {
	if id <= 0 {
		return UserID{}, errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("%d is not greater than 0", id))
	}
	return UserID{id: id}, nil
}

// MustNewUserID is NewUserID for identities already known to be valid,
// such as ids read back from the store. It panics on a non-positive id.
func MustNewUserID(id int64) UserID {
	userID, err := NewUserID(id)
	if err != nil {
		panic(err)
	}
	return userID
}

// Int64 returns the raw identity.
func (u UserID) Int64() int64 {
	return u.id
}

func (u UserID) String() string {
	return strconv.FormatInt(u.id, 10)
}

// IsEqual compares two identities.
func (u UserID) IsEqual(other UserID) bool {
	return u.id == other.id
}

// Validate rejects the zero value.
func (u UserID) Validate() error {
	if u.id <= 0 {
		return ErrUserIDIsNotConstructed
	}
	return nil
}
