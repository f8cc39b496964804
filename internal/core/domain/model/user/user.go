package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"
	"carrierlink/internal/pkg/guard"
)

const (
	HandleMinLength = 3
	HandleMaxLength = 32
	NameMaxLength   = 80
	MaxRating       = 5
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	ErrIDAlreadyAssigned    = errors.New("user id is already assigned")

	handlePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// User is a registered participant. The credential secret is an opaque hash
// that never leaves the persistence layer except for login verification.
//
// The id is zero until the store assigns one with AssignID.
type User struct {
	id           kernel.UserID
	handle       string
	secretHash   string
	name         string
	role         Role
	rating       *int
	totalReviews int
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewUser validates a registration. The id is assigned by the store on insert.
func NewUser(handle, secretHash, name string, role Role, createdAt time.Time) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setHandle(handle),
		u.setSecretHash(secretHash),
		u.setName(name),
		u.setRole(role),
		u.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// ValidateProfile checks a handle and display name without building a user.
func ValidateProfile(handle, name string) error {
	var u User
	return errors.Join(u.setHandle(handle), u.setName(name))
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(
	id kernel.UserID,
	handle, secretHash, name string,
	role Role,
	rating *int,
	totalReviews int,
	createdAt time.Time,
) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		u.setHandle(handle),
		u.setSecretHash(secretHash),
		u.setName(name),
		u.setRole(role),
		u.setCreatedAt(createdAt),
		u.ApplyRating(rating, totalReviews),
	); err != nil {
		return nil, err
	}
	u.id = id

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// AssignID sets the store-assigned identity. It may be called once.
func (u *User) AssignID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if u.id.Validate() == nil {
		return ErrIDAlreadyAssigned
	}
	u.id = id
	return nil
}

func (u *User) ID() kernel.UserID {
	return u.id
}

func (u *User) Handle() string {
	return u.handle
}

// SecretHash is for credential verification only.
func (u *User) SecretHash() string {
	return u.secretHash
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Role() Role {
	return u.role
}

// Rating is nil until the first review.
func (u *User) Rating() *int {
	if u.rating == nil {
		return nil
	}
	r := *u.rating
	return &r
}

func (u *User) TotalReviews() int {
	return u.totalReviews
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Actor returns the identity u acts as.
func (u *User) Actor() Actor {
	return Actor{id: u.id, role: u.role}
}

// ApplyRating replaces the aggregate rating. rating must be nil exactly when
// totalReviews is zero.
func (u *User) ApplyRating(rating *int, totalReviews int) error {
	if totalReviews < 0 {
		return errs.NewValueIsOutOfRangeError("totalReviews", totalReviews, 0, "unbounded")
	}
	if (rating == nil) != (totalReviews == 0) {
		return errs.NewValueIsInvalidErrorWithCause("rating", errors.New("must be set iff there are reviews"))
	}
	if rating != nil {
		if *rating < 0 || *rating > MaxRating {
			return errs.NewValueIsOutOfRangeError("rating", *rating, 0, MaxRating)
		}
		r := *rating
		u.rating = &r
	} else {
		u.rating = nil
	}
	u.totalReviews = totalReviews
	return nil
}

// PublicProfile strips the credential secret.
func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:          u.id,
		Handle:      u.handle,
		Name:        u.name,
		Rating:      u.Rating(),
		ReviewCount: u.totalReviews,
		Role:        u.role,
	}
}

func (u *User) setHandle(handle string) error {
	n := utf8.RuneCountInString(handle)
	switch {
	case handle == "":
		return errs.NewValueIsRequiredError("handle")
	case n < HandleMinLength || n > HandleMaxLength:
		return errs.NewValueIsInvalidErrorWithCause(
			"handle",
			fmt.Errorf("must be %d to %d characters", HandleMinLength, HandleMaxLength),
		)
	case !handlePattern.MatchString(handle):
		return errs.NewValueIsInvalidErrorWithCause("handle", errors.New("may contain only a-z, 0-9 and _"))
	}
	u.handle = handle
	return nil
}

func (u *User) setSecretHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.secretHash = hash
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return errs.NewValueIsInvalidErrorWithCause("name", fmt.Errorf("must be at most %d characters", NameMaxLength))
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	u.createdAt = createdAt
	return nil
}
