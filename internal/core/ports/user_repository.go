package ports

import (
	"context"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	// Add inserts a new user and assigns its id. A taken handle yields
	// errs.ConflictError.
	Add(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UserID) (*user.User, error)

	GetByHandle(ctx context.Context, handle string) (*user.User, error)

	// GetMany returns the users that exist among ids. Unknown ids are skipped.
	GetMany(ctx context.Context, ids []kernel.UserID) (map[kernel.UserID]*user.User, error)

	// GetForUpdate reads a user and, inside a transaction, locks the row
	// until commit so concurrent rating updates serialize.
	GetForUpdate(ctx context.Context, id kernel.UserID) (*user.User, error)

	// UpdateRating persists rating and totalReviews only.
	UpdateRating(ctx context.Context, aggregate *user.User) error
}
