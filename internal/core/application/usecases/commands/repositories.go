// Package commands contains business operations that modify system state.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"carrierlink/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// ReviewRepoFactory provides access to the review repository within a transaction.
	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UserUoW manages transactions for user-only operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW spans deliveries, users and reviews. Used by the rating engine,
	// which reads a delivery, inserts a review and updates the reviewee in one
	// transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   d, err := uow.DeliveryRepository().Get(ctx, id)
	//   u, err := uow.UserRepository().GetForUpdate(ctx, revieweeID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DeliveryRepoFactory
		UserRepoFactory
		ReviewRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}

	// PasswordHasher turns a plain password into the opaque credential secret.
	PasswordHasher interface {
		Hash(password string) (string, error)
	}
)
