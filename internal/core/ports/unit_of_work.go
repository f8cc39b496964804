package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from
// it run inside the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active, so a deferred
	// Rollback after Commit is a harmless no-op.
	Rollback(ctx context.Context) error

	DeliveryRepository() DeliveryRepository
	UserRepository() UserRepository
	ReviewRepository() ReviewRepository
}

// Repositories gives read access outside of any transaction. Each call
// commits on its own.
type Repositories interface {
	Deliveries() DeliveryRepository
	Users() UserRepository
	Reviews() ReviewRepository
}
