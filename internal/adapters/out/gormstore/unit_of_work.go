// Package gormstore is the durable Persistence Gateway built on GORM. It runs
// on PostgreSQL in production and on SQLite for local use and tests.
//
// Usage:
//
//	db, err := gormstore.Open(gormstore.Config{Driver: gormstore.DriverPostgres, DSN: dsn})
//	if err != nil {
//	    return err
//	}
//	if err = gormstore.Migrate(db); err != nil {
//	    return err
//	}
//
//	factory := gormstore.NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err = uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction and must not be
// shared between goroutines.
package gormstore

import (
	"context"

	"carrierlink/internal/adapters/out/gormstore/deliveryrepo"
	"carrierlink/internal/adapters/out/gormstore/reviewrepo"
	"carrierlink/internal/adapters/out/gormstore/userrepo"
	"carrierlink/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction. Repositories obtained
// after Begin run inside it; repositories obtained before Begin auto-commit.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while a transaction is
// active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction if no transaction is active,
// which makes a deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Repositories are auto-committing repositories for read paths.
type Repositories struct {
	db *gorm.DB
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{db: db}
}

func (r Repositories) Deliveries() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(r.db)
}

func (r Repositories) Users() ports.UserRepository {
	return userrepo.NewGormUserRepository(r.db)
}

func (r Repositories) Reviews() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(r.db)
}
