package memory

import (
	"context"
	"errors"

	"carrierlink/internal/core/ports"
)

// ErrInvalidTransaction is returned by Commit and Rollback without an active transaction.
var ErrInvalidTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork holds the store's write lock between Begin and Commit/Rollback.
// It must not be shared between goroutines.
type UnitOfWork struct {
	store *Store
	tx    *data
}

// Begin takes the store lock. ctx is only checked before waiting: a context
// cancelled while another unit of work holds the lock does not interrupt the wait.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	u.tx = u.store.data.clone()
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrInvalidTransaction
	}

	u.store.data = u.tx
	u.tx = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return ErrInvalidTransaction
	}

	u.tx = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) session() session {
	if u.tx != nil {
		return txSession{uow: u}
	}
	return storeSession{store: u.store}
}

func (u *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return &DeliveryRepository{session: u.session()}
}

func (u *UnitOfWork) UserRepository() ports.UserRepository {
	return &UserRepository{session: u.session()}
}

func (u *UnitOfWork) ReviewRepository() ports.ReviewRepository {
	return &ReviewRepository{session: u.session()}
}

// txSession works on the unit of work's private copy. The store lock is
// already held, so no further locking happens here.
type txSession struct {
	uow *UnitOfWork
}

func (s txSession) view(fn func(*data) error) error {
	if s.uow.tx == nil {
		return ErrInvalidTransaction
	}
	return fn(s.uow.tx)
}

func (s txSession) update(fn func(*data) error) error {
	if s.uow.tx == nil {
		return ErrInvalidTransaction
	}
	return fn(s.uow.tx)
}
