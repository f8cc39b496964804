// Package memory is a process-local Persistence Gateway. All writers are
// serialized by one mutex; a unit of work holds that mutex from Begin until
// Commit or Rollback and edits a private copy of the data, so readers never
// observe a partially applied transaction.
//
// Usage:
//
//	store := memory.NewStore()
//	factory := memory.NewUnitOfWorkFactory(store)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	...
//	return uow.Commit(ctx)
package memory

import (
	"sync"
	"time"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/ports"

	"github.com/google/uuid"
)

type deliveryRecord struct {
	ID        uuid.UUID
	SenderID  int64
	CarrierID *int64
	Details   delivery.Details
	Status    delivery.Status
	CreatedAt time.Time
}

type userRecord struct {
	ID           int64
	Handle       string
	SecretHash   string
	Name         string
	Role         int
	Rating       *int
	TotalReviews int
	CreatedAt    time.Time
}

type reviewRecord struct {
	ID         uuid.UUID
	DeliveryID uuid.UUID
	ReviewerID int64
	RevieweeID int64
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

type reviewKey struct {
	deliveryID uuid.UUID
	reviewerID int64
}

type data struct {
	deliveries map[uuid.UUID]deliveryRecord
	users      map[int64]userRecord
	handles    map[string]int64
	reviews    map[uuid.UUID]reviewRecord
	reviewKeys map[reviewKey]struct{}
	lastUserID int64
}

func newData() *data {
	return &data{
		deliveries: make(map[uuid.UUID]deliveryRecord),
		users:      make(map[int64]userRecord),
		handles:    make(map[string]int64),
		reviews:    make(map[uuid.UUID]reviewRecord),
		reviewKeys: make(map[reviewKey]struct{}),
	}
}

// clone copies every map. Records are values whose pointer fields are
// replaced, never mutated, so sharing them is safe.
func (d *data) clone() *data {
	c := &data{
		deliveries: make(map[uuid.UUID]deliveryRecord, len(d.deliveries)),
		users:      make(map[int64]userRecord, len(d.users)),
		handles:    make(map[string]int64, len(d.handles)),
		reviews:    make(map[uuid.UUID]reviewRecord, len(d.reviews)),
		reviewKeys: make(map[reviewKey]struct{}, len(d.reviewKeys)),
		lastUserID: d.lastUserID,
	}
	for k, v := range d.deliveries {
		c.deliveries[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.handles {
		c.handles[k] = v
	}
	for k, v := range d.reviews {
		c.reviews[k] = v
	}
	for k := range d.reviewKeys {
		c.reviewKeys[k] = struct{}{}
	}
	return c
}

// Store owns the in-memory data set.
type Store struct {
	mu   sync.RWMutex
	data *data
}

func NewStore() *Store {
	return &Store{data: newData()}
}

// Close is a no-op kept so the store has the same lifecycle as durable stores.
func (s *Store) Close() error {
	return nil
}

// session abstracts where a repository reads and writes: straight against the
// store under its lock, or against the private copy of an active unit of work.
type session interface {
	view(fn func(*data) error) error
	update(fn func(*data) error) error
}

type storeSession struct {
	store *Store
}

func (s storeSession) view(fn func(*data) error) error {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return fn(s.store.data)
}

func (s storeSession) update(fn func(*data) error) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	work := s.store.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.store.data = work
	return nil
}

// Repositories returns auto-committing repositories for reads outside a unit of work.
func (s *Store) Repositories() ports.Repositories {
	return repositories{session: storeSession{store: s}}
}

type repositories struct {
	session session
}

func (r repositories) Deliveries() ports.DeliveryRepository {
	return &DeliveryRepository{session: r.session}
}

func (r repositories) Users() ports.UserRepository {
	return &UserRepository{session: r.session}
}

func (r repositories) Reviews() ports.ReviewRepository {
	return &ReviewRepository{session: r.session}
}
