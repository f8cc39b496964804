// Package storetest is a conformance suite for Persistence Gateway
// implementations. Each store runs it from its own tests:
//
//	func TestMemoryStore(t *testing.T) {
//	    suite.Run(t, &storetest.Suite{Open: func(t *testing.T) storetest.Store { ... }})
//	}
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/review"
	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/core/ports"
	"carrierlink/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// Store is a freshly emptied store under test.
type Store struct {
	Factory ports.UnitOfWorkFactory
	Repos   ports.Repositories
}

// Suite checks the repository and unit of work contracts. Open must return
// an empty store for every test.
type Suite struct {
	suite.Suite
	Open func(t *testing.T) Store

	ctx     context.Context
	store   Store
	created time.Time
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.Open(s.T())
	s.created = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *Suite) newUser(handle string, role user.Role) *user.User {
	u, err := user.NewUser(handle, "$2a$10$hash-of-"+handle, "Name "+handle, role, s.created)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Repos.Users().Add(s.ctx, u))
	return u
}

func (s *Suite) newDelivery(sender kernel.UserID, pickup string, age time.Duration) *delivery.Delivery {
	details, err := delivery.NewDetails(delivery.DetailsInput{
		PickupLocation:      pickup,
		DropLocation:        "Mumbai",
		PackageSize:         "medium",
		PackageWeightGrams:  3500,
		Description:         "books",
		SpecialInstructions: "ring twice",
		PreferredDate:       "2025-03-10",
		TimeWindow:          "09:00-12:00",
		DeliveryFee:         30000,
	})
	s.Require().NoError(err)

	d, err := delivery.NewDelivery(kernel.NewUUID(), sender, details, s.created.Add(-age))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Repos.Deliveries().Add(s.ctx, d))
	return d
}

func (s *Suite) TestUsers_AddAssignsDistinctIDs() {
	a := s.newUser("alice", user.Sender)
	b := s.newUser("bob", user.Carrier)

	s.Positive(a.ID().Int64())
	s.Positive(b.ID().Int64())
	s.NotEqual(a.ID(), b.ID())

	got, err := s.store.Repos.Users().Get(s.ctx, b.ID())
	s.Require().NoError(err)
	s.Equal("bob", got.Handle())
	s.Equal(user.Carrier, got.Role())
	s.Equal("$2a$10$hash-of-bob", got.SecretHash())
	s.Nil(got.Rating())
}

func (s *Suite) TestUsers_DuplicateHandleIsConflict() {
	s.newUser("alice", user.Sender)

	dup, err := user.NewUser("alice", "x", "Another", user.Carrier, s.created)
	s.Require().NoError(err)
	err = s.store.Repos.Users().Add(s.ctx, dup)
	s.ErrorIs(err, errs.ErrConflict)
}

func (s *Suite) TestUsers_Lookups() {
	a := s.newUser("alice", user.Sender)
	b := s.newUser("bob", user.Carrier)

	byHandle, err := s.store.Repos.Users().GetByHandle(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(a.ID(), byHandle.ID())

	_, err = s.store.Repos.Users().GetByHandle(s.ctx, "nobody")
	s.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = s.store.Repos.Users().Get(s.ctx, kernel.MustNewUserID(9999))
	s.ErrorIs(err, errs.ErrObjectNotFound)

	many, err := s.store.Repos.Users().GetMany(s.ctx, []kernel.UserID{a.ID(), b.ID(), kernel.MustNewUserID(9999)})
	s.Require().NoError(err)
	s.Len(many, 2)
	s.Equal("bob", many[b.ID()].Handle())
}

func (s *Suite) TestUsers_UpdateRatingTouchesOnlyRating() {
	u := s.newUser("carrier_one", user.Carrier)
	rating := 4
	s.Require().NoError(u.ApplyRating(&rating, 3))

	s.Require().NoError(s.store.Repos.Users().UpdateRating(s.ctx, u))

	got, err := s.store.Repos.Users().Get(s.ctx, u.ID())
	s.Require().NoError(err)
	s.Require().NotNil(got.Rating())
	s.Equal(4, *got.Rating())
	s.Equal(3, got.TotalReviews())
	s.Equal("carrier_one", got.Handle())
}

func (s *Suite) TestDeliveries_RoundTrip() {
	sender := s.newUser("alice", user.Sender)
	d := s.newDelivery(sender.ID(), "Pune", 0)

	got, err := s.store.Repos.Deliveries().Get(s.ctx, d.ID())
	s.Require().NoError(err)

	s.True(d.ID().IsEqual(got.ID()))
	s.Equal(sender.ID(), got.SenderID())
	s.Nil(got.CarrierID())
	s.Equal(delivery.Requested, got.Status())
	s.WithinDuration(d.CreatedAt(), got.CreatedAt(), time.Millisecond)

	details := got.Details()
	s.Equal("Pune", details.Pickup().Name())
	s.Equal("Mumbai", details.Drop().Name())
	s.Equal(delivery.Medium, details.Size())
	s.Equal(3500, details.WeightGrams())
	s.Equal("books", details.Description())
	s.Equal("ring twice", details.SpecialInstructions())
	s.Equal("2025-03-10", details.PreferredDate())
	s.Equal("09:00-12:00", details.TimeWindow())
	s.Equal(int64(30000), details.Fee())

	_, err = s.store.Repos.Deliveries().Get(s.ctx, kernel.NewUUID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *Suite) TestDeliveries_UpdateStatusIsCompareAndSwap() {
	sender := s.newUser("alice", user.Sender)
	carrier := s.newUser("bob", user.Carrier)
	d := s.newDelivery(sender.ID(), "Pune", 0)

	s.Require().NoError(d.Accept(carrier.ID()))
	s.Require().NoError(s.store.Repos.Deliveries().UpdateStatus(s.ctx, d, delivery.Requested))

	stale, err := delivery.RestoreDelivery(d.ID(), sender.ID(), nil, d.Details(), delivery.Requested, d.CreatedAt())
	s.Require().NoError(err)
	other := s.newUser("carol", user.Carrier)
	s.Require().NoError(stale.Accept(other.ID()))

	err = s.store.Repos.Deliveries().UpdateStatus(s.ctx, stale, delivery.Requested)
	s.ErrorIs(err, ports.ErrStatusChanged)

	got, err := s.store.Repos.Deliveries().Get(s.ctx, d.ID())
	s.Require().NoError(err)
	s.Equal(delivery.Accepted, got.Status())
	s.Equal(carrier.ID(), *got.CarrierID())
}

func (s *Suite) TestDeliveries_ListFiltersAndOrder() {
	sender := s.newUser("alice", user.Sender)
	carrier := s.newUser("bob", user.Carrier)
	oldest := s.newDelivery(sender.ID(), "Pune", 3*time.Hour)
	middle := s.newDelivery(sender.ID(), "Nashik", 2*time.Hour)
	newest := s.newDelivery(sender.ID(), "Pune", time.Hour)

	s.Require().NoError(middle.Accept(carrier.ID()))
	s.Require().NoError(s.store.Repos.Deliveries().UpdateStatus(s.ctx, middle, delivery.Requested))

	all, err := s.store.Repos.Deliveries().List(s.ctx, ports.DeliveryFilter{})
	s.Require().NoError(err)
	s.Equal([]string{newest.ID().String(), middle.ID().String(), oldest.ID().String()}, idStrings(all))

	pune := "Pune"
	requested := delivery.Requested
	open, err := s.store.Repos.Deliveries().List(s.ctx, ports.DeliveryFilter{PickupLocation: &pune, Status: &requested})
	s.Require().NoError(err)
	s.Equal([]string{newest.ID().String(), oldest.ID().String()}, idStrings(open))

	carrierID := carrier.ID()
	carried, err := s.store.Repos.Deliveries().List(s.ctx, ports.DeliveryFilter{CarrierID: &carrierID})
	s.Require().NoError(err)
	s.Equal([]string{middle.ID().String()}, idStrings(carried))

	large := delivery.Large
	none, err := s.store.Repos.Deliveries().List(s.ctx, ports.DeliveryFilter{PackageSize: &large})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *Suite) TestDeliveries_CountByStatus() {
	sender := s.newUser("alice", user.Sender)
	carrier := s.newUser("bob", user.Carrier)
	s.newDelivery(sender.ID(), "Pune", 0)
	d := s.newDelivery(sender.ID(), "Pune", 0)
	s.Require().NoError(d.Accept(carrier.ID()))
	s.Require().NoError(s.store.Repos.Deliveries().UpdateStatus(s.ctx, d, delivery.Requested))

	counts, err := s.store.Repos.Deliveries().CountByStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, counts[delivery.Requested])
	s.Equal(1, counts[delivery.Accepted])
	s.Zero(counts[delivery.Delivered])
}

func (s *Suite) TestReviews_UniquePerDeliveryAndReviewer() {
	sender := s.newUser("alice", user.Sender)
	carrier := s.newUser("bob", user.Carrier)
	d := s.newDelivery(sender.ID(), "Pune", 0)

	first := s.review(d, sender, carrier, 5, s.created)
	s.Require().NoError(s.store.Repos.Reviews().Add(s.ctx, first))

	exists, err := s.store.Repos.Reviews().ExistsForReviewer(s.ctx, d.ID(), sender.ID())
	s.Require().NoError(err)
	s.True(exists)
	exists, err = s.store.Repos.Reviews().ExistsForReviewer(s.ctx, d.ID(), carrier.ID())
	s.Require().NoError(err)
	s.False(exists)

	again := s.review(d, sender, carrier, 1, s.created)
	s.ErrorIs(s.store.Repos.Reviews().Add(s.ctx, again), errs.ErrConflict)

	back := s.review(d, carrier, sender, 4, s.created)
	s.NoError(s.store.Repos.Reviews().Add(s.ctx, back))
}

func (s *Suite) TestReviews_ListAndStats() {
	carrier := s.newUser("bob", user.Carrier)
	var ids []string
	for i, rating := range []int{3, 4, 4} {
		sender := s.newUser("sender_"+string(rune('a'+i)), user.Sender)
		d := s.newDelivery(sender.ID(), "Pune", 0)
		r := s.review(d, sender, carrier, rating, s.created.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(s.store.Repos.Reviews().Add(s.ctx, r))
		ids = append([]string{r.ID().String()}, ids...)
	}

	list, err := s.store.Repos.Reviews().ListForReviewee(s.ctx, carrier.ID())
	s.Require().NoError(err)
	got := make([]string, 0, len(list))
	for _, r := range list {
		got = append(got, r.ID().String())
	}
	s.Equal(ids, got)

	stats, err := s.store.Repos.Reviews().StatsForReviewee(s.ctx, carrier.ID())
	s.Require().NoError(err)
	s.Equal(review.Stats{Count: 3, Sum: 11}, stats)

	empty, err := s.store.Repos.Reviews().StatsForReviewee(s.ctx, kernel.MustNewUserID(9999))
	s.Require().NoError(err)
	s.Zero(empty.Count)
	s.Nil(empty.AggregateRating())
}

func (s *Suite) TestUnitOfWork_CommitAndRollback() {
	sender := s.newUser("alice", user.Sender)

	committed := s.store.Factory.Create()
	s.Require().NoError(committed.Begin(s.ctx))
	kept := s.deliveryValue(sender.ID())
	s.Require().NoError(committed.DeliveryRepository().Add(s.ctx, kept))
	s.Require().NoError(committed.Commit(s.ctx))
	s.Error(committed.Rollback(s.ctx))

	rolledBack := s.store.Factory.Create()
	s.Require().NoError(rolledBack.Begin(s.ctx))
	dropped := s.deliveryValue(sender.ID())
	s.Require().NoError(rolledBack.DeliveryRepository().Add(s.ctx, dropped))
	s.Require().NoError(rolledBack.Rollback(s.ctx))

	_, err := s.store.Repos.Deliveries().Get(s.ctx, kept.ID())
	s.NoError(err)
	_, err = s.store.Repos.Deliveries().Get(s.ctx, dropped.ID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *Suite) TestUnitOfWork_CommitWithoutBegin() {
	uow := s.store.Factory.Create()
	s.Error(uow.Commit(s.ctx))
	s.Error(uow.Rollback(s.ctx))
}

func (s *Suite) TestUnitOfWork_ConcurrentClaimsHaveOneWinner() {
	sender := s.newUser("alice", user.Sender)
	d := s.newDelivery(sender.ID(), "Pune", 0)

	const carriers = 5
	ids := make([]kernel.UserID, carriers)
	for i := range ids {
		ids[i] = s.newUser("carrier_"+string(rune('a'+i)), user.Carrier).ID()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for _, carrierID := range ids {
		wg.Add(1)
		go func(carrierID kernel.UserID) {
			defer wg.Done()
			if s.claim(d.ID(), carrierID) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(carrierID)
	}
	wg.Wait()

	s.Equal(1, wins)
}

// claim reports whether this caller moved the delivery to accepted.
func (s *Suite) claim(id kernel.UUID, carrierID kernel.UserID) bool {
	uow := s.store.Factory.Create()
	if err := uow.Begin(s.ctx); err != nil {
		return false
	}
	defer func() { _ = uow.Rollback(s.ctx) }()

	d, err := uow.DeliveryRepository().Get(s.ctx, id)
	if err != nil {
		return false
	}
	if err = d.Accept(carrierID); err != nil {
		return false
	}
	if err = uow.DeliveryRepository().UpdateStatus(s.ctx, d, delivery.Requested); err != nil {
		return false
	}
	return uow.Commit(s.ctx) == nil
}

func (s *Suite) deliveryValue(sender kernel.UserID) *delivery.Delivery {
	details, err := delivery.NewDetails(delivery.DetailsInput{
		PickupLocation:     "Pune",
		DropLocation:       "Mumbai",
		PackageSize:        "small",
		PackageWeightGrams: 100,
		PreferredDate:      "2025-03-10",
		TimeWindow:         "evening",
		DeliveryFee:        100,
	})
	s.Require().NoError(err)
	d, err := delivery.NewDelivery(kernel.NewUUID(), sender, details, s.created)
	s.Require().NoError(err)
	return d
}

func (s *Suite) review(d *delivery.Delivery, reviewer, reviewee *user.User, rating int, at time.Time) *review.Review {
	r, err := review.NewReview(kernel.NewUUID(), d.ID(), reviewer.ID(), reviewee.ID(), rating, "", at)
	s.Require().NoError(err)
	return r
}

func idStrings(ds []*delivery.Delivery) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID().String())
	}
	return out
}
