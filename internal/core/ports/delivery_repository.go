package ports

import (
	"context"
	"errors"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
)

// ErrStatusChanged is returned by DeliveryRepository.UpdateStatus when the
// stored status no longer matches the expected one, meaning a concurrent
// request won the transition.
var ErrStatusChanged = errors.New("delivery status changed concurrently")

// DeliveryFilter is a conjunction of optional exact-match predicates.
// Nil fields impose no constraint.
type DeliveryFilter struct {
	Status         *delivery.Status
	PickupLocation *string
	DropLocation   *string
	PackageSize    *delivery.PackageSize
	SenderID       *kernel.UserID
	CarrierID      *kernel.UserID
}

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Get returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// UpdateStatus writes the aggregate's status and carrier only if the
	// stored status still equals expected. It returns ErrStatusChanged otherwise.
	UpdateStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error

	// List returns matching deliveries, newest first.
	List(ctx context.Context, filter DeliveryFilter) ([]*delivery.Delivery, error)

	// CountByStatus returns the number of deliveries per status. Statuses
	// without deliveries may be absent from the map.
	CountByStatus(ctx context.Context) (map[delivery.Status]int, error)
}
