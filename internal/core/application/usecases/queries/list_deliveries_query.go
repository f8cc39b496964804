package queries

import (
	"errors"
	"strings"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/ports"
	"carrierlink/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery is the public delivery board. Every argument is an
// optional exact-match filter; an empty string means "any".
//
// Example:
//
//	query, err := NewListDeliveriesQuery("requested", "Pune", "", "medium")
//	if err != nil {
//	    return err // unknown status or package size
//	}
//	views, err := handler.Handle(ctx, query)
type ListDeliveriesQuery struct { //nolint:recvcheck //using for validation
	filter ports.DeliveryFilter
	guard  guard.ConstructorGuard
}

func NewListDeliveriesQuery(status, pickupLocation, dropLocation, packageSize string) (ListDeliveriesQuery, error) {
	var q ListDeliveriesQuery
	err := errors.Join(
		q.setStatus(status),
		q.setPackageSize(packageSize),
	)
	if err != nil {
		return ListDeliveriesQuery{}, err
	}

	q.filter.PickupLocation = optionalString(pickupLocation)
	q.filter.DropLocation = optionalString(dropLocation)
	q.guard = guard.NewConstructorGuard()
	return q, nil
}

func (q ListDeliveriesQuery) Filter() ports.DeliveryFilter {
	return q.filter
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q *ListDeliveriesQuery) setStatus(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	status, err := delivery.ParseStatus(s)
	if err != nil {
		return err
	}
	q.filter.Status = &status
	return nil
}

func (q *ListDeliveriesQuery) setPackageSize(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	size, err := delivery.ParsePackageSize(delivery.FieldPackageSize, s)
	if err != nil {
		return err
	}
	q.filter.PackageSize = &size
	return nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
