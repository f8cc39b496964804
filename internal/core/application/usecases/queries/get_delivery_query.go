package queries

import (
	"errors"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

type GetDeliveryQuery struct {
	deliveryID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}
