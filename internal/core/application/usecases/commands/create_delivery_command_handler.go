package commands

import (
	"context"
	"time"

	"carrierlink/internal/core/domain/model/delivery"
)

// CreateDeliveryCommandHandler stores a new delivery in the requested status.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	now        func() time.Time
}

func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle persists the delivery and returns it as stored.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	d, err := delivery.NewDelivery(cmd.DeliveryID(), cmd.SenderID(), cmd.Details(), h.now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
