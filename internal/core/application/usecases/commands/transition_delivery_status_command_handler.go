package commands

import (
	"context"
	"errors"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/services"
	"carrierlink/internal/core/ports"
	"carrierlink/internal/pkg/errs"
)

// TransitionDeliveryStatusCommandHandler runs the delivery state machine.
//
// The new status is written with a compare-and-swap on the status read at
// the start of the transaction. When two carriers race to accept the same
// request, the loser's write matches no row and is reported as an invalid
// transition, exactly as if it had read the accepted state.
//
// Example:
//
//	handler := NewTransitionDeliveryStatusCommandHandler(uowFactory, services.NewLifecycle(policy))
//	cmd, _ := NewTransitionDeliveryStatusCommand(deliveryID, actor, "accepted")
//	d, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	case errors.Is(err, errs.ErrForbidden):
//	case errors.Is(err, errs.ErrInvalidTransition):
//	}
type TransitionDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	lifecycle  services.Lifecycle
}

func NewTransitionDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	lifecycle services.Lifecycle,
) TransitionDeliveryStatusCommandHandler {
	return TransitionDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle applies the transition and returns the updated delivery.
func (h TransitionDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionDeliveryStatusCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()

	d, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	previous, err := h.lifecycle.Transition(d, cmd.Actor(), cmd.Target())
	if err != nil {
		return nil, err
	}

	err = repo.UpdateStatus(ctx, d, previous)
	if errors.Is(err, ports.ErrStatusChanged) {
		return nil, errs.NewInvalidTransitionError(previous.String(), cmd.Target().String())
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
