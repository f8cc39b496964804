package commands

import (
	"errors"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/pkg/errs"
	"carrierlink/internal/pkg/guard"
)

var (
	ErrTransitionDeliveryStatusCommandIsNotConstructed = errors.New(
		"TransitionDeliveryStatusCommand must be created via NewTransitionDeliveryStatusCommand constructor",
	)
)

// TransitionDeliveryStatusCommand asks to move a delivery to the target status
// on behalf of the authenticated actor.
type TransitionDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      user.Actor
	target     delivery.Status

	guard guard.ConstructorGuard
}

// NewTransitionDeliveryStatusCommand parses target by its wire name.
func NewTransitionDeliveryStatusCommand(
	deliveryID kernel.UUID,
	actor user.Actor,
	target string,
) (TransitionDeliveryStatusCommand, error) {
	cmd := TransitionDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return TransitionDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

func (c TransitionDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDeliveryStatusCommandIsNotConstructed)
}

func (c TransitionDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c TransitionDeliveryStatusCommand) Actor() user.Actor {
	return c.actor
}

func (c TransitionDeliveryStatusCommand) Target() delivery.Status {
	return c.target
}

func (c *TransitionDeliveryStatusCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredError("id")
	}
	c.deliveryID = id
	return nil
}

func (c *TransitionDeliveryStatusCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *TransitionDeliveryStatusCommand) setTarget(target string) error {
	if target == "" {
		return errs.NewValueIsRequiredError("status")
	}
	status, err := delivery.ParseStatus(target)
	if err != nil {
		return err
	}
	c.target = status
	return nil
}
