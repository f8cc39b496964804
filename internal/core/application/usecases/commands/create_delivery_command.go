package commands

import (
	"errors"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"
	"carrierlink/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
)

// CreateDeliveryCommand is a sender's request for a new delivery.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand(kernel.NewUUID(), senderID, delivery.DetailsInput{
//	    PickupLocation: "Pune", DropLocation: "Mumbai", PackageSize: "medium",
//	    PackageWeightGrams: 3500, PreferredDate: "2024-06-01", TimeWindow: "09:00-12:00",
//	    DeliveryFee: 30000,
//	})
//	if err != nil {
//	    return err // errs.FieldErrors(err) lists every failing field
//	}
//	err = handler.Handle(ctx, cmd)
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	senderID   kernel.UserID
	details    delivery.Details

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates every field and reports all failures together.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	senderID kernel.UserID,
	in delivery.DetailsInput,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setSenderID(senderID),
		cmd.setDetails(in),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c CreateDeliveryCommand) SenderID() kernel.UserID {
	return c.senderID
}

func (c CreateDeliveryCommand) Details() delivery.Details {
	return c.details
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setSenderID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredError("senderId")
	}
	c.senderID = id
	return nil
}

func (c *CreateDeliveryCommand) setDetails(in delivery.DetailsInput) error {
	details, err := delivery.NewDetails(in)
	if err != nil {
		return err
	}
	c.details = details
	return nil
}
