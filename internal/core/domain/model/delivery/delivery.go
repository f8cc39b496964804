package delivery

import (
	"errors"
	"time"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was not built by
	// NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery is the aggregate root of a single package request. It owns the
// lifecycle status and the one-time binding of a carrier.
//
// Invariants:
//   - sender, details and createdAt never change after construction
//   - carrier is nil iff status is Requested
//   - status only moves forward, one stage at a time
type Delivery struct {
	id        kernel.UUID
	senderID  kernel.UserID
	carrierID *kernel.UserID
	details   Details
	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewDelivery creates a delivery in the Requested status.
//
// Example:
//
//	details, err := delivery.NewDetails(delivery.DetailsInput{
//	    PickupLocation: "Pune", DropLocation: "Mumbai", PackageSize: "medium",
//	    PackageWeightGrams: 3500, PreferredDate: "2024-06-01", TimeWindow: "09:00-12:00",
//	    DeliveryFee: 30000,
//	})
//	d, err := delivery.NewDelivery(kernel.NewUUID(), senderID, details, time.Now())
func NewDelivery(id kernel.UUID, senderID kernel.UserID, details Details, createdAt time.Time) (*Delivery, error) {
	d := &Delivery{
		status:        Requested,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setSender(senderID),
		d.setDetails(details),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery rebuilds a delivery read back from storage and re-checks the
// carrier invariant.
func RestoreDelivery(
	id kernel.UUID,
	senderID kernel.UserID,
	carrierID *kernel.UserID,
	details Details,
	status Status,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{isConstructed: true}

	if err := errors.Join(
		d.setID(id),
		d.setSender(senderID),
		d.setDetails(details),
		d.setCreatedAt(createdAt),
		d.setStatus(status, carrierID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate reports whether d was built through a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID {
	return d.id
}

func (d *Delivery) SenderID() kernel.UserID {
	return d.senderID
}

// CarrierID returns the accepting carrier, or nil while Requested.
func (d *Delivery) CarrierID() *kernel.UserID {
	if d.carrierID == nil {
		return nil
	}
	c := *d.carrierID
	return &c
}

func (d *Delivery) Details() Details {
	return d.details
}

func (d *Delivery) Status() Status {
	return d.status
}

func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// IsSender reports whether userID created the delivery.
func (d *Delivery) IsSender(userID kernel.UserID) bool {
	return d.senderID.IsEqual(userID)
}

// IsCarrier reports whether userID is the accepted carrier.
func (d *Delivery) IsCarrier(userID kernel.UserID) bool {
	return d.carrierID != nil && d.carrierID.IsEqual(userID)
}

// IsParty reports whether userID is the sender or the carrier.
func (d *Delivery) IsParty(userID kernel.UserID) bool {
	return d.IsSender(userID) || d.IsCarrier(userID)
}

// OtherParty returns the counterpart of userID. ok is false when userID is
// not a party or the counterpart is not known yet.
func (d *Delivery) OtherParty(userID kernel.UserID) (kernel.UserID, bool) {
	switch {
	case d.IsSender(userID) && d.carrierID != nil:
		return *d.carrierID, true
	case d.IsCarrier(userID):
		return d.senderID, true
	default:
		return kernel.UserID{}, false
	}
}

// Accept binds carrierID and moves the delivery to Accepted. The sender can
// never carry their own request.
func (d *Delivery) Accept(carrierID kernel.UserID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	next, err := d.status.Accept()
	if err != nil {
		return err
	}

	if d.IsSender(carrierID) {
		return errs.NewForbiddenError("accept delivery", "sender cannot carry their own delivery")
	}

	d.status = next
	d.carrierID = &carrierID
	return nil
}

// Pickup marks the package as collected by the carrier.
func (d *Delivery) Pickup(actorID kernel.UserID) error {
	next, err := d.status.Pickup()
	if err != nil {
		return err
	}
	if !d.IsCarrier(actorID) {
		return errs.NewForbiddenError("pick up delivery", "only the carrier can pick up")
	}

	d.status = next
	return nil
}

// Deliver marks the package as handed over. Delivered is terminal.
func (d *Delivery) Deliver(actorID kernel.UserID) error {
	next, err := d.status.Deliver()
	if err != nil {
		return err
	}
	if !d.IsCarrier(actorID) {
		return errs.NewForbiddenError("complete delivery", "only the carrier can complete")
	}

	d.status = next
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setSender(senderID kernel.UserID) error {
	if err := senderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("senderId")
	}
	d.senderID = senderID
	return nil
}

func (d *Delivery) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	d.details = details
	return nil
}

func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = createdAt
	return nil
}

func (d *Delivery) setStatus(status Status, carrierID *kernel.UserID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveCarrier(carrierID != nil); err != nil {
		return err
	}
	if carrierID != nil && d.senderID.IsEqual(*carrierID) {
		return errs.NewValueIsInvalidErrorWithCause("carrierId", errors.New("carrier equals sender"))
	}

	d.status = status
	if carrierID != nil {
		c := *carrierID
		d.carrierID = &c
	}
	return nil
}
