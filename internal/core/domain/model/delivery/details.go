package delivery

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"
	"carrierlink/internal/pkg/guard"
)

// Field paths reported in validation errors.
const (
	FieldPickupLocation      = "pickupLocation"
	FieldDropLocation        = "dropLocation"
	FieldPackageSize         = "packageSize"
	FieldPackageWeight       = "packageWeight"
	FieldDescription         = "description"
	FieldSpecialInstructions = "specialInstructions"
	FieldPreferredDate       = "preferredDate"
	FieldTimeWindow          = "timeWindow"
	FieldDeliveryFee         = "deliveryFee"
)

const (
	maxFreeTextLength = 1000
	maxScheduleLength = 64
)

var ErrDetailsIsNotConstructed = errors.New("Details must be created via NewDetails")

// DetailsInput is the raw description of a delivery request as submitted by a sender.
type DetailsInput struct {
	PickupLocation      string
	DropLocation        string
	PackageSize         string
	PackageWeightGrams  int
	Description         string
	SpecialInstructions string
	PreferredDate       string
	TimeWindow          string
	DeliveryFee         int64
}

// Details is the validated, immutable description of what is carried where and when.
type Details struct { //nolint:recvcheck //using for validation
	pickup              kernel.Place
	drop                kernel.Place
	size                PackageSize
	weightGrams         int
	description         string
	specialInstructions string
	preferredDate       string
	timeWindow          string
	fee                 int64

	guard guard.ConstructorGuard
}

// NewDetails validates every field of in and reports all failures at once.
func NewDetails(in DetailsInput) (Details, error) {
	d := Details{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setPickup(in.PickupLocation),
		d.setDrop(in.DropLocation),
		d.setSize(in.PackageSize),
		d.setWeight(in.PackageWeightGrams),
		d.setDescription(in.Description),
		d.setSpecialInstructions(in.SpecialInstructions),
		d.setPreferredDate(in.PreferredDate),
		d.setTimeWindow(in.TimeWindow),
		d.setFee(in.DeliveryFee),
	); err != nil {
		return Details{}, err
	}

	return d, nil
}

func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsIsNotConstructed)
}

func (d Details) Pickup() kernel.Place { return d.pickup }
func (d Details) Drop() kernel.Place { return d.drop }
func (d Details) Size() PackageSize { return d.size }
func (d Details) WeightGrams() int { return d.weightGrams }
func (d Details) Description() string { return d.description }
func (d Details) SpecialInstructions() string { return d.specialInstructions }
func (d Details) PreferredDate() string { return d.preferredDate }
func (d Details) TimeWindow() string { return d.timeWindow }
func (d Details) Fee() int64 { return d.fee }

func (d *Details) setPickup(name string) error {
	p, err := kernel.NewPlace(FieldPickupLocation, name)
	if err != nil {
		return err
	}
	d.pickup = p
	return nil
}

func (d *Details) setDrop(name string) error {
	p, err := kernel.NewPlace(FieldDropLocation, name)
	if err != nil {
		return err
	}
	d.drop = p
	return nil
}

func (d *Details) setSize(s string) error {
	if s == "" {
		return errs.NewValueIsRequiredError(FieldPackageSize)
	}
	size, err := ParsePackageSize(FieldPackageSize, s)
	if err != nil {
		return err
	}
	d.size = size
	return nil
}

func (d *Details) setWeight(grams int) error {
	if grams <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(FieldPackageWeight, fmt.Errorf("%d is not greater than 0", grams))
	}
	d.weightGrams = grams
	return nil
}

func (d *Details) setDescription(s string) error {
	s, err := optionalText(FieldDescription, s)
	d.description = s
	return err
}

func (d *Details) setSpecialInstructions(s string) error {
	s, err := optionalText(FieldSpecialInstructions, s)
	d.specialInstructions = s
	return err
}

func (d *Details) setPreferredDate(s string) error {
	s, err := requiredText(FieldPreferredDate, s)
	d.preferredDate = s
	return err
}

func (d *Details) setTimeWindow(s string) error {
	s, err := requiredText(FieldTimeWindow, s)
	d.timeWindow = s
	return err
}

func (d *Details) setFee(fee int64) error {
	if fee <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(FieldDeliveryFee, fmt.Errorf("%d is not greater than 0", fee))
	}
	d.fee = fee
	return nil
}

func optionalText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxFreeTextLength {
		return "", errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be at most %d characters", maxFreeTextLength))
	}
	return s, nil
}

func requiredText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError(field)
	}
	if utf8.RuneCountInString(s) > maxScheduleLength {
		return "", errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be at most %d characters", maxScheduleLength))
	}
	return s, nil
}
