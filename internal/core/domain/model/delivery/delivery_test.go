package delivery_test

import (
	"testing"
	"time"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sender  = kernel.MustNewUserID(1)
	carrier = kernel.MustNewUserID(2)
	other   = kernel.MustNewUserID(3)
)

func validInput() delivery.DetailsInput {
	return delivery.DetailsInput{
		PickupLocation:     "Pune",
		DropLocation:       "Mumbai",
		PackageSize:        "medium",
		PackageWeightGrams: 3500,
		PreferredDate:      "2024-06-01",
		TimeWindow:         "09:00-12:00",
		DeliveryFee:        30000,
	}
}

func newDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	details, err := delivery.NewDetails(validInput())
	require.NoError(t, err)
	d, err := delivery.NewDelivery(kernel.NewUUID(), sender, details, time.Now())
	require.NoError(t, err)
	return d
}

func TestNewDetails(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		in := validInput()
		in.Description = "  books "
		details, err := delivery.NewDetails(in)

		require.NoError(t, err)
		assert.Equal(t, "Pune", details.Pickup().Name())
		assert.Equal(t, "Mumbai", details.Drop().Name())
		assert.Equal(t, delivery.Medium, details.Size())
		assert.Equal(t, 3500, details.WeightGrams())
		assert.Equal(t, int64(30000), details.Fee())
		assert.Equal(t, "books", details.Description())
		assert.Empty(t, details.SpecialInstructions())
	})

	t.Run("reports every failing field", func(t *testing.T) {
		_, err := delivery.NewDetails(delivery.DetailsInput{PackageSize: "huge"})
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))

		var fields []string
		for _, fe := range errs.FieldErrors(err) {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{
			delivery.FieldPickupLocation,
			delivery.FieldDropLocation,
			delivery.FieldPackageSize,
			delivery.FieldPackageWeight,
			delivery.FieldPreferredDate,
			delivery.FieldTimeWindow,
			delivery.FieldDeliveryFee,
		}, fields)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, delivery.Details{}.Validate(), delivery.ErrDetailsIsNotConstructed)
	})
}

func TestNewDelivery(t *testing.T) {
	d := newDelivery(t)

	require.NoError(t, d.Validate())
	assert.Equal(t, delivery.Requested, d.Status())
	assert.Nil(t, d.CarrierID())
	assert.True(t, d.IsSender(sender))
	assert.False(t, d.IsParty(carrier))
	assert.False(t, d.CreatedAt().IsZero())

	_, err := delivery.NewDelivery(kernel.UUID{}, kernel.UserID{}, delivery.Details{}, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, delivery.ErrDetailsIsNotConstructed)

	var zero *delivery.Delivery
	assert.ErrorIs(t, zero.Validate(), delivery.ErrDeliveryIsNotConstructed)
}

func TestDelivery_FullLifecycle(t *testing.T) {
	d := newDelivery(t)

	require.NoError(t, d.Accept(carrier))
	assert.Equal(t, delivery.Accepted, d.Status())
	require.NotNil(t, d.CarrierID())
	assert.Equal(t, carrier, *d.CarrierID())

	require.NoError(t, d.Pickup(carrier))
	assert.Equal(t, delivery.Picked, d.Status())

	require.NoError(t, d.Deliver(carrier))
	assert.Equal(t, delivery.Delivered, d.Status())

	counterpart, ok := d.OtherParty(sender)
	assert.True(t, ok)
	assert.Equal(t, carrier, counterpart)
	back, ok := d.OtherParty(carrier)
	assert.True(t, ok)
	assert.Equal(t, sender, back)
}

func TestDelivery_Accept(t *testing.T) {
	t.Run("sender cannot accept own delivery", func(t *testing.T) {
		d := newDelivery(t)
		err := d.Accept(sender)
		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, delivery.Requested, d.Status())
		assert.Nil(t, d.CarrierID())
	})

	t.Run("second accept is an invalid transition", func(t *testing.T) {
		d := newDelivery(t)
		require.NoError(t, d.Accept(carrier))
		err := d.Accept(other)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, carrier, *d.CarrierID())
	})

	t.Run("returned carrier id is a copy", func(t *testing.T) {
		d := newDelivery(t)
		require.NoError(t, d.Accept(carrier))
		c := d.CarrierID()
		*c = other
		assert.Equal(t, carrier, *d.CarrierID())
	})
}

func TestDelivery_PickupAndDeliver(t *testing.T) {
	t.Run("skip ahead is rejected", func(t *testing.T) {
		d := newDelivery(t)
		require.ErrorIs(t, d.Pickup(carrier), errs.ErrInvalidTransition)
		require.ErrorIs(t, d.Deliver(carrier), errs.ErrInvalidTransition)
	})

	t.Run("state is checked before role", func(t *testing.T) {
		d := newDelivery(t)
		require.ErrorIs(t, d.Deliver(other), errs.ErrInvalidTransition)
	})

	t.Run("only the carrier advances", func(t *testing.T) {
		d := newDelivery(t)
		require.NoError(t, d.Accept(carrier))
		require.ErrorIs(t, d.Pickup(sender), errs.ErrForbidden)
		require.NoError(t, d.Pickup(carrier))
		require.ErrorIs(t, d.Deliver(other), errs.ErrForbidden)
		assert.Equal(t, delivery.Picked, d.Status())
	})
}

func TestRestoreDelivery(t *testing.T) {
	details, err := delivery.NewDetails(validInput())
	require.NoError(t, err)
	id := kernel.NewUUID()
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("consistent state", func(t *testing.T) {
		c := carrier
		d, err := delivery.RestoreDelivery(id, sender, &c, details, delivery.Picked, createdAt)
		require.NoError(t, err)
		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, delivery.Picked, d.Status())
		assert.True(t, d.IsCarrier(carrier))
		assert.Equal(t, createdAt, d.CreatedAt())
	})

	t.Run("carrier without acceptance", func(t *testing.T) {
		c := carrier
		_, err := delivery.RestoreDelivery(id, sender, &c, details, delivery.Requested, createdAt)
		assert.Error(t, err)
	})

	t.Run("accepted without carrier", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(id, sender, nil, details, delivery.Accepted, createdAt)
		assert.Error(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(id, sender, nil, details, delivery.Unknown, createdAt)
		assert.Error(t, err)
	})
}
