package delivery_test

import (
	"testing"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(delivery.Unknown))
	assert.Equal(t, 1, int(delivery.Requested))
	assert.Equal(t, 2, int(delivery.Accepted))
	assert.Equal(t, 3, int(delivery.Picked))
	assert.Equal(t, 4, int(delivery.Delivered))
}

func TestParseStatus(t *testing.T) {
	for _, s := range delivery.Statuses() {
		parsed, err := delivery.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	for _, bad := range []string{"", "unknown", "Requested", "cancelled"} {
		_, err := delivery.ParseStatus(bad)
		require.Error(t, err, bad)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestStatus_Validate(t *testing.T) {
	assert.NoError(t, delivery.Picked.Validate())
	assert.Error(t, delivery.Unknown.Validate())
	assert.Error(t, delivery.Status(99).Validate())
	assert.Equal(t, "unknown", delivery.Status(99).String())
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    delivery.Status
		advance func(delivery.Status) (delivery.Status, error)
		want    delivery.Status
		wantErr bool
	}{
		{"accept requested", delivery.Requested, delivery.Status.Accept, delivery.Accepted, false},
		{"accept accepted", delivery.Accepted, delivery.Status.Accept, delivery.Unknown, true},
		{"accept delivered", delivery.Delivered, delivery.Status.Accept, delivery.Unknown, true},
		{"pickup accepted", delivery.Accepted, delivery.Status.Pickup, delivery.Picked, false},
		{"pickup requested", delivery.Requested, delivery.Status.Pickup, delivery.Unknown, true},
		{"pickup picked", delivery.Picked, delivery.Status.Pickup, delivery.Unknown, true},
		{"deliver picked", delivery.Picked, delivery.Status.Deliver, delivery.Delivered, false},
		{"deliver accepted", delivery.Accepted, delivery.Status.Deliver, delivery.Unknown, true},
		{"deliver delivered", delivery.Delivered, delivery.Status.Deliver, delivery.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.advance(tt.from)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_ValidateCanHaveCarrier(t *testing.T) {
	assert.NoError(t, delivery.Requested.ValidateCanHaveCarrier(false))
	assert.Error(t, delivery.Requested.ValidateCanHaveCarrier(true))

	for _, s := range []delivery.Status{delivery.Accepted, delivery.Picked, delivery.Delivered} {
		assert.NoError(t, s.ValidateCanHaveCarrier(true), s.String())
		assert.Error(t, s.ValidateCanHaveCarrier(false), s.String())
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, delivery.Delivered.IsTerminal())
	assert.False(t, delivery.Picked.IsTerminal())
}

func TestParsePackageSize(t *testing.T) {
	size, err := delivery.ParsePackageSize("packageSize", "medium")
	require.NoError(t, err)
	assert.Equal(t, delivery.Medium, size)
	assert.Equal(t, "medium", size.String())

	_, err = delivery.ParsePackageSize("packageSize", "huge")
	require.Error(t, err)
	assert.Equal(t, "packageSize", errs.FieldErrors(err)[0].Field)
	assert.Error(t, delivery.UnknownSize.Validate())
}
