package commands_test

import (
	"testing"
	"time"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var (
	senderID   = kernel.MustNewUserID(1)
	carrierID  = kernel.MustNewUserID(2)
	strangerID = kernel.MustNewUserID(3)
)

func puneToMumbai() delivery.DetailsInput {
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

func newActor(t *testing.T, id kernel.UserID, role user.Role) user.Actor {
	t.Helper()
	a, err := user.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func restoreDelivery(t *testing.T, status delivery.Status) *delivery.Delivery {
	t.Helper()
	details, err := delivery.NewDetails(puneToMumbai())
	require.NoError(t, err)

	var carrier *kernel.UserID
	if status != delivery.Requested {
		c := carrierID
		carrier = &c
	}
	d, err := delivery.RestoreDelivery(kernel.NewUUID(), senderID, carrier, details, status, time.Now())
	require.NoError(t, err)
	return d
}

func restoreUser(t *testing.T, id kernel.UserID, role user.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(id, "user_"+id.String(), "hash", "User "+id.String(), role, nil, 0, time.Now())
	require.NoError(t, err)
	return u
}
