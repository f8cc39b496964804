package queries

import (
	"context"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/review"
	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/core/ports"
)

// DeliveryView is a delivery with the public profiles of its parties.
// Carrier is nil until the delivery is accepted; listings that only
// enrich the sender leave it nil as well.
type DeliveryView struct {
	Delivery *delivery.Delivery
	Sender   *user.PublicProfile
	Carrier  *user.PublicProfile
}

// PartyDeliveryView is a delivery seen by one of its parties. Counterpart is
// the other party's profile, or nil while there is none.
type PartyDeliveryView struct {
	Delivery    *delivery.Delivery
	Counterpart *user.PublicProfile
}

// ReviewView is a received review with the reviewer's public identity.
type ReviewView struct {
	Review         *review.Review
	ReviewerHandle string
	ReviewerName   string
}

// loadProfiles fetches the public profiles of ids in one repository call.
// Ids without a user are absent from the result.
func loadProfiles(
	ctx context.Context,
	users ports.UserRepository,
	ids []kernel.UserID,
) (map[kernel.UserID]user.PublicProfile, error) {
	out := make(map[kernel.UserID]user.PublicProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	found, err := users.GetMany(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for id, u := range found {
		out[id] = u.PublicProfile()
	}
	return out, nil
}

func uniqueIDs(ids []kernel.UserID) []kernel.UserID {
	seen := make(map[kernel.UserID]struct{}, len(ids))
	out := make([]kernel.UserID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func profileOf(profiles map[kernel.UserID]user.PublicProfile, id kernel.UserID) *user.PublicProfile {
	p, ok := profiles[id]
	if !ok {
		return nil
	}
	return &p
}
