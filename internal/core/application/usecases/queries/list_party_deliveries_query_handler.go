package queries

import (
	"context"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/ports"
)

// ListPartyDeliveriesQueryHandler returns a user's deliveries newest first,
// each with the counterpart's public profile: the carrier for a sender, the
// sender for a carrier.
type ListPartyDeliveriesQueryHandler struct {
	repos ports.Repositories
}

func NewListPartyDeliveriesQueryHandler(repos ports.Repositories) ListPartyDeliveriesQueryHandler {
	return ListPartyDeliveriesQueryHandler{repos: repos}
}

func (h ListPartyDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListPartyDeliveriesQuery,
) ([]PartyDeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID()
	var filter ports.DeliveryFilter
	if query.Party() == AsCarrier {
		filter.CarrierID = &userID
	} else {
		filter.SenderID = &userID
	}

	deliveries, err := h.repos.Deliveries().List(ctx, filter)
	if err != nil {
		return nil, err
	}

	counterparts := make([]kernel.UserID, 0, len(deliveries))
	for _, d := range deliveries {
		if other, ok := d.OtherParty(userID); ok {
			counterparts = append(counterparts, other)
		}
	}
	profiles, err := loadProfiles(ctx, h.repos.Users(), counterparts)
	if err != nil {
		return nil, err
	}

	views := make([]PartyDeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		view := PartyDeliveryView{Delivery: d}
		if other, ok := d.OtherParty(userID); ok {
			view.Counterpart = profileOf(profiles, other)
		}
		views = append(views, view)
	}
	return views, nil
}
