package queries

import (
	"context"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/ports"
)

// GetDeliveryQueryHandler loads one delivery with both parties' profiles.
// An unknown id yields errs.ObjectNotFoundError.
type GetDeliveryQueryHandler struct {
	repos ports.Repositories
}

func NewGetDeliveryQueryHandler(repos ports.Repositories) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{repos: repos}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	d, err := h.repos.Deliveries().Get(ctx, query.DeliveryID())
	if err != nil {
		return DeliveryView{}, err
	}

	ids := []kernel.UserID{d.SenderID()}
	if c := d.CarrierID(); c != nil {
		ids = append(ids, *c)
	}
	profiles, err := loadProfiles(ctx, h.repos.Users(), ids)
	if err != nil {
		return DeliveryView{}, err
	}

	view := DeliveryView{Delivery: d, Sender: profileOf(profiles, d.SenderID())}
	if c := d.CarrierID(); c != nil {
		view.Carrier = profileOf(profiles, *c)
	}
	return view, nil
}
