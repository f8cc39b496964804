package queries

import (
	"context"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/ports"
)

// ListDeliveriesQueryHandler returns matching deliveries newest first, each
// enriched with the sender's public profile only.
type ListDeliveriesQueryHandler struct {
	repos ports.Repositories
}

func NewListDeliveriesQueryHandler(repos ports.Repositories) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{repos: repos}
}

func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries, err := h.repos.Deliveries().List(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	senders := make([]kernel.UserID, 0, len(deliveries))
	for _, d := range deliveries {
		senders = append(senders, d.SenderID())
	}
	profiles, err := loadProfiles(ctx, h.repos.Users(), senders)
	if err != nil {
		return nil, err
	}

	views := make([]DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		views = append(views, DeliveryView{
			Delivery: d,
			Sender:   profileOf(profiles, d.SenderID()),
		})
	}
	return views, nil
}
