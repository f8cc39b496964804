package queries

import (
	"context"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/ports"
)

type GetDeliveryStatsQueryHandler struct {
	repos ports.Repositories
}

func NewGetDeliveryStatsQueryHandler(repos ports.Repositories) GetDeliveryStatsQueryHandler {
	return GetDeliveryStatsQueryHandler{repos: repos}
}

func (h GetDeliveryStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatsQuery,
) (GetDeliveryStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	counts, err := h.repos.Deliveries().CountByStatus(ctx)
	if err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	resp := GetDeliveryStatsQueryResponse{ByStatus: make(map[delivery.Status]int, len(delivery.Statuses()))}
	for _, s := range delivery.Statuses() {
		resp.ByStatus[s] = counts[s]
		resp.Total += counts[s]
	}
	return resp, nil
}
