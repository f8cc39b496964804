package queries

import (
	"errors"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/pkg/guard"
)

var ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
)

// GetDeliveryStatsQuery counts deliveries per lifecycle status.
// Used by the stats endpoint and the periodic stats job.
type GetDeliveryStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDeliveryStatsQuery() GetDeliveryStatsQuery {
	return GetDeliveryStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

// GetDeliveryStatsQueryResponse has an entry for every known status,
// zero included.
type GetDeliveryStatsQueryResponse struct {
	ByStatus map[delivery.Status]int
	Total    int
}
