package queries

import (
	"errors"
	"fmt"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/pkg/errs"
	"carrierlink/internal/pkg/guard"
)

var ErrListPartyDeliveriesQueryIsNotConstructed = errors.New(
	"ListPartyDeliveriesQuery must be created via NewListPartyDeliveriesQuery constructor",
)

// Party selects which side of a delivery the caller is looking from.
type Party int

const (
	UnknownParty Party = iota
	AsSender
	AsCarrier
)

func ParseParty(s string) (Party, error) {
	switch s {
	case "sender":
		return AsSender, nil
	case "carrier":
		return AsCarrier, nil
	default:
		return UnknownParty, errs.NewValueIsInvalidErrorWithCause("as", fmt.Errorf("%q is not one of sender, carrier", s))
	}
}

func (p Party) String() string {
	switch p {
	case AsSender:
		return "sender"
	case AsCarrier:
		return "carrier"
	default:
		return "unknown"
	}
}

// ListPartyDeliveriesQuery lists the deliveries a user sent or carries.
type ListPartyDeliveriesQuery struct {
	userID kernel.UserID
	party  Party
	guard  guard.ConstructorGuard
}

func NewListPartyDeliveriesQuery(userID kernel.UserID, as string) (ListPartyDeliveriesQuery, error) {
	party, partyErr := ParseParty(as)
	if err := errors.Join(userID.Validate(), partyErr); err != nil {
		return ListPartyDeliveriesQuery{}, err
	}
	return ListPartyDeliveriesQuery{
		userID: userID,
		party:  party,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListPartyDeliveriesQuery) UserID() kernel.UserID {
	return q.userID
}

func (q ListPartyDeliveriesQuery) Party() Party {
	return q.party
}

func (q ListPartyDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListPartyDeliveriesQueryIsNotConstructed)
}
