package kernel

import (
	"errors"
	"strings"
	"unicode/utf8"

	"carrierlink/internal/pkg/guard"
)

// PlaceNameMaxLength bounds the stored length of a location name.
const PlaceNameMaxLength = 120

// ErrPlaceIsNotConstructed is returned when a Place was not created via NewPlace.
var ErrPlaceIsNotConstructed = errors.New("place must be created via NewPlace")

// Place is a named pickup or drop location such as "Pune" or "Mumbai".
// Names are compared exactly after surrounding whitespace is trimmed; there is
// no geocoding behind them.
type Place struct { //nolint:recvcheck //using for validation
	name  string
	guard guard.ConstructorGuard
}

// NewPlace validates and wraps a location name. field is the caller-facing
// field path reported when the name is blank or too long.
func NewPlace(field, name string) (Place, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Place{}, newRequired(field)
	}
	if utf8.RuneCountInString(trimmed) > PlaceNameMaxLength {
		return Place{}, newTooLong(field, PlaceNameMaxLength)
	}

	return Place{name: trimmed, guard: guard.NewConstructorGuard()}, nil
}

// Name returns the trimmed location name.
func (p Place) Name() string {
	return p.name
}

func (p Place) String() string {
	return p.name
}

// IsEqual compares two places by name.
func (p Place) IsEqual(other Place) bool {
	return p.name == other.name
}

// Validate rejects a Place that was not built with NewPlace.
func (p Place) Validate() error {
	return p.guard.Validate(ErrPlaceIsNotConstructed)
}
