package kernel

import (
	"fmt"

	"carrierlink/internal/pkg/errs"
)

func newRequired(field string) error {
	return errs.NewValueIsRequiredError(field)
}

func newTooLong(field string, maxLength int) error {
	return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be at most %d characters", maxLength))
}
