package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"carrierlink/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator checks request bodies against their `validate` tags and
// reports failures as errs validation errors keyed by JSON field name.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			out = append(out, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		out = append(out, errs.NewValueIsInvalidErrorWithCause(fe.Field(), ruleError(fe)))
	}
	return errors.Join(out...)
}

func ruleError(fe validator.FieldError) error {
	if fe.Param() == "" {
		return fmt.Errorf("must satisfy %s", fe.Tag())
	}
	return fmt.Errorf("must satisfy %s=%s", fe.Tag(), fe.Param())
}
