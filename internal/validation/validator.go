// Package validation adapts go-playground/validator to the domain error types.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/royi-klein/ClinicalTrial/internal/domain"
)

// Validator wraps go-playground/validator. It also satisfies echo.Validator.
type Validator struct {
	validator *validator.Validate
}

// New creates a Validator that reports fields by their json name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validator: v}
}

// Validate validates a struct using its validate tags. The first failing
// field is returned as a *domain.ValidationError.
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &domain.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "max":
		return fmt.Sprintf("must be %s characters or less", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
