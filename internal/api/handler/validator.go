package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call
// c.Validate(req). Failures become a domain.ValidationError whose
// field-keyed messages end up in the problem object's detail.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var fes validator.ValidationErrors
		if errors.As(err, &fes) {
			out := &domain.ValidationError{}
			for _, fe := range fes {
				out.Add(fieldName(fe), fieldError(fe))
			}
			return out
		}
		return err
	}
	return nil
}

// fieldName prefers the json tag name carried in the struct tag namespace.
func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Enter a valid email address."
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
