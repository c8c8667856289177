package services

import (
	"errors"
	"fmt"
	"strings"

	contact_errors "contact-form/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// contactFields are the scalar rules shared by submit and amend. Field order
// decides which error is reported first.
type contactFields struct {
	Name    string `validate:"required,max=255"`
	Email   string `validate:"required,email,max=255"`
	Message string `validate:"required"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func (f *contactFields) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
}

// firstValidationError turns the first failed rule into a client-facing
// ValidationError.
func firstValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return contact_errors.NewValidationError("The %s field is required.", field)
	case "email":
		return contact_errors.NewValidationError("The %s must be a valid email address.", field)
	case "max":
		return contact_errors.NewValidationError("The %s must not be greater than %s characters.", field, fe.Param())
	default:
		return contact_errors.NewValidationError("The %s field is invalid.", field)
	}
}
