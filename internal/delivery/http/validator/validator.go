// Package validator adapts go-playground/validator to echo.
package validator

import (
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator with required-struct checks and the input DTO tags enabled.
func New() *CustomValidator {
	return &CustomValidator{
		validate: usecase.NewValidator(),
	}
}

// Validate checks the struct tags of i. Failures come back as VALIDATION_FAILED
// with one "field: rule" entry per broken constraint.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		problem := fieldErr.Field() + ": " + fieldErr.Tag()
		if fieldErr.Param() != "" {
			problem += "=" + fieldErr.Param()
		}
		problems = append(problems, problem)
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
}
