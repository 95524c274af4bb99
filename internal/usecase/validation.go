package usecase

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that knows the custom tags used by the input DTOs.
// maxbytes=N limits the encoded length of a string, where max=N counts runes.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}

	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}
