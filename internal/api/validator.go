package api

import (
	"github.com/go-playground/validator/v10"

	"wishlist-service/internal/apperr"
)

// Validator plugs the declarative struct validator into echo's Validate
// hook. Validation failures surface as BadRequest.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return apperr.BadRequest("%s", err.Error())
	}
	return nil
}
