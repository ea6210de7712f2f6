package validator

import (
	"hotelledger/pkg/model"
	"hotelledger/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type CustomerValidator struct {
	validate *validator.Validate
}

func NewCustomerValidator() *CustomerValidator {
	return &CustomerValidator{
		validate: validation.New(),
	}
}

func (v *CustomerValidator) Validate(c *model.Customer) error {
	return validation.Struct(v.validate, c)
}
