package validator

import (
	"hotelledger/pkg/model"
	"hotelledger/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// HotelValidator only checks that the id is a usable path key. Names and
// room counts are stored as given, zero or negative total_rooms included.
type HotelValidator struct {
	validate *validator.Validate
}

func NewHotelValidator() *HotelValidator {
	return &HotelValidator{
		validate: validation.New(),
	}
}

func (v *HotelValidator) Validate(h *model.Hotel) error {
	return validation.Struct(v.validate, h)
}
