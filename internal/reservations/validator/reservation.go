package validator

import (
	"hotelledger/pkg/model"
	"hotelledger/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ReservationValidator struct {
	validate *validator.Validate
}

func NewReservationValidator() *ReservationValidator {
	return &ReservationValidator{
		validate: validation.New(),
	}
}

// Validate checks the reservation id. Whether customer_id and hotel_id
// resolve is decided by the coordinator, so any reference passes here and an
// unknown one later fails with NOT_FOUND. Dates are opaque.
func (v *ReservationValidator) Validate(r *model.Reservation) error {
	return validation.Struct(v.validate, r)
}
