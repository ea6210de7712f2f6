package testutil

import "hotelledger/pkg/model"

type ReservationBuilder struct {
	r model.Reservation
}

func NewReservationBuilder(id string) *ReservationBuilder {
	return &ReservationBuilder{
		r: model.Reservation{
			ID: id,
			ReservationRecord: model.ReservationRecord{
				CustomerID: "C1",
				HotelID:    "H1",
				Rooms:      []int{1, 2},
				CheckIn:    "2025-01-01",
				CheckOut:   "2025-01-03",
			},
		},
	}
}

func (b *ReservationBuilder) WithCustomer(id string) *ReservationBuilder {
	b.r.CustomerID = id
	return b
}

func (b *ReservationBuilder) WithHotel(id string) *ReservationBuilder {
	b.r.HotelID = id
	return b
}

func (b *ReservationBuilder) WithRooms(rooms ...int) *ReservationBuilder {
	b.r.Rooms = rooms
	return b
}

func (b *ReservationBuilder) Build() model.Reservation {
	return b.r
}

func ValidCustomer(id string) model.Customer {
	return model.Customer{
		ID:             id,
		CustomerRecord: model.CustomerRecord{Name: "Alice", Email: "alice@x.com"},
	}
}

func ValidHotel(id string, totalRooms int) model.Hotel {
	return model.Hotel{
		ID:          id,
		HotelRecord: model.HotelRecord{Name: "Grand", TotalRooms: totalRooms},
	}
}
