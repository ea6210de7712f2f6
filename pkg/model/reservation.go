package model

type ReservationRecord struct {
	CustomerID string `json:"customer_id" bson:"customer_id"`
	HotelID    string `json:"hotel_id" bson:"hotel_id"`
	Rooms      []int  `json:"rooms" bson:"rooms"`
	CheckIn    string `json:"check_in" bson:"check_in"`
	CheckOut   string `json:"check_out" bson:"check_out"`
}

// Reservation is immutable once created; the only transition after create
// is a full cancel.
type Reservation struct {
	ID                string `json:"id" bson:"-" validate:"pathkey"`
	ReservationRecord `bson:",inline"`
}

func NewReservation(id string, rec *ReservationRecord) *Reservation {
	return &Reservation{ID: id, ReservationRecord: rec.Clone()}
}

func (r ReservationRecord) Clone() ReservationRecord {
	r.Rooms = cloneRooms(r.Rooms)
	return r
}
