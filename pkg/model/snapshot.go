package model

import "slices"

// Snapshot is the whole persisted ledger. It is read and written as one unit.
type Snapshot struct {
	Hotels       map[string]*HotelRecord       `json:"hotels" bson:"hotels"`
	Customers    map[string]*CustomerRecord    `json:"customers" bson:"customers"`
	Reservations map[string]*ReservationRecord `json:"reservations" bson:"reservations"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Hotels:       map[string]*HotelRecord{},
		Customers:    map[string]*CustomerRecord{},
		Reservations: map[string]*ReservationRecord{},
	}
}

// Normalize replaces nil maps, nil entries and nil room lists with empty
// values so a decoded snapshot serializes the same way a fresh one does.
func (s *Snapshot) Normalize() {
	if s.Hotels == nil {
		s.Hotels = map[string]*HotelRecord{}
	}
	if s.Customers == nil {
		s.Customers = map[string]*CustomerRecord{}
	}
	if s.Reservations == nil {
		s.Reservations = map[string]*ReservationRecord{}
	}
	for id, h := range s.Hotels {
		if h == nil {
			h = &HotelRecord{}
			s.Hotels[id] = h
		}
		if h.ReservedRooms == nil {
			h.ReservedRooms = []int{}
		}
	}
	for id, c := range s.Customers {
		if c == nil {
			s.Customers[id] = &CustomerRecord{}
		}
	}
	for id, r := range s.Reservations {
		if r == nil {
			r = &ReservationRecord{}
			s.Reservations[id] = r
		}
		if r.Rooms == nil {
			r.Rooms = []int{}
		}
	}
}

// SortedIDs returns the keys of one snapshot collection in ascending order.
func SortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Page returns the window [offset, offset+limit) of ids.
func Page(ids []string, limit, offset int) []string {
	if offset >= len(ids) || limit <= 0 {
		return nil
	}
	return ids[offset:min(offset+limit, len(ids))]
}
