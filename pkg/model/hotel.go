package model

import (
	"slices"

	apperrors "hotelledger/pkg/errors"
)

type HotelRecord struct {
	Name          string `json:"name" bson:"name"`
	TotalRooms    int    `json:"total_rooms" bson:"total_rooms"`
	ReservedRooms []int  `json:"reserved_rooms" bson:"reserved_rooms"`
}

type Hotel struct {
	ID          string `json:"id" bson:"-" validate:"pathkey"`
	HotelRecord `bson:",inline"`
}

// HotelUpdate carries the fields a modify call may overwrite. Zero values
// mean "leave unchanged".
type HotelUpdate struct {
	Name       string `json:"name,omitempty"`
	TotalRooms int    `json:"total_rooms,omitempty"`
}

// NewHotel returns a detached copy of rec keyed by id.
func NewHotel(id string, rec *HotelRecord) *Hotel {
	return &Hotel{ID: id, HotelRecord: rec.Clone()}
}

func (h HotelRecord) Clone() HotelRecord {
	h.ReservedRooms = cloneRooms(h.ReservedRooms)
	return h
}

func (h *HotelRecord) IsReserved(room int) bool {
	return slices.Contains(h.ReservedRooms, room)
}

// RoomsOutOfRange lists reserved rooms that no longer fit in [1, TotalRooms].
func (h *HotelRecord) RoomsOutOfRange() []int {
	var out []int
	for _, room := range h.ReservedRooms {
		if room < 1 || room > h.TotalRooms {
			out = append(out, room)
		}
	}
	return out
}

func (h *HotelRecord) Reserve(room int) {
	h.ReservedRooms = append(h.ReservedRooms, room)
}

// Release removes the first occurrence of room and reports whether it was present.
func (h *HotelRecord) Release(room int) bool {
	idx := slices.Index(h.ReservedRooms, room)
	if idx < 0 {
		return false
	}
	h.ReservedRooms = slices.Delete(h.ReservedRooms, idx, idx+1)
	return true
}

// ReserveRoom marks room as reserved. It fails with OutOfRange when room is
// outside [1, TotalRooms] and with AlreadyReserved when it is taken.
func (h *HotelRecord) ReserveRoom(hotelID string, room int) error {
	if room < 1 || room > h.TotalRooms {
		return apperrors.OutOfRange(hotelID, room, h.TotalRooms)
	}
	if h.IsReserved(room) {
		return apperrors.AlreadyReserved(hotelID, room)
	}
	h.Reserve(room)
	return nil
}

func (h *HotelRecord) ReleaseRoom(hotelID string, room int) error {
	if !h.Release(room) {
		return apperrors.NotReserved(hotelID, room)
	}
	return nil
}

func cloneRooms(rooms []int) []int {
	if rooms == nil {
		return []int{}
	}
	return slices.Clone(rooms)
}
