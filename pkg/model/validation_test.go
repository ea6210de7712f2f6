package model

import (
	"strings"
	"testing"

	"hotelledger/pkg/validation"
)

func TestCustomer_ValidationTags(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name        string
		customer    *Customer
		expectValid bool
	}{
		{
			name:        "valid customer",
			customer:    &Customer{ID: "C1", CustomerRecord: CustomerRecord{Name: "Alice", Email: "alice@x.com"}},
			expectValid: true,
		},
		{
			name:        "empty name and email are allowed",
			customer:    &Customer{ID: "C1"},
			expectValid: true,
		},
		{
			name:        "empty id is a key like any other",
			customer:    &Customer{CustomerRecord: CustomerRecord{Name: "Alice"}},
			expectValid: true,
		},
		{
			name:        "long id and name have no limit",
			customer:    &Customer{ID: strings.Repeat("c", 65), CustomerRecord: CustomerRecord{Name: strings.Repeat("a", 201)}},
			expectValid: true,
		},
		{
			name:        "id with a slash",
			customer:    &Customer{ID: "C/1"},
			expectValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(v, tt.customer)
			if (err == nil) != tt.expectValid {
				t.Errorf("Struct() error = %v, expectValid %v", err, tt.expectValid)
			}
		})
	}
}

func TestHotel_ValidationTags(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name        string
		hotel       *Hotel
		expectValid bool
	}{
		{"valid hotel", &Hotel{ID: "H1", HotelRecord: HotelRecord{Name: "Grand", TotalRooms: 10}}, true},
		{"zero rooms is not validated", &Hotel{ID: "H1", HotelRecord: HotelRecord{Name: "Grand"}}, true},
		{"negative rooms is not validated", &Hotel{ID: "H1", HotelRecord: HotelRecord{TotalRooms: -3}}, true},
		{"padded id is kept as is", &Hotel{ID: " H1 ", HotelRecord: HotelRecord{TotalRooms: 1}}, true},
		{"control character in id", &Hotel{ID: "H\x001", HotelRecord: HotelRecord{TotalRooms: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(v, tt.hotel)
			if (err == nil) != tt.expectValid {
				t.Errorf("Struct() error = %v, expectValid %v", err, tt.expectValid)
			}
		})
	}
}

func TestReservation_ValidationTags(t *testing.T) {
	v := validation.New()

	valid := &Reservation{
		ID: "R1",
		ReservationRecord: ReservationRecord{
			CustomerID: "C1",
			HotelID:    "H1",
			Rooms:      []int{1, 2},
			CheckIn:    " next tuesday ",
			CheckOut:   strings.Repeat("d", 100),
		},
	}
	if err := validation.Struct(v, valid); err != nil {
		t.Errorf("dates are opaque and must not be validated: %v", err)
	}

	unknownRefs := &Reservation{ID: "R2", ReservationRecord: ReservationRecord{CustomerID: "C/9"}}
	if err := validation.Struct(v, unknownRefs); err != nil {
		t.Errorf("references are resolved by the coordinator, not the validator: %v", err)
	}

	slashID := &Reservation{ID: "R/1", ReservationRecord: ReservationRecord{CustomerID: "C1", HotelID: "H1"}}
	if err := validation.Struct(v, slashID); err == nil {
		t.Error("expected an id with '/' to fail validation")
	}
}
