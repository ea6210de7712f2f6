package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// Input is a batch description. Each collection maps an id to the fields used
// to create it; hotels also list rooms to reserve after creation.
type Input struct {
	Customers    map[string]CustomerInput    `json:"customers"`
	Hotels       map[string]HotelInput       `json:"hotels"`
	Reservations map[string]ReservationInput `json:"reservations"`
}

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type HotelInput struct {
	Name          string `json:"name"`
	TotalRooms    int    `json:"total_rooms"`
	ReservedRooms []int  `json:"reserved_rooms"`
}

type ReservationInput struct {
	CustomerID string `json:"customer_id"`
	HotelID    string `json:"hotel_id"`
	Rooms      []int  `json:"rooms"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

func ReadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch input: %w", err)
	}
	return ParseInput(data)
}

func ParseInput(data []byte) (*Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode batch input: %w", err)
	}
	return &in, nil
}
