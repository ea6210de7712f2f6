// Package events publishes ledger changes to Kafka. Publishing is best
// effort: ledger operations never fail because an event could not be sent.
package events

import (
	"context"

	"hotelledger/pkg/logger"
	"hotelledger/pkg/model"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"
	TypeRoomReserved         = "room.reserved"
	TypeRoomReleased         = "room.released"

	SchemaVersion = "1"
)

// Event is one ledger change. Key selects the Kafka partition; all events of
// one hotel share a key so they stay ordered.
type Event struct {
	Type    string
	Key     string
	Payload any
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type ReservationPayload struct {
	ReservationID string `json:"reservation_id"`
	CustomerID    string `json:"customer_id"`
	HotelID       string `json:"hotel_id"`
	Rooms         []int  `json:"rooms"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
}

type RoomPayload struct {
	HotelID string `json:"hotel_id"`
	Room    int    `json:"room"`
}

func ReservationCreated(r *model.Reservation) Event {
	return reservationEvent(TypeReservationCreated, r)
}

func ReservationCancelled(r *model.Reservation) Event {
	return reservationEvent(TypeReservationCancelled, r)
}

func reservationEvent(eventType string, r *model.Reservation) Event {
	return Event{
		Type: eventType,
		Key:  r.HotelID,
		Payload: ReservationPayload{
			ReservationID: r.ID,
			CustomerID:    r.CustomerID,
			HotelID:       r.HotelID,
			Rooms:         r.Rooms,
			CheckIn:       r.CheckIn,
			CheckOut:      r.CheckOut,
		},
	}
}

func RoomReserved(hotelID string, room int) Event {
	return Event{Type: TypeRoomReserved, Key: hotelID, Payload: RoomPayload{HotelID: hotelID, Room: room}}
}

func RoomReleased(hotelID string, room int) Event {
	return Event{Type: TypeRoomReleased, Key: hotelID, Payload: RoomPayload{HotelID: hotelID, Room: room}}
}

// Emit publishes e and logs a failure instead of returning it.
func Emit(ctx context.Context, pub Publisher, log *logger.Logger, e Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		log.Warn("Failed to publish ledger event",
			"event_type", e.Type,
			"key", e.Key,
			"error", err,
		)
	}
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, e Event) error { return nil }
func (NoopPublisher) Close() error { return nil }
