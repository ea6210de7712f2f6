package service

import (
	"context"

	"hotelledger/internal/reservations/validator"
	"hotelledger/pkg/config"
	apperrors "hotelledger/pkg/errors"
	"hotelledger/pkg/events"
	"hotelledger/pkg/model"
	"hotelledger/pkg/store"
	"hotelledger/pkg/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const resource = "Reservation"

// RoomManager is the part of the hotel registry the coordinator drives in
// sequential mode.
type RoomManager interface {
	ReserveRoom(ctx context.Context, hotelID string, room int) error
	CancelRoom(ctx context.Context, hotelID string, room int) error
}

type ReservationService interface {
	Create(ctx context.Context, r *model.Reservation) error
	Cancel(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int) ([]*model.Reservation, int64, error)
}

type reservationService struct {
	ledger    *store.Ledger
	rooms     RoomManager
	validator *validator.ReservationValidator
	publisher events.Publisher
	cfg       *config.Config
	tracer    trace.Tracer
}

func NewReservationService(
	ledger *store.Ledger,
	rooms RoomManager,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &reservationService{
		ledger:    ledger,
		rooms:     rooms,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		tracer:    otel.Tracer("hotelledger/internal/reservations"),
	}
}

func (s *reservationService) mode() string {
	if s.cfg.AtomicReservations() {
		return config.ReservationModeAtomic
	}
	return config.ReservationModeSequential
}

// Create checks the reservation id and both references, reserves every room
// in order and then writes the reservation record.
//
// In sequential mode each room is reserved through the hotel registry in its
// own ledger cycle. A failure at room k leaves rooms 1..k-1 reserved and no
// record written. In atomic mode all checks and mutations run in one cycle
// and a failure leaves the ledger untouched.
func (s *reservationService) Create(ctx context.Context, r *model.Reservation) (err error) {
	ctx, span := s.startSpan(ctx, "ReservationService.Create", r.ID)
	defer func() { endSpan(span, err) }()

	if r.Rooms == nil {
		r.Rooms = []int{}
	}
	if err := s.validator.Validate(r); err != nil {
		s.cfg.Log.Warn("Reservation validation failed",
			"id", r.ID,
			"error", err,
		)
		return validationError(err)
	}

	if s.cfg.AtomicReservations() {
		err = s.createAtomic(ctx, r)
	} else {
		err = s.createSequential(ctx, r)
	}
	if err != nil {
		s.cfg.Log.Warn("Failed to create reservation",
			"id", r.ID,
			"customer_id", r.CustomerID,
			"hotel_id", r.HotelID,
			"rooms", r.Rooms,
			"mode", s.mode(),
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", r.ID,
		"customer_id", r.CustomerID,
		"hotel_id", r.HotelID,
		"rooms", r.Rooms,
	)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.ReservationCreated(r))
	return nil
}

func (s *reservationService) createSequential(ctx context.Context, r *model.Reservation) error {
	err := s.ledger.View(ctx, func(snap *model.Snapshot) error {
		return checkReferences(snap, r)
	})
	if err != nil {
		return err
	}

	for i, room := range r.Rooms {
		if err := s.rooms.ReserveRoom(ctx, r.HotelID, room); err != nil {
			if i > 0 {
				s.cfg.Log.Warn("Reservation aborted with rooms left reserved",
					"id", r.ID,
					"hotel_id", r.HotelID,
					"rooms", r.Rooms[:i],
				)
			}
			return err
		}
	}

	return s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		rec := r.ReservationRecord.Clone()
		snap.Reservations[r.ID] = &rec
		return nil
	})
}

func (s *reservationService) createAtomic(ctx context.Context, r *model.Reservation) error {
	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		if err := checkReferences(snap, r); err != nil {
			return err
		}

		hotel := snap.Hotels[r.HotelID]
		staged := hotel.Clone()
		for _, room := range r.Rooms {
			if err := staged.ReserveRoom(r.HotelID, room); err != nil {
				return err
			}
		}

		*hotel = staged
		rec := r.ReservationRecord.Clone()
		snap.Reservations[r.ID] = &rec
		return nil
	})
	if err != nil {
		return err
	}

	for _, room := range r.Rooms {
		events.Emit(ctx, s.publisher, s.cfg.Log, events.RoomReserved(r.HotelID, room))
	}
	return nil
}

// Cancel frees every room of the reservation and then deletes its record.
// In sequential mode a room that is no longer reserved aborts the loop with
// NotReserved: rooms freed so far stay free and the record is kept.
func (s *reservationService) Cancel(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "ReservationService.Cancel", id)
	defer func() { endSpan(span, err) }()

	var reservation *model.Reservation
	if s.cfg.AtomicReservations() {
		reservation, err = s.cancelAtomic(ctx, id)
	} else {
		reservation, err = s.cancelSequential(ctx, id)
	}
	if err != nil {
		s.cfg.Log.Warn("Failed to cancel reservation",
			"id", id,
			"mode", s.mode(),
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Reservation cancelled successfully",
		"id", id,
		"hotel_id", reservation.HotelID,
		"rooms", reservation.Rooms,
	)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.ReservationCancelled(reservation))
	return nil
}

func (s *reservationService) cancelSequential(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, room := range reservation.Rooms {
		if err := s.rooms.CancelRoom(ctx, reservation.HotelID, room); err != nil {
			return nil, err
		}
	}

	err = s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		delete(snap.Reservations, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) cancelAtomic(ctx context.Context, id string) (*model.Reservation, error) {
	var reservation *model.Reservation
	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		rec, ok := snap.Reservations[id]
		if !ok {
			return apperrors.NotFoundWithID(resource, id)
		}
		hotel, ok := snap.Hotels[rec.HotelID]
		if !ok {
			return apperrors.NotFoundWithID("Hotel", rec.HotelID)
		}

		staged := hotel.Clone()
		for _, room := range rec.Rooms {
			if err := staged.ReleaseRoom(rec.HotelID, room); err != nil {
				return err
			}
		}

		*hotel = staged
		reservation = model.NewReservation(id, rec)
		delete(snap.Reservations, id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, room := range reservation.Rooms {
		events.Emit(ctx, s.publisher, s.cfg.Log, events.RoomReleased(reservation.HotelID, room))
	}
	return reservation, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	var reservation *model.Reservation
	err := s.ledger.View(ctx, func(snap *model.Snapshot) error {
		rec, ok := snap.Reservations[id]
		if !ok {
			return apperrors.NotFoundWithID(resource, id)
		}
		reservation = model.NewReservation(id, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context, limit int, offset int) ([]*model.Reservation, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var reservations []*model.Reservation
	var count int64
	err := s.ledger.View(ctx, func(snap *model.Snapshot) error {
		ids := model.SortedIDs(snap.Reservations)
		count = int64(len(ids))
		reservations = make([]*model.Reservation, 0, min(limit, len(ids)))
		for _, id := range model.Page(ids, limit, offset) {
			reservations = append(reservations, model.NewReservation(id, snap.Reservations[id]))
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations",
			"limit", limit,
			"offset", offset,
			"error", err,
		)
		return nil, 0, err
	}
	return reservations, count, nil
}

// checkReferences runs the create preconditions in their fixed order:
// duplicate id, unknown customer, unknown hotel.
func checkReferences(snap *model.Snapshot, r *model.Reservation) error {
	if _, exists := snap.Reservations[r.ID]; exists {
		return apperrors.DuplicateKey(resource, r.ID)
	}
	if _, ok := snap.Customers[r.CustomerID]; !ok {
		return apperrors.NotFoundWithID("Customer", r.CustomerID)
	}
	if _, ok := snap.Hotels[r.HotelID]; !ok {
		return apperrors.NotFoundWithID("Hotel", r.HotelID)
	}
	return nil
}

func (s *reservationService) startSpan(ctx context.Context, name, id string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("ledger.reservation.id", id),
			attribute.String("ledger.reservation.mode", s.mode()),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func validationError(err error) error {
	if errs, ok := err.(validation.ValidationErrors); ok {
		return apperrors.Validation("Reservation validation failed", errs.Details())
	}
	return apperrors.Validation("Reservation validation failed", map[string]any{
		"error": err.Error(),
	})
}
