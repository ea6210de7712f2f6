package service

import (
	"context"

	"hotelledger/internal/hotels/validator"
	"hotelledger/pkg/config"
	apperrors "hotelledger/pkg/errors"
	"hotelledger/pkg/events"
	"hotelledger/pkg/model"
	"hotelledger/pkg/store"
	"hotelledger/pkg/validation"
)

const resource = "Hotel"

type HotelService interface {
	Create(ctx context.Context, h *model.Hotel) error
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	GetAll(ctx context.Context, limit int, offset int) ([]*model.Hotel, int64, error)
	Update(ctx context.Context, id string, updates *model.HotelUpdate) error
	Delete(ctx context.Context, id string) error

	ReserveRoom(ctx context.Context, hotelID string, room int) error
	CancelRoom(ctx context.Context, hotelID string, room int) error
}

type hotelService struct {
	ledger    *store.Ledger
	validator *validator.HotelValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewHotelService(
	ledger *store.Ledger,
	validator *validator.HotelValidator,
	publisher events.Publisher,
	cfg *config.Config,
) HotelService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &hotelService{
		ledger:    ledger,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create stores a hotel with no reserved rooms. total_rooms is taken as given.
func (s *hotelService) Create(ctx context.Context, h *model.Hotel) error {
	if err := s.validator.Validate(h); err != nil {
		s.cfg.Log.Warn("Hotel validation failed",
			"id", h.ID,
			"error", err,
		)
		return validationError(err)
	}

	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		if _, exists := snap.Hotels[h.ID]; exists {
			return apperrors.DuplicateKey(resource, h.ID)
		}
		snap.Hotels[h.ID] = &model.HotelRecord{
			Name:          h.Name,
			TotalRooms:    h.TotalRooms,
			ReservedRooms: []int{},
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to create hotel",
			"id", h.ID,
			"error", err,
		)
		return err
	}
	h.ReservedRooms = []int{}

	s.cfg.Log.Info("Hotel created successfully",
		"id", h.ID,
		"name", h.Name,
		"total_rooms", h.TotalRooms,
	)
	return nil
}

func (s *hotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	var hotel *model.Hotel
	err := s.ledger.View(ctx, func(snap *model.Snapshot) error {
		rec, ok := snap.Hotels[id]
		if !ok {
			return apperrors.NotFoundWithID(resource, id)
		}
		hotel = model.NewHotel(id, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *hotelService) GetAll(ctx context.Context, limit int, offset int) ([]*model.Hotel, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var hotels []*model.Hotel
	var count int64
	err := s.ledger.View(ctx, func(snap *model.Snapshot) error {
		ids := model.SortedIDs(snap.Hotels)
		count = int64(len(ids))
		hotels = make([]*model.Hotel, 0, min(limit, len(ids)))
		for _, id := range model.Page(ids, limit, offset) {
			hotels = append(hotels, model.NewHotel(id, snap.Hotels[id]))
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to list hotels",
			"limit", limit,
			"offset", offset,
			"error", err,
		)
		return nil, 0, err
	}
	return hotels, count, nil
}

// Update overwrites the non-empty fields of updates. Shrinking total_rooms
// below a reserved room is allowed; the stranded rooms stay reserved and are
// reported in a warning.
func (s *hotelService) Update(ctx context.Context, id string, updates *model.HotelUpdate) error {
	var merged model.HotelRecord
	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		existing, ok := snap.Hotels[id]
		if !ok {
			return apperrors.NotFoundWithID(resource, id)
		}
		merged = mergeHotelUpdates(existing, updates)
		snap.Hotels[id] = &merged
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to update hotel",
			"id", id,
			"error", err,
		)
		return err
	}

	if stranded := merged.RoomsOutOfRange(); len(stranded) > 0 {
		s.cfg.Log.Warn("Hotel has reserved rooms outside its room count",
			"id", id,
			"total_rooms", merged.TotalRooms,
			"rooms", stranded,
		)
	}

	s.cfg.Log.Info("Hotel updated successfully",
		"id", id,
		"name", merged.Name,
		"total_rooms", merged.TotalRooms,
	)
	return nil
}

func (s *hotelService) Delete(ctx context.Context, id string) error {
	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		if _, ok := snap.Hotels[id]; !ok {
			return apperrors.NotFoundWithID(resource, id)
		}
		delete(snap.Hotels, id)
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to delete hotel",
			"id", id,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Hotel deleted successfully", "id", id)
	return nil
}

func (s *hotelService) ReserveRoom(ctx context.Context, hotelID string, room int) error {
	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		hotel, ok := snap.Hotels[hotelID]
		if !ok {
			return apperrors.NotFoundWithID(resource, hotelID)
		}
		return hotel.ReserveRoom(hotelID, room)
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to reserve room",
			"hotel_id", hotelID,
			"room", room,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Room reserved",
		"hotel_id", hotelID,
		"room", room,
	)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.RoomReserved(hotelID, room))
	return nil
}

func (s *hotelService) CancelRoom(ctx context.Context, hotelID string, room int) error {
	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		hotel, ok := snap.Hotels[hotelID]
		if !ok {
			return apperrors.NotFoundWithID(resource, hotelID)
		}
		return hotel.ReleaseRoom(hotelID, room)
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to cancel room",
			"hotel_id", hotelID,
			"room", room,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Room released",
		"hotel_id", hotelID,
		"room", room,
	)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.RoomReleased(hotelID, room))
	return nil
}

func mergeHotelUpdates(existing *model.HotelRecord, updates *model.HotelUpdate) model.HotelRecord {
	merged := existing.Clone()

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.TotalRooms != 0 {
		merged.TotalRooms = updates.TotalRooms
	}

	return merged
}

func validationError(err error) error {
	if errs, ok := err.(validation.ValidationErrors); ok {
		return apperrors.Validation("Hotel validation failed", errs.Details())
	}
	return apperrors.Validation("Hotel validation failed", map[string]any{
		"error": err.Error(),
	})
}
