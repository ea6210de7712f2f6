package service

import (
	"context"

	"hotelledger/internal/customers/validator"
	"hotelledger/pkg/config"
	apperrors "hotelledger/pkg/errors"
	"hotelledger/pkg/model"
	"hotelledger/pkg/store"
	"hotelledger/pkg/validation"
)

const resource = "Customer"

type CustomerService interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	GetAll(ctx context.Context, limit int, offset int) ([]*model.Customer, int64, error)
	Update(ctx context.Context, id string, updates *model.CustomerUpdate) error
	Delete(ctx context.Context, id string) error
}

type customerService struct {
	ledger    *store.Ledger
	validator *validator.CustomerValidator
	cfg       *config.Config
}

func NewCustomerService(
	ledger *store.Ledger,
	validator *validator.CustomerValidator,
	cfg *config.Config,
) CustomerService {
	return &customerService{
		ledger:    ledger,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *customerService) Create(ctx context.Context, c *model.Customer) error {
	if err := s.validator.Validate(c); err != nil {
		s.cfg.Log.Warn("Customer validation failed",
			"id", c.ID,
			"error", err,
		)
		return validationError(err)
	}

	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		if _, exists := snap.Customers[c.ID]; exists {
			return apperrors.DuplicateKey(resource, c.ID)
		}
		rec := c.CustomerRecord
		snap.Customers[c.ID] = &rec
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to create customer",
			"id", c.ID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Customer created successfully",
		"id", c.ID,
		"name", c.Name,
	)
	return nil
}

func (s *customerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer *model.Customer
	err := s.ledger.View(ctx, func(snap *model.Snapshot) error {
		rec, ok := snap.Customers[id]
		if !ok {
			return apperrors.NotFoundWithID(resource, id)
		}
		customer = model.NewCustomer(id, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetAll(ctx context.Context, limit int, offset int) ([]*model.Customer, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var customers []*model.Customer
	var count int64
	err := s.ledger.View(ctx, func(snap *model.Snapshot) error {
		ids := model.SortedIDs(snap.Customers)
		count = int64(len(ids))
		customers = make([]*model.Customer, 0, min(limit, len(ids)))
		for _, id := range model.Page(ids, limit, offset) {
			customers = append(customers, model.NewCustomer(id, snap.Customers[id]))
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to list customers",
			"limit", limit,
			"offset", offset,
			"error", err,
		)
		return nil, 0, err
	}
	return customers, count, nil
}

func (s *customerService) Update(ctx context.Context, id string, updates *model.CustomerUpdate) error {
	var merged model.CustomerRecord
	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		existing, ok := snap.Customers[id]
		if !ok {
			return apperrors.NotFoundWithID(resource, id)
		}
		merged = mergeCustomerUpdates(existing, updates)
		snap.Customers[id] = &merged
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to update customer",
			"id", id,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Customer updated successfully",
		"id", id,
		"name", merged.Name,
	)
	return nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	err := s.ledger.Update(ctx, func(snap *model.Snapshot) error {
		if _, ok := snap.Customers[id]; !ok {
			return apperrors.NotFoundWithID(resource, id)
		}
		delete(snap.Customers, id)
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to delete customer",
			"id", id,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Customer deleted successfully", "id", id)
	return nil
}

// mergeCustomerUpdates overwrites only the non-empty fields of updates.
func mergeCustomerUpdates(existing *model.CustomerRecord, updates *model.CustomerUpdate) model.CustomerRecord {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Email != "" {
		merged.Email = updates.Email
	}

	return merged
}

func validationError(err error) error {
	if errs, ok := err.(validation.ValidationErrors); ok {
		return apperrors.Validation("Customer validation failed", errs.Details())
	}
	return apperrors.Validation("Customer validation failed", map[string]any{
		"error": err.Error(),
	})
}
