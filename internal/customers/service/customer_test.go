package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hotelledger/internal/customers/validator"
	"hotelledger/pkg/config"
	apperrors "hotelledger/pkg/errors"
	"hotelledger/pkg/logger"
	"hotelledger/pkg/model"
	"hotelledger/pkg/store"
)

// ────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────

type brokenStore struct{}

func (brokenStore) Load(ctx context.Context) (*model.Snapshot, error) {
	return nil, errors.New("disk unreadable")
}

func (brokenStore) Save(ctx context.Context, s *model.Snapshot) error {
	return errors.New("disk unwritable")
}

func newTestService(t *testing.T) (CustomerService, *store.Ledger) {
	t.Helper()
	cfg := &config.Config{Log: logger.Discard()}
	ledger := store.NewLedger(store.NewMemoryStore(), cfg.Log)
	return NewCustomerService(ledger, validator.NewCustomerValidator(), cfg), ledger
}

func alice() *model.Customer {
	return model.NewCustomer("C1", &model.CustomerRecord{Name: "Alice", Email: "alice@x.com"})
}

// ────────────────────────────────────────────────
// Create / GetByID
// ────────────────────────────────────────────────

func TestCreate_ThenGetReturnsSameFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, alice()); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(ctx, "C1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "C1" || got.Name != "Alice" || got.Email != "alice@x.com" {
		t.Errorf("unexpected customer %+v", got)
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, alice()); err != nil {
		t.Fatal(err)
	}
	second := model.NewCustomer("C1", &model.CustomerRecord{Name: "Bob"})
	if err := svc.Create(ctx, second); !apperrors.HasCode(err, apperrors.CodeDuplicateKey) {
		t.Fatalf("expected DUPLICATE_KEY, got %v", err)
	}

	got, err := svc.GetByID(ctx, "C1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Alice" {
		t.Errorf("duplicate create must not overwrite, got %q", got.Name)
	}
}

func TestCreate_StoresFieldsVerbatim(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c := model.NewCustomer("C1", &model.CustomerRecord{Name: "Alice  Smith", Email: "Alice@X.com"})
	if err := svc.Create(ctx, c); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetByID(ctx, "C1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Alice  Smith" || got.Email != "Alice@X.com" {
		t.Errorf("fields were rewritten: name=%q email=%q", got.Name, got.Email)
	}
}

func TestCreate_IDsAreExactKeys(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	ids := []string{"C1", " C1", "", strings.Repeat("c", 65)}
	for _, id := range ids {
		if err := svc.Create(ctx, model.NewCustomer(id, &model.CustomerRecord{Name: "n"})); err != nil {
			t.Fatalf("create %q: %v", id, err)
		}
	}

	snap, err := ledger.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Customers) != len(ids) {
		t.Errorf("expected %d distinct customers, got %d", len(ids), len(snap.Customers))
	}
	if _, err := svc.GetByID(ctx, " C1"); err != nil {
		t.Errorf("padded id should resolve to its own record: %v", err)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	err := svc.Create(ctx, model.NewCustomer("C/1", &model.CustomerRecord{Name: "Nobody"}))
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	snap, err := ledger.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Customers) != 0 {
		t.Errorf("invalid customer must not be stored: %+v", snap.Customers)
	}
}

func TestGetByID_ReturnsDetachedCopy(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, alice()); err != nil {
		t.Fatal(err)
	}
	first, err := svc.GetByID(ctx, "C1")
	if err != nil {
		t.Fatal(err)
	}
	first.Name = "Mallory"

	second, err := svc.GetByID(ctx, "C1")
	if err != nil {
		t.Fatal(err)
	}
	if second.Name != "Alice" {
		t.Error("mutating a returned customer leaked into the ledger")
	}
}

func TestGetByID_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, "missing"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if _, err := svc.GetByID(ctx, "  "); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND for an unknown blank id, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────

func TestUpdate_OverwritesOnlyNonEmptyFields(t *testing.T) {
	tests := []struct {
		name      string
		updates   *model.CustomerUpdate
		wantName  string
		wantEmail string
	}{
		{"name only", &model.CustomerUpdate{Name: "Alice (modified)"}, "Alice (modified)", "alice@x.com"},
		{"email only", &model.CustomerUpdate{Email: "a@y.org"}, "Alice", "a@y.org"},
		{"both", &model.CustomerUpdate{Name: "Al", Email: "al@z.io"}, "Al", "al@z.io"},
		{"empty is a no-op", &model.CustomerUpdate{}, "Alice", "alice@x.com"},
		{"whitespace overwrites", &model.CustomerUpdate{Name: " ", Email: "\t"}, " ", "\t"},
		{"kept verbatim", &model.CustomerUpdate{Name: "  Bob  Jr ", Email: "Bob@Y.ORG"}, "  Bob  Jr ", "Bob@Y.ORG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			ctx := context.Background()
			if err := svc.Create(ctx, alice()); err != nil {
				t.Fatal(err)
			}

			if err := svc.Update(ctx, "C1", tt.updates); err != nil {
				t.Fatalf("update: %v", err)
			}

			got, err := svc.GetByID(ctx, "C1")
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != tt.wantName || got.Email != tt.wantEmail {
				t.Errorf("got {%s, %s}, want {%s, %s}", got.Name, got.Email, tt.wantName, tt.wantEmail)
			}
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Update(context.Background(), "C9", &model.CustomerUpdate{Name: "Ghost"})
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdate_EmailNeedNotBeUnique(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, alice()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(ctx, model.NewCustomer("C2", &model.CustomerRecord{Name: "Bob"})); err != nil {
		t.Fatal(err)
	}
	if err := svc.Update(ctx, "C2", &model.CustomerUpdate{Email: "alice@x.com"}); err != nil {
		t.Errorf("shared emails are allowed, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Delete / GetAll
// ────────────────────────────────────────────────

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, alice()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "C1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, "C1"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("deleted customer still readable: %v", err)
	}
	if err := svc.Delete(ctx, "C1"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("second delete should fail with NOT_FOUND, got %v", err)
	}
}

func TestGetAll_SortedAndPaged(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"C12", "C03", "C07", "C01", "C10", "C05", "C09", "C02", "C11", "C04", "C06", "C08"} {
		if err := svc.Create(ctx, model.NewCustomer(id, &model.CustomerRecord{Name: id})); err != nil {
			t.Fatal(err)
		}
	}

	first, count, err := svc.GetAll(ctx, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if count != 12 || len(first) != 10 {
		t.Fatalf("count=%d len=%d, want 12 and 10", count, len(first))
	}
	if first[0].ID != "C01" || first[9].ID != "C10" {
		t.Errorf("expected id order, got %s..%s", first[0].ID, first[9].ID)
	}

	rest, _, err := svc.GetAll(ctx, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 2 || rest[1].ID != "C12" {
		t.Errorf("unexpected second page %v", rest)
	}
}

func TestOperations_StoreFailureIsIOFailure(t *testing.T) {
	cfg := &config.Config{Log: logger.Discard()}
	svc := NewCustomerService(store.NewLedger(brokenStore{}, cfg.Log), validator.NewCustomerValidator(), cfg)
	ctx := context.Background()

	if err := svc.Create(ctx, alice()); !apperrors.HasCode(err, apperrors.CodeIOFailure) {
		t.Errorf("Create: expected IO_FAILURE, got %v", err)
	}
	if _, err := svc.GetByID(ctx, "C1"); !apperrors.HasCode(err, apperrors.CodeIOFailure) {
		t.Errorf("GetByID: expected IO_FAILURE, got %v", err)
	}
	if _, _, err := svc.GetAll(ctx, 10, 0); !apperrors.HasCode(err, apperrors.CodeIOFailure) {
		t.Errorf("GetAll: expected IO_FAILURE, got %v", err)
	}
}
