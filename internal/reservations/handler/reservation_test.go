package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	customerservice "hotelledger/internal/customers/service"
	customervalidator "hotelledger/internal/customers/validator"
	hotelservice "hotelledger/internal/hotels/service"
	hotelvalidator "hotelledger/internal/hotels/validator"
	"hotelledger/internal/reservations/service"
	"hotelledger/internal/reservations/validator"
	"hotelledger/pkg/config"
	"hotelledger/pkg/logger"
	"hotelledger/pkg/model"
	"hotelledger/pkg/store"

	"github.com/julienschmidt/httprouter"
)

type testEnv struct {
	router *httprouter.Router
	hotels hotelservice.HotelService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	cfg := &config.Config{Log: logger.Discard()}
	ledger := store.NewLedger(store.NewMemoryStore(), cfg.Log)

	customers := customerservice.NewCustomerService(ledger, customervalidator.NewCustomerValidator(), cfg)
	hotels := hotelservice.NewHotelService(ledger, hotelvalidator.NewHotelValidator(), nil, cfg)
	reservations := service.NewReservationService(ledger, hotels, validator.NewReservationValidator(), nil, cfg)

	if err := customers.Create(ctx, &model.Customer{ID: "C1", CustomerRecord: model.CustomerRecord{Name: "Alice", Email: "alice@x.com"}}); err != nil {
		t.Fatal(err)
	}
	if err := hotels.Create(ctx, &model.Hotel{ID: "H1", HotelRecord: model.HotelRecord{Name: "Grand", TotalRooms: 10}}); err != nil {
		t.Fatal(err)
	}

	router := httprouter.New()
	NewReservationHandler(reservations, cfg.Log).RegisterRoutes(router)
	return &testEnv{router: router, hotels: hotels}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) reservedRooms(t *testing.T) []int {
	t.Helper()
	hotel, err := e.hotels.GetByID(context.Background(), "H1")
	if err != nil {
		t.Fatal(err)
	}
	return hotel.ReservedRooms
}

func TestReservationHandler_CreateGetCancel(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/reservations",
		`{"id":"R1","customer_id":"C1","hotel_id":"H1","rooms":[1,2],"check_in":"2025-01-01","check_out":"2025-01-03"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	if got := env.reservedRooms(t); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("reserved rooms = %v, want [1 2]", got)
	}

	rec = env.do(http.MethodGet, "/api/v1/reservations/R1", "")
	var body struct {
		Data model.Reservation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.CheckIn != "2025-01-01" || !slices.Equal(body.Data.Rooms, []int{1, 2}) {
		t.Errorf("unexpected reservation %+v", body.Data)
	}

	if rec := env.do(http.MethodDelete, "/api/v1/reservations/R1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("cancel: %d %s", rec.Code, rec.Body.String())
	}
	if got := env.reservedRooms(t); len(got) != 0 {
		t.Errorf("reserved rooms after cancel = %v", got)
	}
	if rec := env.do(http.MethodGet, "/api/v1/reservations/R1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after cancel: status = %d", rec.Code)
	}
	if rec := env.do(http.MethodDelete, "/api/v1/reservations/R1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("cancel again: status = %d", rec.Code)
	}
}

func TestReservationHandler_CreateFailures(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{"unknown customer", `{"id":"R1","customer_id":"C9","hotel_id":"H1","rooms":[1]}`, http.StatusNotFound, "Customer"},
		{"unknown hotel", `{"id":"R1","customer_id":"C1","hotel_id":"H9","rooms":[1]}`, http.StatusNotFound, "Hotel"},
		{"room out of range", `{"id":"R1","customer_id":"C1","hotel_id":"H1","rooms":[1,2,99]}`, http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
		{"rooms not a list", `{"id":"R1","customer_id":"C1","hotel_id":"H1","rooms":"1"}`, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/v1/reservations", tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %s does not mention %s", rec.Body.String(), tt.wantBody)
			}
		})
	}

	// sequential mode keeps the rooms reserved before the failing one
	if got := env.reservedRooms(t); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("reserved rooms = %v, want [1 2]", got)
	}
	if rec := env.do(http.MethodGet, "/api/v1/reservations", ""); !strings.Contains(rec.Body.String(), `"total_count":0`) {
		t.Errorf("expected no reservation records, got %s", rec.Body.String())
	}
}
