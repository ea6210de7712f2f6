package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "hotelledger/pkg/errors"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", apperrors.NotFoundWithID("Hotel", "H1"), http.StatusNotFound, apperrors.CodeNotFound},
		{"duplicate", apperrors.DuplicateKey("Customer", "C1"), http.StatusConflict, apperrors.CodeDuplicateKey},
		{"already reserved", apperrors.AlreadyReserved("H1", 2), http.StatusConflict, apperrors.CodeAlreadyReserved},
		{"not reserved", apperrors.NotReserved("H1", 2), http.StatusConflict, apperrors.CodeNotReserved},
		{"out of range", apperrors.OutOfRange("H1", 99, 10), http.StatusUnprocessableEntity, apperrors.CodeOutOfRange},
		{"validation", apperrors.Validation("bad", nil), http.StatusUnprocessableEntity, apperrors.CodeValidation},
		{"invalid input", apperrors.InvalidInput("bad"), http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"io failure", apperrors.IOFailure("disk", errors.New("EIO")), http.StatusServiceUnavailable, apperrors.CodeIOFailure},
		{"plain error", errors.New("secret detail"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %s, want %s", body.Code, tt.code)
			}
			if strings.Contains(rec.Body.String(), "secret detail") {
				t.Error("internal error text leaked to the client")
			}
		})
	}
}

func TestExtractLimitOffset(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/hotels?limit=500&offset=-4", nil)
	limit, offset, err := ExtractLimitOffset(r)
	if err != nil {
		t.Fatal(err)
	}
	if limit != 100 || offset != 0 {
		t.Errorf("limit=%d offset=%d, want 100 and 0", limit, offset)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/hotels?limit=ten", nil)
	if _, _, err := ExtractLimitOffset(r); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Grand"}`, false},
		{"empty", ``, true},
		{"unknown field", `{"nme":"Grand"}`, true},
		{"two objects", `{"name":"a"}{"name":"b"}`, true},
		{"malformed", `{"name":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := DecodeJSON(r, &v)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
