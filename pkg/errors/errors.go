package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicateKey    = "DUPLICATE_KEY"
	CodeOutOfRange      = "OUT_OF_RANGE"
	CodeAlreadyReserved = "ALREADY_RESERVED"
	CodeNotReserved     = "NOT_RESERVED"
	CodeIOFailure       = "IO_FAILURE"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInternal        = "INTERNAL_ERROR"
	CodeTimeout         = "TIMEOUT"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s %s not found", resource, id),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func DuplicateKey(resource, id string) *AppError {
	return &AppError{
		Code:       CodeDuplicateKey,
		Message:    fmt.Sprintf("%s %s already exists", resource, id),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func OutOfRange(hotelID string, room, totalRooms int) *AppError {
	return &AppError{
		Code:       CodeOutOfRange,
		Message:    fmt.Sprintf("Room %d does not exist", room),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"hotel_id":    hotelID,
			"room":        room,
			"total_rooms": totalRooms,
		},
	}
}

func AlreadyReserved(hotelID string, room int) *AppError {
	return &AppError{
		Code:       CodeAlreadyReserved,
		Message:    fmt.Sprintf("Room %d is already reserved", room),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"hotel_id": hotelID,
			"room":     room,
		},
	}
}

func NotReserved(hotelID string, room int) *AppError {
	return &AppError{
		Code:       CodeNotReserved,
		Message:    fmt.Sprintf("Room %d is not reserved", room),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"hotel_id": hotelID,
			"room":     room,
		},
	}
}

// IOFailure reports an unreadable, unwritable or corrupt backing store.
func IOFailure(message string, err error) *AppError {
	return &AppError{
		Code:       CodeIOFailure,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
