package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to persist booking", cause)

	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.StatusCode())
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	want := "INTERNAL_ERROR: Failed to persist booking (caused by: connection refused)"
	if err.Error() != want {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestConstructorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
		want int
	}{
		{"not found", NotFound("Facility"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad input", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("missing id"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("slot taken"), CodeConflict, http.StatusConflict},
		{"unauthorized", Unauthorized("bad credentials"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("admin only"), CodeForbidden, http.StatusForbidden},
		{"unavailable", Unavailable("billing"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, tt.err.StatusCode())
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("time slot is already booked")
	if AsAppError(appErr) != appErr {
		t.Error("expected AsAppError to return the same AppError")
	}

	plain := errors.New("boom")
	converted := AsAppError(plain)
	if converted.Code != CodeInternal {
		t.Errorf("expected plain errors to convert to internal, got %s", converted.Code)
	}
	if !errors.Is(converted, plain) {
		t.Error("expected original error to be wrapped")
	}
}

func TestNotFoundWithIDDetails(t *testing.T) {
	err := NotFoundWithID("Bill", "bill_42")
	if err.Details["resource"] != "Bill" || err.Details["id"] != "bill_42" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}
