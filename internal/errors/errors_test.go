package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad", nil), ErrorTypeValidation, http.StatusBadRequest},
		{"network", NewNetworkError("down", nil), ErrorTypeNetwork, http.StatusBadGateway},
		{"timeout", NewTimeoutError("slow", nil), ErrorTypeTimeout, http.StatusGatewayTimeout},
		{"not found", NewNotFoundError("gone", nil), ErrorTypeNotFound, http.StatusNotFound},
		{"unavailable", NewUnavailableError("offline", nil), ErrorTypeUnavailable, http.StatusServiceUnavailable},
		{"internal", NewInternalError("boom", nil), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("Expected type %s, got %s", tt.wantType, tt.err.Type)
			}
			if tt.err.StatusCode != tt.wantCode {
				t.Errorf("Expected status %d, got %d", tt.wantCode, tt.err.StatusCode)
			}
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := NewValidationError("duplicate order values", nil)
	if err.Error() != "validation: duplicate order values" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}

	cause := errors.New("connection refused")
	err = NewUnavailableError("store unreachable", cause)
	if err.Error() != "unavailable: store unreachable (caused by: connection refused)" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}
}

func TestGetStatusCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("saving set: %w", NewNotFoundError("circle not found", nil))
	if code := GetStatusCode(wrapped); code != http.StatusNotFound {
		t.Errorf("Expected 404 for wrapped AppError, got %d", code)
	}
	if !IsType(wrapped, ErrorTypeNotFound) {
		t.Error("Expected IsType to see through wrapping")
	}
	if code := GetStatusCode(errors.New("plain")); code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for plain error, got %d", code)
	}
}
