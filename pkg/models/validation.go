package models

import (
	apperrors "go-menu-gallery/internal/errors"
)

// ValidationResult reports the outcome of a validation check.
// Error is empty when Valid is true.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Valid is the passing result
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid builds a failing result carrying a human-readable reason
func Invalid(reason string) ValidationResult {
	return ValidationResult{Valid: false, Error: reason}
}

// Err converts a failing result into a validation AppError, or nil when valid
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return apperrors.NewValidationError(r.Error, nil)
}
