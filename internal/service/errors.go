package service

import (
	"errors"
	"fmt"

	"github.com/qutha/yamdb-final/internal/dto"
)

// ErrNotFound is returned when a referenced id, slug or username does not
// exist. Handlers map it to 404.
var ErrNotFound = errors.New("resource not found")

// ValidationError carries field-scoped messages for malformed, duplicate
// or out-of-range input. Handlers map it to 400.
type ValidationError struct {
	Fields dto.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: dto.NewFieldErrors(field, message)}
}

// AsValidationError extracts a *ValidationError from err, nil otherwise.
func AsValidationError(err error) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}
