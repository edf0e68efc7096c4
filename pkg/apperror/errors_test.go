package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	err := NewTransportError(errors.New("connection refused"))

	assert.True(t, IsKind(err, KindTransport))
	assert.False(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindTransport))

	// Kind survives wrapping.
	wrapped := fmt.Errorf("printing receipt: %w", err)
	assert.True(t, IsKind(wrapped, KindTransport))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("payments insert failed")
	err := NewPartialLedgerWriteError(cause)

	assert.True(t, errors.Is(err, cause))
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(NewValidationError("bad input"))
	assert.Equal(t, 422, appErr.Code)
	assert.Equal(t, KindValidation, appErr.Kind)

	// Plain errors map to internal.
	appErr = GetAppError(errors.New("boom"))
	assert.Equal(t, 500, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
}

func TestValidationErrorCarriesFieldErrors(t *testing.T) {
	err := NewValidationError("bad input", FieldError{Field: "allocations[0].amount", Message: "must be greater than zero"})

	assert.Len(t, err.Errors, 1)
	assert.Equal(t, "allocations[0].amount", err.Errors[0].Field)
}
