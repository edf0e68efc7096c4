package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error for callers that need to branch on
// failure class rather than HTTP status (the settlement pipeline does: a
// transport failure after a durable ledger write must offer a reprint, never
// a re-settlement).
type Kind string

const (
	KindValidation         Kind = "validation"
	KindSequenceGeneration Kind = "sequence_generation"
	KindPartialLedgerWrite Kind = "partial_ledger_write"
	KindTransport          Kind = "transport"
	KindConflict           Kind = "conflict"
	KindNotFound           Kind = "not_found"
	KindInternal           Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	wrapped error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.wrapped
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error. Recoverable locally: the
// operator corrects the input and resubmits.
func NewValidationError(message string, fieldErrors ...FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewSequenceGenerationError wraps a failed receipt-number issuance. Nothing
// has been persisted at this point, so the settlement is safe to retry.
func NewSequenceGenerationError(err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindSequenceGeneration,
		Message: "Failed to issue receipt number",
		wrapped: err,
	}
}

// NewPartialLedgerWriteError wraps a ledger failure after the transaction
// header write began. The store rolls the batch back where it can, but the
// failure is surfaced as fatal and must be logged with the transaction ID
// for operator reconciliation, never retried automatically.
func NewPartialLedgerWriteError(err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindPartialLedgerWrite,
		Message: "Settlement could not be fully recorded",
		wrapped: err,
	}
}

// NewTransportError wraps a printer delivery failure. The ledger write has
// already succeeded when this occurs; present it as "payment recorded, print
// failed" and offer a reprint.
func NewTransportError(err error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindTransport,
		Message: "Receipt could not be printed",
		wrapped: err,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
