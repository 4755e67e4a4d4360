// Package apperror provides structured error handling for the invoicing API.
// Every failure that leaves a core operation is an AppError of one of three
// kinds: validation (400), not found (404) or internal (500).
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"

	// Validation errors (400)
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidInvoiceType = "INVALID_INVOICE_TYPE"
	CodeInvalidPointOfSale = "INVALID_POINT_OF_SALE"
	CodeMissingItems       = "MISSING_ITEMS"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// Kind groups codes into the three failure classes surfaced to callers.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
)

// AppError is the standard error type for the service.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field, value, ...)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Kind reports which failure class the error belongs to.
func (e *AppError) Kind() Kind {
	switch e.HTTPStatus {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindInternal
	}
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a generic validation error (400)
func NewValidation(message string) *AppError {
	return newBadRequest(CodeValidation, message)
}

// NewInvalidInput creates an error for malformed field values (400)
func NewInvalidInput(message string) *AppError {
	return newBadRequest(CodeInvalidInput, message)
}

// NewInvalidInvoiceType is returned when the invoice type is not A or B.
func NewInvalidInvoiceType(value string) *AppError {
	return newBadRequest(CodeInvalidInvoiceType, "invalid invoice type, must be A or B").
		WithDetail("value", value)
}

// NewInvalidPointOfSale is returned for a point of sale outside the registry.
func NewInvalidPointOfSale(value int) *AppError {
	return newBadRequest(CodeInvalidPointOfSale, "invalid point of sale").
		WithDetail("value", value)
}

// NewMissingItems is returned when an invoice carries no line items.
func NewMissingItems() *AppError {
	return newBadRequest(CodeMissingItems, "invoice must include at least one item")
}

func newBadRequest(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Classify wraps any error into an AppError; unknown errors become internal.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return NewInternal(err)
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsValidation checks if error belongs to the validation class.
func IsValidation(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind() == KindValidation
	}
	return false
}

// HasCode checks whether err carries the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
