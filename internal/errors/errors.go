// Package errors provides the application error taxonomy.
// Service-layer failures are returned as *AppError so handlers can map them
// to responses without leaking storage details to clients.
package errors

import (
	"net/http"
	"sort"
)

// FieldErrors maps a form field name to its validation messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Has reports whether field has at least one message.
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// Fields returns the names of the fields carrying errors, sorted.
func (f FieldErrors) Fields() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field errors and an
// optional internal error.
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Fields     FieldErrors `json:"fields,omitempty"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code, so wrapped copies of a sentinel compare equal to it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// InternalMessage returns the wrapped error's message, or Message when there is none.
func (e *AppError) InternalMessage() string {
	if e.Internal != nil {
		return e.Internal.Error()
	}
	return e.Message
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying field-level validation messages.
func WithFields(sentinel *AppError, fields FieldErrors) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidation     = &AppError{Code: "VALIDATION_FAILED", Message: "Submitted values are invalid", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Constraint errors.
var (
	ErrDuplicateName    = &AppError{Code: "DUPLICATE_NAME", Message: "An entry with this name already exists", StatusCode: http.StatusBadRequest}
	ErrInvalidReference = &AppError{Code: "INVALID_REFERENCE", Message: "Referenced entry does not exist", StatusCode: http.StatusBadRequest}
)

// Lookup errors.
var (
	ErrStatusNotFound      = &AppError{Code: "STATUS_NOT_FOUND", Message: "Status not found", StatusCode: http.StatusNotFound}
	ErrStatusInUse         = &AppError{Code: "STATUS_IN_USE", Message: "Status is used by existing records", StatusCode: http.StatusConflict}
	ErrTypeNotFound        = &AppError{Code: "TYPE_NOT_FOUND", Message: "Type not found", StatusCode: http.StatusNotFound}
	ErrTypeInUse           = &AppError{Code: "TYPE_IN_USE", Message: "Type is used by existing records", StatusCode: http.StatusConflict}
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse       = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing records", StatusCode: http.StatusConflict}
	ErrSubcategoryNotFound = &AppError{Code: "SUBCATEGORY_NOT_FOUND", Message: "Subcategory not found", StatusCode: http.StatusNotFound}
	ErrSubcategoryInUse    = &AppError{Code: "SUBCATEGORY_IN_USE", Message: "Subcategory is used by existing records", StatusCode: http.StatusConflict}
)

// Record errors.
var (
	ErrRecordNotFound = &AppError{Code: "RECORD_NOT_FOUND", Message: "Record not found", StatusCode: http.StatusNotFound}
)
