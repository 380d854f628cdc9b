package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrNotFound         = NewNotFoundError("resource", "resource not found")
	ErrNotAuthenticated = NewNotAuthenticatedError("authentication required")
	ErrInternal         = NewInternalError("internal server error", nil)
)

// HTTPStatuser interface for errors that map to an HTTP status and code
type HTTPStatuser interface {
	HTTPStatus() int
	Code() string
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code returns the machine-readable error code
func (e *ValidationError) Code() string {
	return "VALIDATION_ERROR"
}

// AlreadyExistsError represents a resource already exists error
type AlreadyExistsError struct {
	Resource string
	Message  string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *AlreadyExistsError) HTTPStatus() int {
	return http.StatusConflict
}

// Code returns the machine-readable error code
func (e *AlreadyExistsError) Code() string {
	return "ALREADY_EXISTS"
}

// InvalidCredentialsError represents a failed login attempt.
// The message is identical whether the email is unknown or the password
// is wrong, so callers cannot enumerate registered users.
type InvalidCredentialsError struct{}

// NewInvalidCredentialsError creates a new invalid credentials error
func NewInvalidCredentialsError() *InvalidCredentialsError {
	return &InvalidCredentialsError{}
}

// Error implements the error interface
func (e *InvalidCredentialsError) Error() string {
	return "invalid credentials"
}

// HTTPStatus returns the HTTP status for this error
func (e *InvalidCredentialsError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// Code returns the machine-readable error code
func (e *InvalidCredentialsError) Code() string {
	return "INVALID_CREDENTIALS"
}

// NotAuthenticatedError represents a request without a valid session
type NotAuthenticatedError struct {
	Message string
}

// NewNotAuthenticatedError creates a new not authenticated error
func NewNotAuthenticatedError(message string) *NotAuthenticatedError {
	return &NotAuthenticatedError{Message: message}
}

// Error implements the error interface
func (e *NotAuthenticatedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "not authenticated"
}

// HTTPStatus returns the HTTP status for this error
func (e *NotAuthenticatedError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// Code returns the machine-readable error code
func (e *NotAuthenticatedError) Code() string {
	return "NOT_AUTHENTICATED"
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// Code returns the machine-readable error code
func (e *NotFoundError) Code() string {
	return "NOT_FOUND"
}

// StoreError represents an underlying read/write failure in the record store
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError creates a new store error
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s failed", e.Op)
}

// Unwrap returns the wrapped error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *StoreError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code returns the machine-readable error code
func (e *StoreError) Code() string {
	return "STORE_ERROR"
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code returns the machine-readable error code
func (e *InternalError) Code() string {
	return "INTERNAL_ERROR"
}

// HTTPStatus resolves the HTTP status for any error, defaulting to 500.
func HTTPStatus(err error) int {
	var hs HTTPStatuser
	if errors.As(err, &hs) {
		return hs.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// Code resolves the machine-readable code for any error.
func Code(err error) string {
	var hs HTTPStatuser
	if errors.As(err, &hs) {
		return hs.Code()
	}
	return "INTERNAL_ERROR"
}
