package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents a category of client-side error.
type ErrorCode string

const (
	// ErrCodeUnauthorized indicates the backend rejected the ambient credential (HTTP 401).
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeNotFound indicates the backend reported a missing resource.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input, either caught locally or reported by the backend.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates a backend failure (5xx) or an unexpected payload.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTransport indicates no response was received at all.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// HTTPError is a non-2xx response from the backend.
// Title carries the server-supplied human-readable message, when one was present.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Title  string
	Body   []byte
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	if e.Title != "" {
		msg += ": " + e.Title
	}
	return msg
}

// Code maps the status onto the error taxonomy.
func (e *HTTPError) Code() ErrorCode {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case e.Status == http.StatusNotFound:
		return ErrCodeNotFound
	case e.Status == http.StatusRequestTimeout || e.Status == http.StatusGatewayTimeout:
		return ErrCodeTimeout
	case e.Status >= 400 && e.Status < 500:
		return ErrCodeValidation
	default:
		return ErrCodeInternal
	}
}

// TransportError means the request never produced a response.
type TransportError struct {
	Method string
	Path   string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport failure: %v", e.Method, e.Path, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// StatusOf returns the HTTP status carried by err, or 0 when err is not an HTTP-level failure.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// TitleOf returns the server-supplied message carried by err, or "".
func TitleOf(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return strings.TrimSpace(httpErr.Title)
	}
	return ""
}

// GetCode returns the ErrorCode from an error, or empty string when it carries none.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code()
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return ErrCodeTransport
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// IsUnauthorized checks if an error is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsTransport checks if an error is a transport failure.
func IsTransport(err error) bool {
	return GetCode(err) == ErrCodeTransport
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return GetCode(err) == ErrCodeValidation
}

// IsUserActionable is true for titled 4xx responses and local validation errors:
// the message is meant for the user and the failure is not exceptional.
func IsUserActionable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrCodeValidation {
		return true
	}
	status := StatusOf(err)
	return status >= 400 && status < 500 && TitleOf(err) != ""
}

// DisplayMessage picks the text a user should see for err.
// Only server-supplied titles and local validation messages are shown; everything else gets fallback.
func DisplayMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if title := TitleOf(err); title != "" {
		return title
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrCodeValidation && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
