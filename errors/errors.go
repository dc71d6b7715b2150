// Package errors provides the unified error type used across the adapter.
// Every failure a scan can hit is an *AppError carrying a machine-readable
// code and the context (url, object, option) needed to report it.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the upstream HTTP status, when one was received.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Scan error constructors ---

// MissingCredential creates an AppError for an adapter built without the named credential option.
func MissingCredential(option string) *AppError {
	return &AppError{
		Code: ErrCodeMissingCredential, Message: fmt.Sprintf("Missing required credential option %q.", option),
		Details: map[string]any{"option": option},
	}
}

// MissingSelector creates an AppError for a scan started without the named selector option.
func MissingSelector(option string) *AppError {
	return &AppError{
		Code: ErrCodeMissingSelector, Message: fmt.Sprintf("Missing required scan option %q.", option),
		Details: map[string]any{"option": option},
	}
}

// UnsupportedObject creates an AppError for an object type with no decoding rule.
func UnsupportedObject(object string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedObject, Message: fmt.Sprintf("'%s' object is not implemented", object),
		Details: map[string]any{"object": object},
	}
}

// TransportFailure creates an AppError for a request that never produced a response.
func TransportFailure(url string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransportFailure, Message: fmt.Sprintf("fetch %s failed", url),
		Details: map[string]any{"url": url}, Cause: cause,
	}
}

// HTTPStatusFailure creates an AppError for a request answered with a non-2xx status.
func HTTPStatusFailure(url string, status int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeHTTPStatusFailure, Message: fmt.Sprintf("fetch %s failed: HTTP %d %s", url, status, http.StatusText(status)),
		HTTPStatus: status,
		Details:    map[string]any{"url": url, "status": status}, Cause: cause,
	}
}

// MalformedResponse creates an AppError for a body that does not match the
// shape expected for object. path names the offending JSON location.
func MalformedResponse(object, path string, cause error) *AppError {
	msg := fmt.Sprintf("malformed %s response", object)
	if path != "" {
		msg = fmt.Sprintf("malformed %s response at %s", object, path)
	}
	details := map[string]any{"object": object}
	if path != "" {
		details["path"] = path
	}
	return &AppError{
		Code: ErrCodeMalformedResponse, Message: msg,
		Details: details, Cause: cause,
	}
}

// --- Common error constructors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
