package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is the human-readable message sent to clients as "detail".
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the client.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for logs and telemetry.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
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

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Is reports whether target is an *AppError with the same code.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
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

// MissingCredential reports that no API key is available for the named provider.
func MissingCredential(provider string) *AppError {
	return &AppError{
		Code:       ErrCodeMissingCredential,
		Message:    fmt.Sprintf("%s API key required. Please add your API key in settings.", provider),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"provider": provider},
	}
}

// EmptyUpload reports a zero-byte upload.
func EmptyUpload() *AppError {
	return &AppError{
		Code:       ErrCodeEmptyUpload,
		Message:    "Uploaded file is empty",
		HTTPStatus: http.StatusBadRequest,
	}
}

// StorageError wraps a failure staging an upload. The cause message is surfaced as-is.
func StorageError(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeStorage,
		Message:    causeMessage(cause, "storage failure"),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ProviderError wraps a failed upstream call. The upstream message is surfaced as-is.
func ProviderError(provider string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeProvider,
		Message:    causeMessage(cause, provider+" request failed"),
		HTTPStatus: http.StatusInternalServerError,
		Retryable:  true,
		Details:    map[string]any{"provider": provider},
		Cause:      cause,
	}
}

// ProviderTimeout reports an upstream call that exceeded its deadline.
func ProviderTimeout(provider string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeProvider,
		Message:    provider + " request timed out",
		HTTPStatus: http.StatusInternalServerError,
		Retryable:  true,
		Details:    map[string]any{"provider": provider, "timeout": true},
		Cause:      cause,
	}
}

// FromUpstream classifies a failed provider call. A deadline becomes
// ProviderTimeout, an existing AppError is kept, anything else is ProviderError.
func FromUpstream(provider string, err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return ProviderTimeout(provider, err)
	}
	return ProviderError(provider, err)
}

// MalformedOutput reports provider output that could not be parsed.
// It is never sent to clients; the visualize path records it and answers {}.
func MalformedOutput(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeMalformedOutput,
		Message:    causeMessage(cause, "malformed provider output"),
		HTTPStatus: http.StatusOK,
		Cause:      cause,
	}
}

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

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: map[string]any{"resource": resource},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: causeMessage(cause, "internal server error"),
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

func causeMessage(cause error, fallback string) string {
	if cause == nil || cause.Error() == "" {
		return fallback
	}
	return cause.Error()
}
