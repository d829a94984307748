package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Client-correctable errors.
const (
	// ErrCodeMissingCredential indicates neither a header nor a default API key was available.
	ErrCodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	// ErrCodeEmptyUpload indicates the uploaded file had zero bytes.
	ErrCodeEmptyUpload ErrorCode = "EMPTY_UPLOAD"
	// ErrCodeInvalidInput indicates the request body or form was invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Server-side errors.
const (
	// ErrCodeStorage indicates a failure writing or reading a staged upload.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	// ErrCodeProvider indicates the upstream AI provider call failed.
	ErrCodeProvider ErrorCode = "PROVIDER_ERROR"
	// ErrCodeMalformedOutput indicates the provider answered with unparseable content.
	ErrCodeMalformedOutput ErrorCode = "MALFORMED_PROVIDER_OUTPUT"
	// ErrCodeTimeout indicates an operation exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Nothing is retried by this service; the flag only informs clients.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
	ErrCodeProvider:           true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
