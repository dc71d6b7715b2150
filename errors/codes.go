package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Adapter configuration errors
const (
	// ErrCodeMissingCredential indicates the adapter was built without a usable API key.
	ErrCodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	// ErrCodeMissingSelector indicates a scan was started without an object selector.
	ErrCodeMissingSelector ErrorCode = "MISSING_SELECTOR"
	// ErrCodeUnsupportedObject indicates the object type has no decoding rule.
	ErrCodeUnsupportedObject ErrorCode = "UNSUPPORTED_OBJECT"
)

// Remote fetch errors
const (
	// ErrCodeTransportFailure indicates a network-level failure that survived all retries.
	ErrCodeTransportFailure ErrorCode = "TRANSPORT_FAILURE"
	// ErrCodeHTTPStatusFailure indicates a non-2xx response that survived all retries.
	ErrCodeHTTPStatusFailure ErrorCode = "HTTP_STATUS_FAILURE"
	// ErrCodeMalformedResponse indicates the response body could not be decoded into rows.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Every code is terminal for the scan that raised it. Transient transport
// conditions are retried inside the HTTP client before they surface here.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeMissingCredential: false,
	ErrCodeMissingSelector:   false,
	ErrCodeUnsupportedObject: false,
	ErrCodeTransportFailure:  false,
	ErrCodeHTTPStatusFailure: false,
	ErrCodeMalformedResponse: false,
	ErrCodeInvalidInput:      false,
	ErrCodeMissingField:      false,
	ErrCodeInternal:          false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
