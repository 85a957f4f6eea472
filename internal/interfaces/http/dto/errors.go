package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeValidation   = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Scan pipeline error codes
const (
	// ErrCodeInvalidBarcode is used when the scanned string does not match the label format
	ErrCodeInvalidBarcode = "ERR_INVALID_BARCODE"
	// ErrCodeDuplicateScan is used when a scan lands inside the cooldown window
	ErrCodeDuplicateScan = "ERR_DUPLICATE_SCAN"
	// ErrCodeUnhandledStatus is used when the drum's state has no scan transition
	ErrCodeUnhandledStatus = "ERR_UNHANDLED_STATUS"
	// ErrCodeTransitionFailed is used when the delegated status mutation did not materialize
	ErrCodeTransitionFailed = "ERR_TRANSITION_FAILED"
	// ErrCodeScanInProgress is used when another scan of the same drum holds the lock
	ErrCodeScanInProgress = "ERR_SCAN_IN_PROGRESS"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidBarcode:   http.StatusBadRequest,
	ErrCodeDuplicateScan:    http.StatusTooManyRequests,
	ErrCodeUnhandledStatus:  http.StatusBadRequest,
	ErrCodeTransitionFailed: http.StatusInternalServerError,
	ErrCodeScanInProgress:   http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the standardized
// wire codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_STATE":            ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":     ErrCodeConflict,
	"ORDER_NOT_FOUND":          ErrCodeNotFound,
	"INVALID_SUPPLIER":         ErrCodeInvalidInput,
	"INVALID_MATERIAL":         ErrCodeInvalidInput,
	"INVALID_QUANTITY":         ErrCodeInvalidInput,
	"INVALID_TRANSACTION_TYPE": ErrCodeInvalidInput,
	"INVALID_DRUM_ID":          ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the wire format,
// passing through codes already in wire format
func NormalizeErrorCode(code string) string {
	if wireCode, ok := LegacyErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
