package tourapi

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the tour API client.
var (
	// ErrMissingServiceKey indicates the client was built without a
	// data.go.kr service key.
	ErrMissingServiceKey = errors.New("tour API service key is required")

	// ErrMissingContentID indicates a detail lookup without a content id.
	ErrMissingContentID = errors.New("content id is required")

	// ErrMissingKeyword indicates a keyword search without a keyword.
	ErrMissingKeyword = errors.New("search keyword is required")
)

// ErrorClass partitions API failures by how they should be handled.
type ErrorClass int

const (
	// ClassTransport covers network failures, timeouts and non-2xx
	// status codes. Always retryable.
	ClassTransport ErrorClass = iota
	// ClassMalformed covers non-JSON bodies and responses missing the
	// expected envelope. Retryable: the upstream occasionally emits
	// transient HTML/XML error pages.
	ClassMalformed
	// ClassAuth covers service-key and access failures. Terminal:
	// retrying a rejected key cannot succeed.
	ClassAuth
	// ClassServer covers upstream-side failures (application errors,
	// quota exhaustion, internal timeouts). Retryable.
	ClassServer
	// ClassNoData is the upstream's "no matching rows" result code.
	// Terminal but expected; endpoint methods may map it to an empty
	// result.
	ClassNoData
	// ClassGeneric covers result codes and messages that match no known
	// classification. Retryable.
	ClassGeneric
)

// String implements fmt.Stringer for log output.
func (c ErrorClass) String() string {
	switch c {
	case ClassTransport:
		return "transport"
	case ClassMalformed:
		return "malformed"
	case ClassAuth:
		return "auth"
	case ClassServer:
		return "server"
	case ClassNoData:
		return "no_data"
	case ClassGeneric:
		return "generic"
	}
	return "unknown"
}

// APIError is a classified failure from the tour API.
type APIError struct {
	// Code is the upstream resultCode, empty for transport and
	// malformed-response failures.
	Code    string
	Message string
	Class   ErrorClass
	cause   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tour API error [%s/%s]: %s", e.Code, e.Class, e.Message)
	}
	return fmt.Sprintf("tour API %s error: %s", e.Class, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// IsAuthError reports whether the failure is an authentication or
// access problem with the service key.
func (e *APIError) IsAuthError() bool {
	return e.Class == ClassAuth
}

// IsNoData reports whether the upstream found no matching rows.
func (e *APIError) IsNoData() bool {
	return e.Class == ClassNoData
}

// IsTransient reports whether the failure is an upstream or network
// condition expected to clear on its own.
func (e *APIError) IsTransient() bool {
	return e.Class == ClassTransport || e.Class == ClassServer
}

// Retryable reports whether another attempt can plausibly succeed.
func (e *APIError) Retryable() bool {
	return e.Class != ClassAuth && e.Class != ClassNoData
}

// resultCodeClasses maps the data.go.kr common OpenAPI result codes to
// failure classes. Codes arrive zero-padded ("0030"); lookup happens on
// the trimmed form.
var resultCodeClasses = map[string]ErrorClass{
	"1":  ClassServer,  // APPLICATION_ERROR
	"2":  ClassServer,  // DB_ERROR
	"3":  ClassNoData,  // NODATA_ERROR
	"4":  ClassServer,  // HTTP_ERROR
	"5":  ClassServer,  // SERVICETIMEOUT_ERROR
	"10": ClassGeneric, // INVALID_REQUEST_PARAMETER_ERROR
	"11": ClassGeneric, // NO_MANDATORY_REQUEST_PARAMETERS_ERROR
	"12": ClassServer,  // NO_OPENAPI_SERVICE_ERROR
	"20": ClassAuth,    // SERVICE_ACCESS_DENIED_ERROR
	"21": ClassAuth,    // TEMPORARILY_DISABLE_THE_SERVICEKEY_ERROR
	"22": ClassServer,  // LIMITED_NUMBER_OF_SERVICE_REQUESTS_EXCEEDS_ERROR
	"30": ClassAuth,    // SERVICE_KEY_IS_NOT_REGISTERED_ERROR
	"31": ClassAuth,    // DEADLINE_HAS_EXPIRED_ERROR
	"32": ClassAuth,    // UNREGISTERED_IP_ERROR
	"33": ClassAuth,    // UNSIGNED_CALL_ERROR
	"99": ClassServer,  // UNKNOWN_ERROR
}

// classifyResultCode builds an APIError for a non-success result code.
// The documented code table decides the class; message substrings are a
// last resort for codes the table does not know.
func classifyResultCode(code, msg string) *APIError {
	trimmed := strings.TrimLeft(code, "0")
	if class, ok := resultCodeClasses[trimmed]; ok {
		return &APIError{Code: code, Message: msg, Class: class}
	}
	return &APIError{Code: code, Message: msg, Class: classifyMessage(msg)}
}

// classifyMessage guesses a class from human-readable message text.
// Inherently fragile; callers log these as unclassified.
func classifyMessage(msg string) ErrorClass {
	upper := strings.ToUpper(msg)
	switch {
	case strings.Contains(upper, "SERVICE KEY"),
		strings.Contains(upper, "SERVICEKEY"),
		strings.Contains(upper, "ACCESS DENIED"),
		strings.Contains(upper, "UNREGISTERED"):
		return ClassAuth
	case strings.Contains(upper, "LIMITED NUMBER"),
		strings.Contains(upper, "EXCEEDS"),
		strings.Contains(upper, "TIMEOUT"),
		strings.Contains(upper, "SYSTEM ERROR"),
		strings.Contains(upper, "DB_ERROR"):
		return ClassServer
	case strings.Contains(upper, "NODATA"):
		return ClassNoData
	}
	return ClassGeneric
}

// classified extracts the table-driven classification from an error
// chain, if present.
func classified(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// retryable reports whether err is worth another attempt.
func retryable(err error) bool {
	if apiErr, ok := classified(err); ok {
		return apiErr.Retryable()
	}
	// Non-API errors at this layer are request construction or context
	// failures; retrying cannot help.
	return false
}
