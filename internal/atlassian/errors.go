package atlassian

import "fmt"

// ErrorKind buckets failures so callers can decide how to react without
// string-matching messages.
type ErrorKind string

const (
	// ErrorKindConfig covers missing or invalid base URLs and credentials.
	// These are fatal at startup and never retried.
	ErrorKindConfig ErrorKind = "config"
	// ErrorKindValidation covers malformed identifiers and parameters,
	// rejected before any network call.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindUnavailable marks operations not supported on the target
	// deployment type.
	ErrorKindUnavailable ErrorKind = "unavailable"
	// ErrorKindRemote covers non-2xx responses from the Atlassian API.
	ErrorKindRemote ErrorKind = "remote"
	// ErrorKindNetwork covers connection and DNS failures.
	ErrorKindNetwork ErrorKind = "network"
)

// Error is the typed failure returned by the client and the compatibility
// layer. Remote errors carry the HTTP status and response body verbatim.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ErrorKindRemote && e.Body != "":
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation failure.
func NewValidationError(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewConfigError creates a configuration failure.
func NewConfigError(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrorKindConfig, Message: fmt.Sprintf(format, args...)}
}

// NewUnavailableError marks an operation unsupported on a deployment type.
func NewUnavailableError(service Service, endpoint string, deployment DeploymentType) *Error {
	return &Error{
		Kind:    ErrorKindUnavailable,
		Message: fmt.Sprintf("endpoint %s.%s is not available on %s deployments", service, endpoint, deployment),
	}
}

// NewRemoteError wraps a non-2xx API response.
func NewRemoteError(statusCode int, body string) *Error {
	return &Error{Kind: ErrorKindRemote, StatusCode: statusCode, Body: body}
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) *Error {
	return &Error{Kind: ErrorKindNetwork, Message: "request failed", Err: err}
}
