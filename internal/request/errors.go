package request

import (
	"errors"
	"fmt"
)

// fallbackMessage is used when a failing envelope carries no message.
const fallbackMessage = "Error"

// APIError is an application-level failure: the backend answered with an
// envelope whose code is not 200.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fallbackMessage
	}
	return e.Message
}

// TransportError means the call never produced an envelope: connection
// failure, timeout, cancellation, or a body that is not an envelope.
type TransportError struct {
	Method string
	Path   string
	Status int // 0 when no response arrived
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AsAPIError reports whether err is, or wraps, an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransport reports whether err is, or wraps, a *TransportError.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
