package transaction

import (
	"errors"
	"fmt"
)

// ErrInvalidResponseBody is returned when the node answers with a body that
// cannot be decoded.
var ErrInvalidResponseBody = errors.New("invalid response body")

// RequestError wraps a transport failure talking to the node.
type RequestError struct {
	Op  string
	URL string
	Err error
}

// Error implements error.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the transport error.
func (e *RequestError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response from the node.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}
