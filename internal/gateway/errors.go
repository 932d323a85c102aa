package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkUnavailable reports that the transport could not reach the
	// backend host at all.
	ErrNetworkUnavailable = errors.New("backend unreachable")

	// ErrMalformedResponse reports a 2xx response whose body could not be
	// decoded as JSON.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// HTTPError is returned when the backend was reachable but answered with a
// non-2xx status. Body carries the raw response body as diagnostic text.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

// AsHTTPError unwraps err into an *HTTPError if there is one in the chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
