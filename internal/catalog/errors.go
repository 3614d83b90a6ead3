package catalog

import (
	"errors"
	"fmt"
)

// ErrMovieNotFound is returned when the catalog has no movie with the
// requested id.  It is distinct from a failed fetch.
var ErrMovieNotFound = errors.New("movie not found")

// ErrSoldOut is returned when the catalog refuses a PATCH that would sell
// more tickets than the screening holds.
var ErrSoldOut = errors.New("movie sold out")

// ErrThrottled is returned when the catalog rate limits a request.
var ErrThrottled = errors.New("catalog rate limited the request")

// ErrCatalogUnavailable is returned while the circuit breaker is open.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// StatusError describes a non-2xx response from the catalog.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.URL, e.Status)
}
