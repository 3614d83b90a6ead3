// Package repository defines error types that are reused across the
// movie stores.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie cannot be found in the store.
// Handlers should translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")

// ErrConflict is returned when an update would break the ticket
// invariant 0 <= tickets_sold <= capacity.  Handlers should translate
// this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
