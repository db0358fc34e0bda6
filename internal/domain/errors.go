package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog and beacon operations
var (
	// ErrServerOffline indicates the API is unreachable
	ErrServerOffline = errors.New("catalog API is unreachable")

	// ErrMalformedResponse indicates the API answered with a body that could not be used
	ErrMalformedResponse = errors.New("malformed API response")

	// ErrLoadFailed marks a catalog load that collapsed to the failed state
	ErrLoadFailed = errors.New("catalog unavailable")

	// ErrLoadSettled indicates a transition was attempted on a load that already finished
	ErrLoadSettled = errors.New("load state already settled")
)

// StatusError is returned when the API responds with a non-success status code
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.Path, e.Code)
}
