package gtfs

import (
	"errors"
	"fmt"
)

// Errors we want to identify programmatically.

var (
	// ErrNotFound is returned when a requested trip, stop or route does
	// not exist in the schedule data.
	ErrNotFound = errors.New("not found")

	// ErrNoID is returned by constructors when no ID is provided.
	ErrNoID = errors.New("no ID provided")

	// ErrNoName is returned by constructors when no display name is
	// provided.
	ErrNoName = errors.New("no name provided")

	// ErrInvalidCoordinates is returned by NewStop when the latitude or
	// longitude is outside the valid range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// StoreInitError is fatal at startup: the process cannot serve without
// schedule data.
type StoreInitError struct {
	Step string
	Err  error
}

func (e *StoreInitError) Error() string {
	return fmt.Sprintf("schedule store init failed at %s: %v", e.Step, e.Err)
}

func (e *StoreInitError) Unwrap() error { return e.Err }
