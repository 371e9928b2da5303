package core

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrInvalidPropertyName = errors.New("cloudschedule: invalid property name (must be alphanumeric, start with letter)")
	ErrPropertyNameTooLong = errors.New("cloudschedule: property name too long")
	ErrDuplicateProperty   = errors.New("cloudschedule: property already registered")
	ErrPropertyNotFound    = errors.New("cloudschedule: property not found")

	ErrInvalidUnit       = errors.New("cloudschedule: invalid time unit")
	ErrRepetitionTooLong = errors.New("cloudschedule: repetition count exceeds 26 bits")
	ErrZeroRepetition    = errors.New("cloudschedule: repetition count must be positive")
	ErrNoWeekdays        = errors.New("cloudschedule: weekly schedule selects no weekday")
	ErrInvalidDay        = errors.New("cloudschedule: day of month must be in [1, 31]")
	ErrInvalidMonth      = errors.New("cloudschedule: month index must be in [0, 11]")
	ErrInvalidWindow     = errors.New("cloudschedule: window start is after window end")
	ErrUnknownRecurrence = errors.New("cloudschedule: unknown recurrence type")
)

// Sync errors
var (
	ErrTruncatedAttributes = errors.New("cloudschedule: truncated attribute sequence")
	ErrTrailingAttributes  = errors.New("cloudschedule: unexpected data after attribute sequence")
	ErrNoTransport         = errors.New("cloudschedule: no transport configured")
	ErrPayloadTooLarge     = errors.New("cloudschedule: payload exceeds size limit")
)

// SyncError reports a failed transfer of a property to the cloud.
type SyncError struct {
	Name string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("cloudschedule: sync %q: %v", e.Name, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
