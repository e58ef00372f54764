package timesheet

import "errors"

// Timesheet domain errors
var (
	// Clock-in/out errors
	ErrOpenEntryExists      = errors.New("an open time entry already exists")
	ErrNoOpenEntry          = errors.New("no open time entry to clock out")
	ErrOutsideAllowedRadius = errors.New("clock-in location is outside the allowed radius")

	// Break errors
	ErrOpenBreakExists = errors.New("a break is already in progress")
	ErrNoOpenBreak     = errors.New("no break in progress")

	// General errors
	ErrEntryNotFound = errors.New("time entry not found")
	ErrUnauthorized  = errors.New("unauthorized to access this time entry")
)
