package compliance

import "errors"

// Compliance domain errors
var (
	// ErrEntryNotInHistory is returned by ValidateAll when the current entry
	// is missing from the supplied history. This is a caller contract
	// violation, not a rule failure.
	ErrEntryNotInHistory = errors.New("current entry is not present in the entry history")

	ErrUnknownRule     = errors.New("unknown compliance rule")
	ErrInvalidTimezone = errors.New("invalid reference timezone")
)
