package timesheet

import (
	"context"
)

// Service defines business logic for clocking and breaks. Employee and
// company identity come from the JWT claims in the request context.
type Service interface {
	// ClockIn opens a new time entry, rejecting a second open shift and a
	// clock-in outside the work site's geofence.
	ClockIn(ctx context.Context, req ClockInRequest) (TimeEntryResponse, error)

	// ClockOut closes the open entry and attaches the compliance report.
	ClockOut(ctx context.Context, req ClockOutRequest) (TimeEntryResponse, error)

	// StartBreak opens a break on the current open entry.
	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)

	// EndBreak closes the break in progress.
	EndBreak(ctx context.Context) (BreakResponse, error)

	// GetMyEntries lists the authenticated employee's entries.
	GetMyEntries(ctx context.Context, filter ListFilter) (ListEntriesResponse, error)

	// GetEntry returns a single entry by ID.
	GetEntry(ctx context.Context, id string) (TimeEntryResponse, error)
}
