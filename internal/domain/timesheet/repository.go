package timesheet

import (
	"context"
)

// TimeEntryRepository defines data access for time entries. Every method
// takes companyID to enforce tenant isolation at the query level.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	GetByID(ctx context.Context, id string, companyID string) (TimeEntry, error)

	// GetOpenEntry returns the employee's entry without a clock-out, or nil.
	GetOpenEntry(ctx context.Context, employeeID string, companyID string) (*TimeEntry, error)

	Update(ctx context.Context, entry TimeEntry) error

	// List returns a paginated window of the employee's entries.
	List(ctx context.Context, employeeID string, filter ListFilter, companyID string) ([]TimeEntry, int64, error)

	// ListHistory returns the employee's complete entry history, the
	// validator's required input.
	ListHistory(ctx context.Context, employeeID string, companyID string) ([]TimeEntry, error)
}

// BreakRepository defines data access for in-shift breaks.
type BreakRepository interface {
	Create(ctx context.Context, brk BreakEntry) (BreakEntry, error)

	// GetOpenBreak returns the entry's break without an end, or nil.
	GetOpenBreak(ctx context.Context, timeEntryID string) (*BreakEntry, error)

	Update(ctx context.Context, brk BreakEntry) error

	// ListByEmployee returns all breaks across all of the employee's entries.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]BreakEntry, error)
}
