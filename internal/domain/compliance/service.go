package compliance

import (
	"context"
	"time"
)

// Validator evaluates attendance history against labor-law constraints.
// Every method is a pure function of its arguments: no I/O, no state, safe
// for concurrent use.
type Validator interface {
	// ValidateAll runs all twelve rules against vc in the fixed reporting
	// order and returns exactly twelve results. It fails only on a caller
	// contract violation (ErrEntryNotInHistory).
	ValidateAll(vc Context) ([]Result, error)

	// ValidateRule runs a single rule by kind against vc.
	ValidateRule(kind RuleKind, vc Context) (Result, error)

	// Individual rule evaluators. A zero target means "now".
	ValidateDailyLimit(entries []TimeEntry, target time.Time) Result
	ValidateWeeklyLimit(entries []TimeEntry, target time.Time) Result
	ValidateRestPeriod(entries []TimeEntry) Result
	ValidateMandatoryBreak(entry TimeEntry, breaks []BreakEntry) Result
	ValidateContinuousWork(entry TimeEntry, breaks []BreakEntry) Result
	ValidateWeeklyRest(entries []TimeEntry, target time.Time) Result
	ValidateNightWork(entry TimeEntry) Result
	ValidateOvertime(entries []TimeEntry, target time.Time) Result
	ValidateAbsoluteWeeklyMax(entries []TimeEntry, target time.Time) Result
	ValidateMinorRestrictions(entry TimeEntry, entries []TimeEntry, userAge *int) Result
	ValidatePregnantWorker(entry TimeEntry, isPregnant *bool) Result
	ValidateGeofence(user, site Coordinates) Result
}

// Service runs the validator against persisted attendance data.
type Service interface {
	// ValidateEntry assembles the validation context for one time entry and
	// returns the full twelve-rule report.
	ValidateEntry(ctx context.Context, entryID string) (ReportResponse, error)

	// ValidateEntryRule runs a single rule for one time entry.
	ValidateEntryRule(ctx context.Context, entryID string, rule RuleKind) (Result, error)
}
