package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
)

// Shared helpers for the engine tests. All wall-clock times are built in
// the Madrid reference timezone; 2024-05-06 is a Monday.

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(compliance.DefaultLimits())
	require.NoError(t, err)
	return engine
}

func madridTime(t *testing.T, year int, month time.Month, day, hour, min, sec int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	return time.Date(year, month, day, hour, min, sec, 0, loc)
}

// monday returns 2024-05-06 at the given wall-clock time in Madrid.
func monday(t *testing.T, hour, min int) time.Time {
	return madridTime(t, 2024, time.May, 6, hour, min, 0)
}

func closedEntry(id string, clockIn time.Time, hours float64, breakMinutes int) compliance.TimeEntry {
	clockOut := clockIn.Add(time.Duration(hours * float64(time.Hour)))
	return compliance.TimeEntry{
		ID:           id,
		ClockIn:      clockIn,
		ClockOut:     &clockOut,
		BreakMinutes: breakMinutes,
	}
}

func openEntry(id string, clockIn time.Time) compliance.TimeEntry {
	return compliance.TimeEntry{ID: id, ClockIn: clockIn}
}

func closedBreak(entryID string, start time.Time, minutes int, breakType compliance.BreakType) compliance.BreakEntry {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return compliance.BreakEntry{
		TimeEntryID: entryID,
		BreakStart:  start,
		BreakEnd:    &end,
		BreakType:   breakType,
	}
}
