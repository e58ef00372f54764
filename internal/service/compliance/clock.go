package compliance

import (
	"time"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
)

// startOfDay returns local midnight of the day containing t in the
// reference timezone.
func (e *Engine) startOfDay(t time.Time) time.Time {
	lt := t.In(e.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, e.loc)
}

// startOfWeek returns local Monday midnight of the week containing t.
// Weeks start on Monday regardless of locale.
func (e *Engine) startOfWeek(t time.Time) time.Time {
	day := e.startOfDay(t)
	// time.Weekday numbers Sunday as 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// dayWindow returns the [start, start+24h) window containing t.
func (e *Engine) dayWindow(t time.Time) (time.Time, time.Time) {
	start := e.startOfDay(t)
	return start, start.Add(24 * time.Hour)
}

// weekWindow returns the [start, start+7d) window containing t.
func (e *Engine) weekWindow(t time.Time) (time.Time, time.Time) {
	start := e.startOfWeek(t)
	return start, start.Add(7 * 24 * time.Hour)
}

// localClock formats an instant as local wall-clock time for messages.
func (e *Engine) localClock(t time.Time) string {
	return t.In(e.loc).Format("2006-01-02 15:04")
}

// orNow substitutes the current instant for a zero target date.
func orNow(target time.Time) time.Time {
	if target.IsZero() {
		return time.Now()
	}
	return target
}

// entriesWithin buckets entries into [start, end) by their clock-in instant
// only; a shift spanning the boundary stays in the window it started in.
func entriesWithin(entries []compliance.TimeEntry, start, end time.Time) []compliance.TimeEntry {
	var within []compliance.TimeEntry
	for _, entry := range entries {
		if !entry.ClockIn.Before(start) && entry.ClockIn.Before(end) {
			within = append(within, entry)
		}
	}
	return within
}

// completedEntries filters out entries that are still clocked in.
func completedEntries(entries []compliance.TimeEntry) []compliance.TimeEntry {
	var completed []compliance.TimeEntry
	for _, entry := range entries {
		if entry.Completed() {
			completed = append(completed, entry)
		}
	}
	return completed
}
