package compliance

import (
	"time"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
)

// workedHours returns the entry's net hours: elapsed time minus its unpaid
// break minutes, clamped at zero. An entry without a clock-out contributes
// zero hours to every aggregate.
func workedHours(entry compliance.TimeEntry) float64 {
	if entry.ClockOut == nil {
		return 0
	}
	net := entry.ClockOut.Sub(entry.ClockIn) - time.Duration(entry.BreakMinutes)*time.Minute
	if net < 0 {
		return 0
	}
	return net.Hours()
}

// grossHours returns elapsed hours with no break subtraction.
func grossHours(entry compliance.TimeEntry) float64 {
	if entry.ClockOut == nil {
		return 0
	}
	gross := entry.ClockOut.Sub(entry.ClockIn)
	if gross < 0 {
		return 0
	}
	return gross.Hours()
}

func sumHours(entries []compliance.TimeEntry) float64 {
	var total float64
	for _, entry := range entries {
		total += workedHours(entry)
	}
	return total
}

// nightHours apportions the entry's net hours by the share of whole hourly
// steps, walking the clock-in instant forward one hour at a time until
// clock-out, that land inside the night window. This scales total hours by
// an integer-step ratio rather than intersecting exact intervals; break
// time is subtracted proportionally.
func (e *Engine) nightHours(entry compliance.TimeEntry) float64 {
	if entry.ClockOut == nil {
		return 0
	}
	var total, night int
	for step := entry.ClockIn; step.Before(*entry.ClockOut); step = step.Add(time.Hour) {
		total++
		if e.inNightWindow(step) {
			night++
		}
	}
	if total == 0 {
		return 0
	}
	return workedHours(entry) * float64(night) / float64(total)
}

// inNightWindow reports whether the instant's local wall-clock hour falls
// inside the night window. The window wraps midnight when it ends before
// it starts.
func (e *Engine) inNightWindow(t time.Time) bool {
	h := t.In(e.loc).Hour()
	if e.limits.NightStartHour > e.limits.NightEndHour {
		return h >= e.limits.NightStartHour || h < e.limits.NightEndHour
	}
	return h >= e.limits.NightStartHour && h < e.limits.NightEndHour
}
