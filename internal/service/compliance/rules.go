package compliance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/utils"
)

// Legal citations attached to each verdict for audit and reporting.
const (
	refDailyLimit     = "Art. 34.3 Estatuto de los Trabajadores"
	refWeeklyLimit    = "Art. 34.1 Estatuto de los Trabajadores"
	refRestPeriod     = "Art. 34.3 Estatuto de los Trabajadores"
	refMandatoryBreak = "Art. 34.4 Estatuto de los Trabajadores"
	refContinuousWork = "Art. 34.4 Estatuto de los Trabajadores"
	refWeeklyRest     = "Art. 37.1 Estatuto de los Trabajadores"
	refNightWork      = "Art. 36.1 Estatuto de los Trabajadores"
	refOvertime       = "Art. 35 Estatuto de los Trabajadores"
	refAbsoluteMax    = "Art. 35.2 Estatuto de los Trabajadores y Directiva 2003/88/CE"
	refMinors         = "Art. 6 y 34.3 Estatuto de los Trabajadores"
	refPregnant       = "Art. 26 Ley 31/1995 de Prevención de Riesgos Laborales"
	refGeofence       = "Art. 34.9 Estatuto de los Trabajadores (registro de jornada)"
)

func pass(kind compliance.RuleKind, ref, msg string) compliance.Result {
	return compliance.Result{
		Rule:          kind,
		Pass:          true,
		Message:       msg,
		RuleReference: ref,
	}
}

func fail(kind compliance.RuleKind, ref string, sev compliance.Severity, msg, action string) compliance.Result {
	return compliance.Result{
		Rule:              kind,
		Pass:              false,
		Severity:          sev,
		Message:           msg,
		RuleReference:     ref,
		RecommendedAction: action,
	}
}

// ValidateDailyLimit implements compliance.Validator.
func (e *Engine) ValidateDailyLimit(entries []compliance.TimeEntry, target time.Time) compliance.Result {
	start, end := e.dayWindow(orNow(target))
	total := sumHours(entriesWithin(entries, start, end))
	limit := e.limits.MaxDailyHours

	if total <= limit {
		return pass(compliance.RuleDailyLimit, refDailyLimit,
			fmt.Sprintf("Daily total of %.2fh is within the %.0fh limit", total, limit))
	}

	over := total - limit
	sev := compliance.SeverityHigh
	if over > e.limits.DailyCriticalMarginHours {
		sev = compliance.SeverityCritical
	}
	return fail(compliance.RuleDailyLimit, refDailyLimit, sev,
		fmt.Sprintf("Daily total of %.2fh exceeds the %.0fh limit by %.2fh", total, limit, over),
		"Reduce the hours scheduled for this day or split the shift across days")
}

// ValidateWeeklyLimit implements compliance.Validator.
func (e *Engine) ValidateWeeklyLimit(entries []compliance.TimeEntry, target time.Time) compliance.Result {
	start, end := e.weekWindow(orNow(target))
	total := sumHours(entriesWithin(entries, start, end))
	limit := e.limits.MaxWeeklyHours

	if total <= limit {
		return pass(compliance.RuleWeeklyLimit, refWeeklyLimit,
			fmt.Sprintf("Weekly total of %.2fh is within the %.0fh regular limit", total, limit))
	}

	over := total - limit
	sev := compliance.SeverityLow
	if over > e.limits.WeeklyMediumMarginHours {
		sev = compliance.SeverityMedium
	}
	return fail(compliance.RuleWeeklyLimit, refWeeklyLimit, sev,
		fmt.Sprintf("Weekly total of %.2fh exceeds the %.0fh regular limit by %.2fh", total, limit, over),
		"Review the weekly roster to bring ordinary hours back under the limit")
}

// ValidateRestPeriod implements compliance.Validator. The first violating
// pair in chronological order is reported; later violations are not
// aggregated.
func (e *Engine) ValidateRestPeriod(entries []compliance.TimeEntry) compliance.Result {
	completed := completedEntries(entries)
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].ClockOut.Before(*completed[j].ClockOut)
	})

	minRest := e.limits.MinRestBetweenShiftsHours
	for i := 1; i < len(completed); i++ {
		prev, next := completed[i-1], completed[i]
		gap := next.ClockIn.Sub(*prev.ClockOut).Hours()
		if gap < minRest {
			return fail(compliance.RuleRestPeriod, refRestPeriod, compliance.SeverityCritical,
				fmt.Sprintf("Only %.2fh of rest between the shift ending %s and the shift starting %s (minimum %.0fh)",
					gap, e.localClock(*prev.ClockOut), e.localClock(next.ClockIn), minRest),
				"Delay the next shift until the full rest period between shifts has elapsed")
		}
	}
	return pass(compliance.RuleRestPeriod, refRestPeriod,
		fmt.Sprintf("All consecutive shifts respect the %.0fh rest period", minRest))
}

// ValidateMandatoryBreak implements compliance.Validator. Shifts at or under
// the threshold are exempt; longer shifts need the minimum cumulative break.
// The break credit is the larger of the recorded break entries and the
// entry's own aggregate break minutes, so legacy records without discrete
// breaks still get credit.
func (e *Engine) ValidateMandatoryBreak(entry compliance.TimeEntry, breaks []compliance.BreakEntry) compliance.Result {
	if !entry.Completed() {
		return pass(compliance.RuleMandatoryBreak, refMandatoryBreak,
			"Shift is still open; break compliance is evaluated at clock-out")
	}

	gross := grossHours(entry)
	if gross <= e.limits.BreakRequiredAfterHours {
		return pass(compliance.RuleMandatoryBreak, refMandatoryBreak,
			fmt.Sprintf("Shift of %.2fh does not require a mandatory break", gross))
	}

	var recorded float64
	for _, b := range breaks {
		if b.TimeEntryID == entry.ID {
			recorded += b.Minutes()
		}
	}
	credit := math.Max(recorded, float64(entry.BreakMinutes))

	if credit >= e.limits.MinBreakMinutes {
		return pass(compliance.RuleMandatoryBreak, refMandatoryBreak,
			fmt.Sprintf("Shift of %.2fh includes %.0f minutes of break", gross, credit))
	}
	return fail(compliance.RuleMandatoryBreak, refMandatoryBreak, compliance.SeverityHigh,
		fmt.Sprintf("Shift of %.2fh includes only %.0f minutes of break (minimum %.0f)",
			gross, credit, e.limits.MinBreakMinutes),
		"Record a break of at least the mandatory length for shifts over six hours")
}

// ValidateContinuousWork implements compliance.Validator. Work segments are
// delimited by the entry's completed breaks; the first segment over the
// limit is reported. Open breaks do not split segments.
func (e *Engine) ValidateContinuousWork(entry compliance.TimeEntry, breaks []compliance.BreakEntry) compliance.Result {
	if !entry.Completed() {
		return pass(compliance.RuleContinuousWork, refContinuousWork,
			"Shift is still open; continuous work is evaluated at clock-out")
	}

	var own []compliance.BreakEntry
	for _, b := range breaks {
		if b.TimeEntryID == entry.ID && b.BreakEnd != nil {
			own = append(own, b)
		}
	}
	sort.Slice(own, func(i, j int) bool {
		return own[i].BreakStart.Before(own[j].BreakStart)
	})

	limit := e.limits.MaxContinuousWorkHours
	cursor := entry.ClockIn
	check := func(from, to time.Time) *compliance.Result {
		seg := to.Sub(from).Hours()
		if seg <= limit {
			return nil
		}
		r := fail(compliance.RuleContinuousWork, refContinuousWork, compliance.SeverityHigh,
			fmt.Sprintf("Continuous work segment of %.2fh from %s to %s exceeds %.0fh",
				seg, e.localClock(from), e.localClock(to), limit),
			"Insert an additional break before the continuous work limit is reached")
		return &r
	}

	for _, b := range own {
		if r := check(cursor, b.BreakStart); r != nil {
			return *r
		}
		if b.BreakEnd.After(cursor) {
			cursor = *b.BreakEnd
		}
	}
	if r := check(cursor, *entry.ClockOut); r != nil {
		return *r
	}
	return pass(compliance.RuleContinuousWork, refContinuousWork,
		fmt.Sprintf("No continuous work segment exceeds %.0fh", limit))
}

// ValidateWeeklyRest implements compliance.Validator. A week with zero or
// one completed entries passes trivially; otherwise the longest rest
// interval between consecutive shifts must reach the weekly minimum.
func (e *Engine) ValidateWeeklyRest(entries []compliance.TimeEntry, target time.Time) compliance.Result {
	start, end := e.weekWindow(orNow(target))
	week := completedEntries(entriesWithin(entries, start, end))
	sort.Slice(week, func(i, j int) bool {
		return week[i].ClockIn.Before(week[j].ClockIn)
	})

	minRest := e.limits.MinWeeklyRestHours
	if len(week) < 2 {
		return pass(compliance.RuleWeeklyRest, refWeeklyRest,
			"Not enough completed shifts this week to constrain the weekly rest")
	}

	var longest float64
	for i := 1; i < len(week); i++ {
		gap := week[i].ClockIn.Sub(*week[i-1].ClockOut).Hours()
		if gap > longest {
			longest = gap
		}
	}

	if longest >= minRest {
		return pass(compliance.RuleWeeklyRest, refWeeklyRest,
			fmt.Sprintf("Longest rest interval this week is %.2fh", longest))
	}
	return fail(compliance.RuleWeeklyRest, refWeeklyRest, compliance.SeverityCritical,
		fmt.Sprintf("Longest rest interval this week is %.2fh, below the required %.0fh", longest, minRest),
		"Schedule one continuous rest of at least the weekly minimum within the week")
}

// ValidateNightWork implements compliance.Validator.
func (e *Engine) ValidateNightWork(entry compliance.TimeEntry) compliance.Result {
	if !entry.Completed() {
		return pass(compliance.RuleNightWork, refNightWork,
			"Shift is still open; night hours are evaluated at clock-out")
	}

	night := e.nightHours(entry)
	limit := e.limits.MaxNightHours
	if night <= limit {
		return pass(compliance.RuleNightWork, refNightWork,
			fmt.Sprintf("%.2f night hours are within the %.0fh limit", night, limit))
	}
	return fail(compliance.RuleNightWork, refNightWork, compliance.SeverityHigh,
		fmt.Sprintf("%.2f night hours exceed the %.0fh limit", night, limit),
		"Reassign part of the shift outside the 20:00-06:00 window")
}

// ValidateOvertime implements compliance.Validator. Up to the absolute
// ceiling overtime is an informational notice, not a violation.
func (e *Engine) ValidateOvertime(entries []compliance.TimeEntry, target time.Time) compliance.Result {
	start, end := e.weekWindow(orNow(target))
	total := sumHours(entriesWithin(entries, start, end))
	regular := e.limits.MaxWeeklyHours
	ceiling := e.limits.AbsoluteWeeklyMaxHours

	if total <= regular {
		return pass(compliance.RuleOvertime, refOvertime,
			fmt.Sprintf("No overtime this week (%.2fh worked)", total))
	}

	overtime := total - regular
	if total <= ceiling {
		r := pass(compliance.RuleOvertime, refOvertime,
			fmt.Sprintf("%.2fh of overtime this week (%.2fh total)", overtime, total))
		r.Severity = compliance.SeverityLow
		r.RecommendedAction = "Register and compensate the overtime hours"
		return r
	}
	return fail(compliance.RuleOvertime, refOvertime, compliance.SeverityCritical,
		fmt.Sprintf("%.2fh of overtime pushes the week to %.2fh, past the absolute %.0fh ceiling",
			overtime, total, ceiling),
		"Stop scheduling this worker until the weekly total is back under the ceiling")
}

// ValidateAbsoluteWeeklyMax implements compliance.Validator.
func (e *Engine) ValidateAbsoluteWeeklyMax(entries []compliance.TimeEntry, target time.Time) compliance.Result {
	start, end := e.weekWindow(orNow(target))
	total := sumHours(entriesWithin(entries, start, end))
	ceiling := e.limits.AbsoluteWeeklyMaxHours

	if total <= ceiling {
		return pass(compliance.RuleAbsoluteWeeklyMax, refAbsoluteMax,
			fmt.Sprintf("Weekly total of %.2fh is within the absolute %.0fh maximum", total, ceiling))
	}
	return fail(compliance.RuleAbsoluteWeeklyMax, refAbsoluteMax, compliance.SeverityCritical,
		fmt.Sprintf("Weekly total of %.2fh exceeds the absolute %.0fh maximum", total, ceiling),
		"Remove shifts from this week; the absolute weekly maximum admits no exceptions")
}

// ValidateMinorRestrictions implements compliance.Validator. Workers of
// unknown or adult age pass unconditionally.
func (e *Engine) ValidateMinorRestrictions(entry compliance.TimeEntry, entries []compliance.TimeEntry, userAge *int) compliance.Result {
	if userAge == nil || *userAge >= e.limits.AdultAge {
		return pass(compliance.RuleMinorRestrictions, refMinors,
			"Worker is not a minor; no additional restrictions apply")
	}

	dayStart, dayEnd := e.dayWindow(entry.ClockIn)
	daily := sumHours(entriesWithin(entries, dayStart, dayEnd))
	weekStart, weekEnd := e.weekWindow(entry.ClockIn)
	weekly := sumHours(entriesWithin(entries, weekStart, weekEnd))

	if daily > e.limits.MinorMaxDailyHours {
		return fail(compliance.RuleMinorRestrictions, refMinors, compliance.SeverityCritical,
			fmt.Sprintf("Minor worked %.2fh today, above the %.0fh daily limit for workers under %d",
				daily, e.limits.MinorMaxDailyHours, e.limits.AdultAge),
			"Shorten the minor's shifts for this day immediately")
	}
	if weekly > e.limits.MinorMaxWeeklyHours {
		return fail(compliance.RuleMinorRestrictions, refMinors, compliance.SeverityCritical,
			fmt.Sprintf("Minor worked %.2fh this week, above the %.0fh weekly limit for workers under %d",
				weekly, e.limits.MinorMaxWeeklyHours, e.limits.AdultAge),
			"Reduce the minor's weekly schedule immediately")
	}
	return pass(compliance.RuleMinorRestrictions, refMinors,
		fmt.Sprintf("Minor within daily and weekly limits (%.2fh today, %.2fh this week)", daily, weekly))
}

// ValidatePregnantWorker implements compliance.Validator. Without a positive
// pregnancy flag the rule passes unconditionally.
func (e *Engine) ValidatePregnantWorker(entry compliance.TimeEntry, isPregnant *bool) compliance.Result {
	if isPregnant == nil || !*isPregnant {
		return pass(compliance.RulePregnantWorker, refPregnant,
			"No pregnancy protection applicable to this worker")
	}

	if e.inNightWindow(entry.ClockIn) {
		return fail(compliance.RulePregnantWorker, refPregnant, compliance.SeverityCritical,
			fmt.Sprintf("Clock-in at %s falls inside the night window", e.localClock(entry.ClockIn)),
			"Move the worker to a daytime shift")
	}
	if entry.ClockOut != nil && e.inNightWindow(*entry.ClockOut) {
		return fail(compliance.RulePregnantWorker, refPregnant, compliance.SeverityCritical,
			fmt.Sprintf("Clock-out at %s falls inside the night window", e.localClock(*entry.ClockOut)),
			"Move the worker to a daytime shift")
	}
	return pass(compliance.RulePregnantWorker, refPregnant,
		"Shift does not touch the night window")
}

// ValidateGeofence implements compliance.Validator.
func (e *Engine) ValidateGeofence(user, site compliance.Coordinates) compliance.Result {
	distance := utils.CalculateHaversineDistance(
		user.Latitude, user.Longitude,
		site.Latitude, site.Longitude,
	)

	if distance <= e.limits.GeofenceRadiusMeters {
		return pass(compliance.RuleGeofence, refGeofence,
			fmt.Sprintf("Clock-in registered %.0fm from the work site", distance))
	}

	sev := compliance.SeverityMedium
	if distance > e.limits.GeofenceCriticalMeters {
		sev = compliance.SeverityHigh
	}
	return fail(compliance.RuleGeofence, refGeofence, sev,
		fmt.Sprintf("Clock-in registered %.0fm from the work site (allowed %.0fm)",
			distance, e.limits.GeofenceRadiusMeters),
		"Verify the worker's location or review the site geofence radius")
}
