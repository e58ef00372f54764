package compliance

import (
	"time"
)

// Severity grades a failed (or, for overtime notices, an informational)
// verdict. The zero value means "no severity attached".
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RuleKind identifies one of the twelve compliance rules. The constants are
// declared in the fixed reporting order used by ValidateAll.
type RuleKind string

const (
	RuleDailyLimit        RuleKind = "daily_limit"
	RuleWeeklyLimit       RuleKind = "weekly_limit"
	RuleRestPeriod        RuleKind = "rest_period"
	RuleMandatoryBreak    RuleKind = "mandatory_break"
	RuleContinuousWork    RuleKind = "continuous_work"
	RuleWeeklyRest        RuleKind = "weekly_rest"
	RuleNightWork         RuleKind = "night_work"
	RuleOvertime          RuleKind = "overtime"
	RuleAbsoluteWeeklyMax RuleKind = "absolute_weekly_max"
	RuleMinorRestrictions RuleKind = "minor_restrictions"
	RulePregnantWorker    RuleKind = "pregnant_worker"
	RuleGeofence          RuleKind = "geofence"
)

type BreakType string

const (
	BreakTypePaid   BreakType = "paid"
	BreakTypeUnpaid BreakType = "unpaid"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// TimeEntry is one clock-in/clock-out record as seen by the validator.
// A nil ClockOut means the shift is still open; such entries contribute
// zero hours to every aggregate.
type TimeEntry struct {
	ID               string
	ClockIn          time.Time
	ClockOut         *time.Time
	BreakMinutes     int
	ClockInLocation  *Coordinates
	ClockOutLocation *Coordinates
}

// Completed reports whether the entry has been clocked out.
func (e TimeEntry) Completed() bool {
	return e.ClockOut != nil
}

// BreakEntry is one in-shift break, owned by a TimeEntry. A nil BreakEnd
// means the break is still open and contributes zero minutes.
type BreakEntry struct {
	TimeEntryID string
	BreakStart  time.Time
	BreakEnd    *time.Time
	BreakType   BreakType
}

// Minutes returns the break duration in minutes, zero for an open break.
func (b BreakEntry) Minutes() float64 {
	if b.BreakEnd == nil {
		return 0
	}
	d := b.BreakEnd.Sub(b.BreakStart)
	if d < 0 {
		return 0
	}
	return d.Minutes()
}

// Result is the verdict of one rule evaluation.
type Result struct {
	Rule              RuleKind `json:"rule"`
	Pass              bool     `json:"pass"`
	Severity          Severity `json:"severity,omitempty"`
	Message           string   `json:"message"`
	RuleReference     string   `json:"rule_reference"`
	RecommendedAction string   `json:"recommended_action,omitempty"`
}

// Context bundles every input ValidateAll needs. Callers assemble it from
// persisted state; the validator never mutates it.
type Context struct {
	CurrentEntry TimeEntry
	AllEntries   []TimeEntry
	Breaks       []BreakEntry
	UserAge      *int
	IsPregnant   *bool
	UserCoords   *Coordinates
	SiteCoords   *Coordinates
}
