package compliance

// Limits carries every legal threshold the rule engine evaluates against.
// Defaults encode the Spanish Estatuto de los Trabajadores; per-jurisdiction
// deployments override fields via configuration instead of code changes.
type Limits struct {
	// Timezone is the IANA reference timezone all day/week windows and the
	// night window are computed in.
	Timezone string

	MaxDailyHours          float64
	MaxWeeklyHours         float64
	AbsoluteWeeklyMaxHours float64

	// MinRestBetweenShiftsHours is the rest required between the clock-out
	// of one shift and the clock-in of the next.
	MinRestBetweenShiftsHours float64

	// MinWeeklyRestHours is the single continuous weekly rest interval.
	MinWeeklyRestHours float64

	// BreakRequiredAfterHours is the gross shift length above which a break
	// of at least MinBreakMinutes becomes mandatory.
	BreakRequiredAfterHours float64
	MinBreakMinutes         float64

	MaxContinuousWorkHours float64

	// Night window [NightStartHour, NightEndHour) in local wall-clock hours,
	// wrapping midnight.
	NightStartHour int
	NightEndHour   int
	MaxNightHours  float64

	// Severity escalation margins.
	DailyCriticalMarginHours float64
	WeeklyMediumMarginHours  float64

	GeofenceRadiusMeters   float64
	GeofenceCriticalMeters float64

	AdultAge            int
	MinorMaxDailyHours  float64
	MinorMaxWeeklyHours float64
}

// DefaultLimits returns the Spanish labor-law thresholds.
func DefaultLimits() Limits {
	return Limits{
		Timezone:                  "Europe/Madrid",
		MaxDailyHours:             9,
		MaxWeeklyHours:            40,
		AbsoluteWeeklyMaxHours:    48,
		MinRestBetweenShiftsHours: 12,
		MinWeeklyRestHours:        35,
		BreakRequiredAfterHours:   6,
		MinBreakMinutes:           15,
		MaxContinuousWorkHours:    9,
		NightStartHour:            20,
		NightEndHour:              6,
		MaxNightHours:             8,
		DailyCriticalMarginHours:  2,
		WeeklyMediumMarginHours:   4,
		GeofenceRadiusMeters:      50,
		GeofenceCriticalMeters:    100,
		AdultAge:                  18,
		MinorMaxDailyHours:        8,
		MinorMaxWeeklyHours:       40,
	}
}
