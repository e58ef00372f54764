package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
)

var reportingOrder = []compliance.RuleKind{
	compliance.RuleDailyLimit,
	compliance.RuleWeeklyLimit,
	compliance.RuleRestPeriod,
	compliance.RuleMandatoryBreak,
	compliance.RuleContinuousWork,
	compliance.RuleWeeklyRest,
	compliance.RuleNightWork,
	compliance.RuleOvertime,
	compliance.RuleAbsoluteWeeklyMax,
	compliance.RuleMinorRestrictions,
	compliance.RulePregnantWorker,
	compliance.RuleGeofence,
}

func TestValidateAll_CompliantWeek(t *testing.T) {
	engine := newTestEngine(t)

	age := 25
	notPregnant := false
	site := compliance.Coordinates{Latitude: 40.4168, Longitude: -3.7038}

	entry := closedEntry("e1", monday(t, 9, 0), 8, 30) // 09:00-17:00, 7.5h net
	vc := compliance.Context{
		CurrentEntry: entry,
		AllEntries:   []compliance.TimeEntry{entry},
		UserAge:      &age,
		IsPregnant:   &notPregnant,
		UserCoords:   &site,
		SiteCoords:   &site,
	}

	results, err := engine.ValidateAll(vc)
	require.NoError(t, err)
	require.Len(t, results, 12)

	for i, result := range results {
		assert.Equal(t, reportingOrder[i], result.Rule)
		assert.True(t, result.Pass, "rule %s should pass: %s", result.Rule, result.Message)
	}
	assert.Contains(t, results[0].Message, "7.50h")
	assert.Contains(t, results[1].Message, "7.50h")
}

func TestValidateAll_SixTenHourDays(t *testing.T) {
	engine := newTestEngine(t)

	age := 25
	notPregnant := false

	var entries []compliance.TimeEntry
	for d := 0; d < 6; d++ {
		in := monday(t, 8, 0).AddDate(0, 0, d)
		entries = append(entries, closedEntry(string(rune('a'+d)), in, 10, 0))
	}

	vc := compliance.Context{
		CurrentEntry: entries[0],
		AllEntries:   entries,
		UserAge:      &age,
		IsPregnant:   &notPregnant,
	}

	results, err := engine.ValidateAll(vc)
	require.NoError(t, err)
	require.Len(t, results, 12)

	byRule := make(map[compliance.RuleKind]compliance.Result, len(results))
	for _, result := range results {
		byRule[result.Rule] = result
	}

	daily := byRule[compliance.RuleDailyLimit]
	assert.False(t, daily.Pass)
	assert.Equal(t, compliance.SeverityHigh, daily.Severity) // 10h is 1h over

	weekly := byRule[compliance.RuleWeeklyLimit]
	assert.False(t, weekly.Pass)
	assert.Equal(t, compliance.SeverityMedium, weekly.Severity) // 20h over

	overtime := byRule[compliance.RuleOvertime]
	assert.False(t, overtime.Pass)
	assert.Equal(t, compliance.SeverityCritical, overtime.Severity)

	absolute := byRule[compliance.RuleAbsoluteWeeklyMax]
	assert.False(t, absolute.Pass)
	assert.Equal(t, compliance.SeverityCritical, absolute.Severity)

	// 14h between shifts satisfies the rest rule but not the weekly rest.
	assert.True(t, byRule[compliance.RuleRestPeriod].Pass)
	assert.False(t, byRule[compliance.RuleWeeklyRest].Pass)

	// 10h without any break violates both break rules.
	assert.False(t, byRule[compliance.RuleMandatoryBreak].Pass)
	assert.False(t, byRule[compliance.RuleContinuousWork].Pass)

	// Day work, adult, not pregnant, no coordinates.
	assert.True(t, byRule[compliance.RuleNightWork].Pass)
	assert.True(t, byRule[compliance.RuleMinorRestrictions].Pass)
	assert.True(t, byRule[compliance.RulePregnantWorker].Pass)
	assert.True(t, byRule[compliance.RuleGeofence].Pass)
}

func TestValidateAll_MissingCoordinatesSkipGeofence(t *testing.T) {
	engine := newTestEngine(t)

	entry := closedEntry("e1", monday(t, 9, 0), 8, 30)
	vc := compliance.Context{
		CurrentEntry: entry,
		AllEntries:   []compliance.TimeEntry{entry},
	}

	results, err := engine.ValidateAll(vc)
	require.NoError(t, err)

	geofence := results[len(results)-1]
	assert.Equal(t, compliance.RuleGeofence, geofence.Rule)
	assert.True(t, geofence.Pass)
	assert.Contains(t, geofence.Message, "not evaluated")
}

func TestValidateAll_EntryMissingFromHistory(t *testing.T) {
	engine := newTestEngine(t)

	vc := compliance.Context{
		CurrentEntry: closedEntry("current", monday(t, 9, 0), 8, 0),
		AllEntries:   []compliance.TimeEntry{closedEntry("other", monday(t, 9, 0), 8, 0)},
	}

	results, err := engine.ValidateAll(vc)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, compliance.ErrEntryNotInHistory)
}

func TestValidateAll_Idempotent(t *testing.T) {
	engine := newTestEngine(t)

	entry := closedEntry("e1", monday(t, 9, 0), 10, 0)
	vc := compliance.Context{
		CurrentEntry: entry,
		AllEntries:   []compliance.TimeEntry{entry},
	}

	first, err := engine.ValidateAll(vc)
	require.NoError(t, err)
	second, err := engine.ValidateAll(vc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidateAll_DoesNotMutateInput(t *testing.T) {
	engine := newTestEngine(t)

	// History deliberately out of chronological order; rest and weekly rest
	// sort internal copies only.
	entries := []compliance.TimeEntry{
		closedEntry("b", madridTime(t, 2024, time.May, 7, 9, 0, 0), 8, 0),
		closedEntry("a", monday(t, 9, 0), 8, 0),
	}
	vc := compliance.Context{CurrentEntry: entries[0], AllEntries: entries}

	_, err := engine.ValidateAll(vc)
	require.NoError(t, err)

	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, "a", entries[1].ID)
}

func TestValidateRule(t *testing.T) {
	engine := newTestEngine(t)

	entry := closedEntry("e1", monday(t, 9, 0), 10, 0)
	vc := compliance.Context{CurrentEntry: entry, AllEntries: []compliance.TimeEntry{entry}}

	t.Run("known rule", func(t *testing.T) {
		result, err := engine.ValidateRule(compliance.RuleDailyLimit, vc)
		require.NoError(t, err)
		assert.Equal(t, compliance.RuleDailyLimit, result.Rule)
		assert.False(t, result.Pass)
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := engine.ValidateRule(compliance.RuleKind("nonsense"), vc)
		assert.ErrorIs(t, err, compliance.ErrUnknownRule)
	})
}

func TestNewEngine_InvalidTimezone(t *testing.T) {
	limits := compliance.DefaultLimits()
	limits.Timezone = "Not/AZone"

	_, err := NewEngine(limits)
	assert.ErrorIs(t, err, compliance.ErrInvalidTimezone)
}
