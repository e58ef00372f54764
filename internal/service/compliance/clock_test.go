package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
)

func TestStartOfWeek(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("monday maps to itself", func(t *testing.T) {
		got := engine.startOfWeek(monday(t, 14, 30))
		assert.Equal(t, monday(t, 0, 0), got)
	})

	t.Run("sunday maps to previous monday", func(t *testing.T) {
		sunday := madridTime(t, 2024, time.May, 12, 23, 59, 59)
		assert.Equal(t, monday(t, 0, 0), engine.startOfWeek(sunday))
	})

	t.Run("sunday and next monday fall in different weeks", func(t *testing.T) {
		sunday := madridTime(t, 2024, time.May, 12, 23, 59, 59)
		nextMonday := madridTime(t, 2024, time.May, 13, 0, 0, 0)
		assert.NotEqual(t, engine.startOfWeek(sunday), engine.startOfWeek(nextMonday))
	})
}

func TestDayWindow_SpringForward(t *testing.T) {
	engine := newTestEngine(t)

	// 2024-03-31 has 23 local hours in Madrid, so the fixed 24h window
	// reaches into 01:00 of April 1st.
	start, end := engine.dayWindow(madridTime(t, 2024, time.March, 31, 10, 0, 0))

	assert.Equal(t, madridTime(t, 2024, time.March, 31, 0, 0, 0), start)
	assert.Equal(t, madridTime(t, 2024, time.April, 1, 1, 0, 0), end)

	earlyNext := closedEntry("n", madridTime(t, 2024, time.April, 1, 0, 30, 0), 2, 0)
	assert.Len(t, entriesWithin([]compliance.TimeEntry{earlyNext}, start, end), 1)
}

func TestEntriesWithin_BucketsByClockInOnly(t *testing.T) {
	engine := newTestEngine(t)

	start, end := engine.dayWindow(monday(t, 0, 0))

	// Starts Sunday, ends Monday: belongs to Sunday's window.
	overnight := closedEntry("o", madridTime(t, 2024, time.May, 5, 22, 0, 0), 8, 0)
	inside := closedEntry("i", monday(t, 23, 59), 4, 0)

	got := entriesWithin([]compliance.TimeEntry{overnight, inside}, start, end)
	assert.Len(t, got, 1)
	assert.Equal(t, "i", got[0].ID)
}

func TestCompletedEntries(t *testing.T) {
	entries := []compliance.TimeEntry{
		closedEntry("a", time.Now(), 8, 0),
		openEntry("b", time.Now()),
	}

	got := completedEntries(entries)
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestOrNow(t *testing.T) {
	fixed := time.Date(2024, time.May, 6, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, orNow(fixed))
	assert.WithinDuration(t, time.Now(), orNow(time.Time{}), time.Second)
}
