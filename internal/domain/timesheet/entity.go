package timesheet

import (
	"time"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
)

type TimeEntry struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	ClockIn           time.Time
	ClockOut          *time.Time
	BreakMinutes      int
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}

type BreakEntry struct {
	ID          string
	TimeEntryID string
	EmployeeID  string
	CompanyID   string
	BreakStart  time.Time
	BreakEnd    *time.Time
	BreakType   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func coords(lat, lon *float64) *compliance.Coordinates {
	if lat == nil || lon == nil {
		return nil
	}
	return &compliance.Coordinates{Latitude: *lat, Longitude: *lon}
}

// ToValidation projects the persisted entry onto the validator's input type.
func (e TimeEntry) ToValidation() compliance.TimeEntry {
	return compliance.TimeEntry{
		ID:               e.ID,
		ClockIn:          e.ClockIn,
		ClockOut:         e.ClockOut,
		BreakMinutes:     e.BreakMinutes,
		ClockInLocation:  coords(e.ClockInLatitude, e.ClockInLongitude),
		ClockOutLocation: coords(e.ClockOutLatitude, e.ClockOutLongitude),
	}
}

// ToValidation projects the persisted break onto the validator's input type.
func (b BreakEntry) ToValidation() compliance.BreakEntry {
	return compliance.BreakEntry{
		TimeEntryID: b.TimeEntryID,
		BreakStart:  b.BreakStart,
		BreakEnd:    b.BreakEnd,
		BreakType:   compliance.BreakType(b.BreakType),
	}
}

// ToValidationEntries converts a persisted history in one pass.
func ToValidationEntries(entries []TimeEntry) []compliance.TimeEntry {
	out := make([]compliance.TimeEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ToValidation())
	}
	return out
}

// ToValidationBreaks converts persisted breaks in one pass.
func ToValidationBreaks(breaks []BreakEntry) []compliance.BreakEntry {
	out := make([]compliance.BreakEntry, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, b.ToValidation())
	}
	return out
}
