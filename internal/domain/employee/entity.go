package employee

import (
	"time"
)

type Employee struct {
	ID            string
	CompanyID     string
	FullName      string
	BirthDate     *time.Time
	IsPregnant    *bool
	SiteLatitude  *float64
	SiteLongitude *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// AgeAt returns the employee's age in whole years at t, or nil when no
// birth date is on file.
func (e Employee) AgeAt(t time.Time) *int {
	if e.BirthDate == nil {
		return nil
	}
	age := t.Year() - e.BirthDate.Year()
	if e.BirthDate.AddDate(age, 0, 0).After(t) {
		age--
	}
	return &age
}
