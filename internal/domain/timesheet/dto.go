package timesheet

import (
	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func validateCoords(errs validator.ValidationErrors, lat, lon *float64) validator.ValidationErrors {
	if (lat == nil) != (lon == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateCoords(errs, r.Latitude, r.Longitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	BreakMinutes int      `json:"break_minutes"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateCoords(errs, r.Latitude, r.Longitude)
	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StartBreakRequest struct {
	BreakType string `json:"break_type"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.BreakType) {
		r.BreakType = string(compliance.BreakTypeUnpaid)
	}
	if !validator.IsInSlice(r.BreakType, []string{
		string(compliance.BreakTypePaid),
		string(compliance.BreakTypeUnpaid),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type must be paid or unpaid",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimeEntryResponse struct {
	ID                string                       `json:"id"`
	EmployeeID        string                       `json:"employee_id"`
	EmployeeName      *string                      `json:"employee_name,omitempty"`
	ClockIn           string                       `json:"clock_in"`
	ClockOut          *string                      `json:"clock_out,omitempty"`
	BreakMinutes      int                          `json:"break_minutes"`
	WorkedHours       *float64                     `json:"worked_hours,omitempty"`
	ClockInLatitude   *float64                     `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64                     `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64                     `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64                     `json:"clock_out_longitude,omitempty"`
	Compliance        *compliance.ReportResponse   `json:"compliance,omitempty"`
	CreatedAt         string                       `json:"created_at"`
	UpdatedAt         string                       `json:"updated_at"`
}

type BreakResponse struct {
	ID          string  `json:"id"`
	TimeEntryID string  `json:"time_entry_id"`
	BreakStart  string  `json:"break_start"`
	BreakEnd    *string `json:"break_end,omitempty"`
	BreakType   string  `json:"break_type"`
}

type ListEntriesResponse struct {
	Entries    []TimeEntryResponse `json:"entries"`
	TotalItems int64               `json:"total_items"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

type ListFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
