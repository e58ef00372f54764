package timesheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/employee"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/timesheet"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/database"
	"github.com/jornada-hq/jornada-backend-go/internal/repository/postgresql"
	compliancesvc "github.com/jornada-hq/jornada-backend-go/internal/service/compliance"
)

type TimesheetServiceImpl struct {
	db     database.TxBeginner
	engine *compliancesvc.Engine
	timesheet.TimeEntryRepository
	timesheet.BreakRepository
	employee.EmployeeRepository
}

func NewTimesheetService(
	db database.TxBeginner,
	engine *compliancesvc.Engine,
	entryRepo timesheet.TimeEntryRepository,
	breakRepo timesheet.BreakRepository,
	employeeRepo employee.EmployeeRepository,
) timesheet.Service {
	return &TimesheetServiceImpl{
		db:                  db,
		engine:              engine,
		TimeEntryRepository: entryRepo,
		BreakRepository:     breakRepo,
		EmployeeRepository:  employeeRepo,
	}
}

func claimsFromContext(ctx context.Context) (employeeID string, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, companyID, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func workedHoursPtr(entry timesheet.TimeEntry) *float64 {
	if entry.ClockOut == nil {
		return nil
	}
	net := entry.ClockOut.Sub(entry.ClockIn) - time.Duration(entry.BreakMinutes)*time.Minute
	if net < 0 {
		net = 0
	}
	hours := net.Hours()
	return &hours
}

func toEntryResponse(entry timesheet.TimeEntry, report *compliance.ReportResponse) timesheet.TimeEntryResponse {
	return timesheet.TimeEntryResponse{
		ID:                entry.ID,
		EmployeeID:        entry.EmployeeID,
		EmployeeName:      entry.EmployeeName,
		ClockIn:           entry.ClockIn.Format("2006-01-02 15:04:05"),
		ClockOut:          timePtrToString(entry.ClockOut),
		BreakMinutes:      entry.BreakMinutes,
		WorkedHours:       workedHoursPtr(entry),
		ClockInLatitude:   entry.ClockInLatitude,
		ClockInLongitude:  entry.ClockInLongitude,
		ClockOutLatitude:  entry.ClockOutLatitude,
		ClockOutLongitude: entry.ClockOutLongitude,
		Compliance:        report,
		CreatedAt:         entry.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         entry.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toBreakResponse(brk timesheet.BreakEntry) timesheet.BreakResponse {
	return timesheet.BreakResponse{
		ID:          brk.ID,
		TimeEntryID: brk.TimeEntryID,
		BreakStart:  brk.BreakStart.Format("2006-01-02 15:04:05"),
		BreakEnd:    timePtrToString(brk.BreakEnd),
		BreakType:   brk.BreakType,
	}
}

// ClockIn implements timesheet.Service.
func (s *TimesheetServiceImpl) ClockIn(ctx context.Context, req timesheet.ClockInRequest) (timesheet.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimeEntryResponse{}, err
	}

	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.TimeEntryResponse{}, err
	}

	open, err := s.TimeEntryRepository.GetOpenEntry(ctx, employeeID, companyID)
	if err != nil {
		return timesheet.TimeEntryResponse{}, fmt.Errorf("failed to check for open entry: %w", err)
	}
	if open != nil {
		return timesheet.TimeEntryResponse{}, timesheet.ErrOpenEntryExists
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.TimeEntryResponse{}, employee.ErrEmployeeNotFound
		}
		return timesheet.TimeEntryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	// Geofence pre-check against the assigned work site, when both the
	// request and the profile carry coordinates.
	if req.Latitude != nil && req.Longitude != nil && emp.SiteLatitude != nil && emp.SiteLongitude != nil {
		verdict := s.engine.ValidateGeofence(
			compliance.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude},
			compliance.Coordinates{Latitude: *emp.SiteLatitude, Longitude: *emp.SiteLongitude},
		)
		if !verdict.Pass {
			return timesheet.TimeEntryResponse{}, timesheet.ErrOutsideAllowedRadius
		}
	}

	entry := timesheet.TimeEntry{
		ID:               uuid.Must(uuid.NewV7()).String(),
		EmployeeID:       employeeID,
		CompanyID:        companyID,
		ClockIn:          time.Now().UTC(),
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
	}

	created, err := s.TimeEntryRepository.Create(ctx, entry)
	if err != nil {
		return timesheet.TimeEntryResponse{}, fmt.Errorf("failed to create time entry: %w", err)
	}
	return toEntryResponse(created, nil), nil
}

// ClockOut implements timesheet.Service. On success the closed entry is
// re-validated against the full history and the compliance report is
// attached to the response.
func (s *TimesheetServiceImpl) ClockOut(ctx context.Context, req timesheet.ClockOutRequest) (timesheet.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimeEntryResponse{}, err
	}

	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.TimeEntryResponse{}, err
	}

	open, err := s.TimeEntryRepository.GetOpenEntry(ctx, employeeID, companyID)
	if err != nil {
		return timesheet.TimeEntryResponse{}, fmt.Errorf("failed to check for open entry: %w", err)
	}
	if open == nil {
		return timesheet.TimeEntryResponse{}, timesheet.ErrNoOpenEntry
	}

	now := time.Now().UTC()

	// Closing the open break and closing the entry are one atomic change;
	// a failure between the two must not lose the accumulated break minutes.
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// An unfinished break ends at clock-out.
		openBreak, err := s.BreakRepository.GetOpenBreak(txCtx, open.ID)
		if err != nil {
			return fmt.Errorf("failed to check for open break: %w", err)
		}
		if openBreak != nil {
			openBreak.BreakEnd = &now
			if err := s.BreakRepository.Update(txCtx, *openBreak); err != nil {
				return fmt.Errorf("failed to close open break: %w", err)
			}
			if openBreak.BreakType == string(compliance.BreakTypeUnpaid) {
				open.BreakMinutes += int(math.Round(now.Sub(openBreak.BreakStart).Minutes()))
			}
		}

		open.ClockOut = &now
		open.ClockOutLatitude = req.Latitude
		open.ClockOutLongitude = req.Longitude
		if req.BreakMinutes > open.BreakMinutes {
			open.BreakMinutes = req.BreakMinutes
		}

		if err := s.TimeEntryRepository.Update(txCtx, *open); err != nil {
			return fmt.Errorf("failed to update time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return timesheet.TimeEntryResponse{}, err
	}

	report, err := s.validateEntry(ctx, *open, companyID)
	if err != nil {
		return timesheet.TimeEntryResponse{}, err
	}
	return toEntryResponse(*open, report), nil
}

// validateEntry runs the twelve-rule engine for a just-closed entry.
func (s *TimesheetServiceImpl) validateEntry(ctx context.Context, entry timesheet.TimeEntry, companyID string) (*compliance.ReportResponse, error) {
	history, err := s.TimeEntryRepository.ListHistory(ctx, entry.EmployeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry history: %w", err)
	}
	breaks, err := s.BreakRepository.ListByEmployee(ctx, entry.EmployeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, entry.EmployeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	vc := compliance.Context{
		CurrentEntry: entry.ToValidation(),
		AllEntries:   timesheet.ToValidationEntries(history),
		Breaks:       timesheet.ToValidationBreaks(breaks),
		UserAge:      emp.AgeAt(entry.ClockIn),
		IsPregnant:   emp.IsPregnant,
	}
	if entry.ClockInLatitude != nil && entry.ClockInLongitude != nil {
		vc.UserCoords = &compliance.Coordinates{Latitude: *entry.ClockInLatitude, Longitude: *entry.ClockInLongitude}
	}
	if emp.SiteLatitude != nil && emp.SiteLongitude != nil {
		vc.SiteCoords = &compliance.Coordinates{Latitude: *emp.SiteLatitude, Longitude: *emp.SiteLongitude}
	}

	results, err := s.engine.ValidateAll(vc)
	if err != nil {
		return nil, fmt.Errorf("failed to run compliance validation: %w", err)
	}
	report := &compliance.ReportResponse{
		EntryID:     entry.ID,
		EmployeeID:  entry.EmployeeID,
		EvaluatedAt: time.Now().UTC().Format(time.RFC3339),
		Results:     results,
	}
	report.Summarize()
	return report, nil
}

// StartBreak implements timesheet.Service.
func (s *TimesheetServiceImpl) StartBreak(ctx context.Context, req timesheet.StartBreakRequest) (timesheet.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BreakResponse{}, err
	}

	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.BreakResponse{}, err
	}

	open, err := s.TimeEntryRepository.GetOpenEntry(ctx, employeeID, companyID)
	if err != nil {
		return timesheet.BreakResponse{}, fmt.Errorf("failed to check for open entry: %w", err)
	}
	if open == nil {
		return timesheet.BreakResponse{}, timesheet.ErrNoOpenEntry
	}

	openBreak, err := s.BreakRepository.GetOpenBreak(ctx, open.ID)
	if err != nil {
		return timesheet.BreakResponse{}, fmt.Errorf("failed to check for open break: %w", err)
	}
	if openBreak != nil {
		return timesheet.BreakResponse{}, timesheet.ErrOpenBreakExists
	}

	brk := timesheet.BreakEntry{
		ID:          uuid.Must(uuid.NewV7()).String(),
		TimeEntryID: open.ID,
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		BreakStart:  time.Now().UTC(),
		BreakType:   req.BreakType,
	}

	created, err := s.BreakRepository.Create(ctx, brk)
	if err != nil {
		return timesheet.BreakResponse{}, fmt.Errorf("failed to create break: %w", err)
	}
	return toBreakResponse(created), nil
}

// EndBreak implements timesheet.Service.
func (s *TimesheetServiceImpl) EndBreak(ctx context.Context) (timesheet.BreakResponse, error) {
	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.BreakResponse{}, err
	}

	open, err := s.TimeEntryRepository.GetOpenEntry(ctx, employeeID, companyID)
	if err != nil {
		return timesheet.BreakResponse{}, fmt.Errorf("failed to check for open entry: %w", err)
	}
	if open == nil {
		return timesheet.BreakResponse{}, timesheet.ErrNoOpenEntry
	}

	openBreak, err := s.BreakRepository.GetOpenBreak(ctx, open.ID)
	if err != nil {
		return timesheet.BreakResponse{}, fmt.Errorf("failed to check for open break: %w", err)
	}
	if openBreak == nil {
		return timesheet.BreakResponse{}, timesheet.ErrNoOpenBreak
	}

	now := time.Now().UTC()
	openBreak.BreakEnd = &now

	// The break row and the entry's aggregate break minutes stay in sync
	// inside one transaction.
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.BreakRepository.Update(txCtx, *openBreak); err != nil {
			return fmt.Errorf("failed to update break: %w", err)
		}
		if openBreak.BreakType == string(compliance.BreakTypeUnpaid) {
			open.BreakMinutes += int(math.Round(now.Sub(openBreak.BreakStart).Minutes()))
			if err := s.TimeEntryRepository.Update(txCtx, *open); err != nil {
				return fmt.Errorf("failed to update time entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return timesheet.BreakResponse{}, err
	}
	return toBreakResponse(*openBreak), nil
}

// GetMyEntries implements timesheet.Service.
func (s *TimesheetServiceImpl) GetMyEntries(ctx context.Context, filter timesheet.ListFilter) (timesheet.ListEntriesResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListEntriesResponse{}, err
	}

	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.ListEntriesResponse{}, err
	}

	entries, total, err := s.TimeEntryRepository.List(ctx, employeeID, filter, companyID)
	if err != nil {
		return timesheet.ListEntriesResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	resp := timesheet.ListEntriesResponse{
		Entries:    make([]timesheet.TimeEntryResponse, 0, len(entries)),
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(entry, nil))
	}
	return resp, nil
}

// GetEntry implements timesheet.Service.
func (s *TimesheetServiceImpl) GetEntry(ctx context.Context, id string) (timesheet.TimeEntryResponse, error) {
	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.TimeEntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.TimeEntryResponse{}, timesheet.ErrEntryNotFound
		}
		return timesheet.TimeEntryResponse{}, fmt.Errorf("failed to get time entry: %w", err)
	}
	if entry.EmployeeID != employeeID {
		return timesheet.TimeEntryResponse{}, timesheet.ErrUnauthorized
	}
	return toEntryResponse(entry, nil), nil
}
