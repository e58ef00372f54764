package compliance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/employee"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/timesheet"
)

// ComplianceServiceImpl assembles validation contexts from persisted state
// and runs the engine over them.
type ComplianceServiceImpl struct {
	engine *Engine
	timesheet.TimeEntryRepository
	timesheet.BreakRepository
	employee.EmployeeRepository
}

func NewComplianceService(
	engine *Engine,
	entryRepo timesheet.TimeEntryRepository,
	breakRepo timesheet.BreakRepository,
	employeeRepo employee.EmployeeRepository,
) compliance.Service {
	return &ComplianceServiceImpl{
		engine:              engine,
		TimeEntryRepository: entryRepo,
		BreakRepository:     breakRepo,
		EmployeeRepository:  employeeRepo,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// buildContext loads the entry, the worker's complete history and breaks,
// and the worker profile, and projects them onto the validator's inputs.
func (s *ComplianceServiceImpl) buildContext(ctx context.Context, entryID string) (compliance.Context, timesheet.TimeEntry, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return compliance.Context{}, timesheet.TimeEntry{}, err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, entryID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return compliance.Context{}, timesheet.TimeEntry{}, timesheet.ErrEntryNotFound
		}
		return compliance.Context{}, timesheet.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	history, err := s.TimeEntryRepository.ListHistory(ctx, entry.EmployeeID, companyID)
	if err != nil {
		return compliance.Context{}, timesheet.TimeEntry{}, fmt.Errorf("failed to list entry history: %w", err)
	}

	breaks, err := s.BreakRepository.ListByEmployee(ctx, entry.EmployeeID, companyID)
	if err != nil {
		return compliance.Context{}, timesheet.TimeEntry{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, entry.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return compliance.Context{}, timesheet.TimeEntry{}, employee.ErrEmployeeNotFound
		}
		return compliance.Context{}, timesheet.TimeEntry{}, fmt.Errorf("failed to get employee: %w", err)
	}

	vc := compliance.Context{
		CurrentEntry: entry.ToValidation(),
		AllEntries:   timesheet.ToValidationEntries(history),
		Breaks:       timesheet.ToValidationBreaks(breaks),
		UserAge:      emp.AgeAt(entry.ClockIn),
		IsPregnant:   emp.IsPregnant,
	}
	if entry.ClockInLatitude != nil && entry.ClockInLongitude != nil {
		vc.UserCoords = &compliance.Coordinates{
			Latitude:  *entry.ClockInLatitude,
			Longitude: *entry.ClockInLongitude,
		}
	}
	if emp.SiteLatitude != nil && emp.SiteLongitude != nil {
		vc.SiteCoords = &compliance.Coordinates{
			Latitude:  *emp.SiteLatitude,
			Longitude: *emp.SiteLongitude,
		}
	}
	return vc, entry, nil
}

// ValidateEntry implements compliance.Service.
func (s *ComplianceServiceImpl) ValidateEntry(ctx context.Context, entryID string) (compliance.ReportResponse, error) {
	vc, entry, err := s.buildContext(ctx, entryID)
	if err != nil {
		return compliance.ReportResponse{}, err
	}

	results, err := s.engine.ValidateAll(vc)
	if err != nil {
		return compliance.ReportResponse{}, fmt.Errorf("failed to run compliance validation: %w", err)
	}

	report := compliance.ReportResponse{
		EntryID:     entry.ID,
		EmployeeID:  entry.EmployeeID,
		EvaluatedAt: time.Now().UTC().Format(time.RFC3339),
		Results:     results,
	}
	report.Summarize()
	return report, nil
}

// ValidateEntryRule implements compliance.Service.
func (s *ComplianceServiceImpl) ValidateEntryRule(ctx context.Context, entryID string, rule compliance.RuleKind) (compliance.Result, error) {
	vc, _, err := s.buildContext(ctx, entryID)
	if err != nil {
		return compliance.Result{}, err
	}
	return s.engine.ValidateRule(rule, vc)
}
