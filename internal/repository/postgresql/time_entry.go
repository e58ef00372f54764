package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/timesheet"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/database"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timesheet.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

const timeEntryColumns = `
	id, employee_id, company_id, clock_in, clock_out, break_minutes,
	clock_in_latitude, clock_in_longitude, clock_out_latitude, clock_out_longitude,
	created_at, updated_at
`

func scanTimeEntry(row pgx.Row) (timesheet.TimeEntry, error) {
	var entry timesheet.TimeEntry
	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.CompanyID, &entry.ClockIn, &entry.ClockOut, &entry.BreakMinutes,
		&entry.ClockInLatitude, &entry.ClockInLongitude, &entry.ClockOutLatitude, &entry.ClockOutLongitude,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	return entry, err
}

// Create implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, entry timesheet.TimeEntry) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			id, employee_id, company_id, clock_in, break_minutes,
			clock_in_latitude, clock_in_longitude
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.CompanyID,
		entry.ClockIn,
		entry.BreakMinutes,
		entry.ClockInLatitude,
		entry.ClockInLongitude,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return timesheet.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string, companyID string) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE id = $1 AND company_id = $2
	`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.TimeEntry{}, err
		}
		return timesheet.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}
	return entry, nil
}

// GetOpenEntry implements timesheet.TimeEntryRepository. A nil entry with a
// nil error means the employee has no open shift.
func (r *timeEntryRepository) GetOpenEntry(ctx context.Context, employeeID string, companyID string) (*timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE employee_id = $1
		  AND company_id = $2
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open time entry: %w", err)
	}
	return &entry, nil
}

// Update implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) Update(ctx context.Context, entry timesheet.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET clock_out = $1,
		    break_minutes = $2,
		    clock_out_latitude = $3,
		    clock_out_longitude = $4,
		    updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	tag, err := q.Exec(ctx, query,
		entry.ClockOut,
		entry.BreakMinutes,
		entry.ClockOutLatitude,
		entry.ClockOutLongitude,
		entry.ID,
		entry.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}
	return nil
}

// List implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, employeeID string, filter timesheet.ListFilter, companyID string) ([]timesheet.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"employee_id = $1", "company_id = $2"}
	args := []interface{}{employeeID, companyID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("clock_in::date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("clock_in::date <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM time_entries WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries
		WHERE %s
		ORDER BY clock_in DESC
		LIMIT $%d OFFSET $%d
	`, timeEntryColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, total, nil
}

// ListHistory implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) ListHistory(ctx context.Context, employeeID string, companyID string) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY clock_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry history: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entry history: %w", err)
	}

	return entries, nil
}
