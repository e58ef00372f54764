package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/timesheet"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/database"
)

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) timesheet.BreakRepository {
	return &breakRepository{db: db}
}

const breakColumns = `
	id, time_entry_id, employee_id, company_id, break_start, break_end, break_type,
	created_at, updated_at
`

func scanBreak(row pgx.Row) (timesheet.BreakEntry, error) {
	var brk timesheet.BreakEntry
	err := row.Scan(
		&brk.ID, &brk.TimeEntryID, &brk.EmployeeID, &brk.CompanyID,
		&brk.BreakStart, &brk.BreakEnd, &brk.BreakType,
		&brk.CreatedAt, &brk.UpdatedAt,
	)
	return brk, err
}

// Create implements timesheet.BreakRepository.
func (r *breakRepository) Create(ctx context.Context, brk timesheet.BreakEntry) (timesheet.BreakEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO break_entries (
			id, time_entry_id, employee_id, company_id, break_start, break_type
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		brk.ID,
		brk.TimeEntryID,
		brk.EmployeeID,
		brk.CompanyID,
		brk.BreakStart,
		brk.BreakType,
	).Scan(&brk.CreatedAt, &brk.UpdatedAt)

	if err != nil {
		return timesheet.BreakEntry{}, fmt.Errorf("failed to create break: %w", err)
	}

	return brk, nil
}

// GetOpenBreak implements timesheet.BreakRepository. A nil break with a nil
// error means no break is in progress for the entry.
func (r *breakRepository) GetOpenBreak(ctx context.Context, timeEntryID string) (*timesheet.BreakEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + breakColumns + `
		FROM break_entries
		WHERE time_entry_id = $1
		  AND break_end IS NULL
		ORDER BY break_start DESC
		LIMIT 1
	`

	brk, err := scanBreak(q.QueryRow(ctx, query, timeEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}
	return &brk, nil
}

// Update implements timesheet.BreakRepository.
func (r *breakRepository) Update(ctx context.Context, brk timesheet.BreakEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE break_entries
		SET break_end = $1,
		    updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, brk.BreakEnd, brk.ID, brk.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrNoOpenBreak
	}
	return nil
}

// ListByEmployee implements timesheet.BreakRepository.
func (r *breakRepository) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]timesheet.BreakEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + breakColumns + `
		FROM break_entries
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY break_start ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var breaks []timesheet.BreakEntry
	for rows.Next() {
		brk, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breaks: %w", err)
	}

	return breaks, nil
}
