package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/employee"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/timesheet"
	compliancesvc "github.com/jornada-hq/jornada-backend-go/internal/service/compliance"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	tx *fakeTx
}

func (d *fakeDB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return d.tx, nil
}

type fakeEntryRepo struct {
	open      *timesheet.TimeEntry
	updateErr error
	updated   []timesheet.TimeEntry
	updateTxs []interface{}
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry timesheet.TimeEntry) (timesheet.TimeEntry, error) {
	return entry, nil
}

func (r *fakeEntryRepo) GetByID(ctx context.Context, id string, companyID string) (timesheet.TimeEntry, error) {
	return timesheet.TimeEntry{}, pgx.ErrNoRows
}

func (r *fakeEntryRepo) GetOpenEntry(ctx context.Context, employeeID string, companyID string) (*timesheet.TimeEntry, error) {
	if r.open == nil {
		return nil, nil
	}
	open := *r.open
	return &open, nil
}

func (r *fakeEntryRepo) Update(ctx context.Context, entry timesheet.TimeEntry) error {
	r.updateTxs = append(r.updateTxs, ctx.Value("tx"))
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, entry)
	return nil
}

func (r *fakeEntryRepo) List(ctx context.Context, employeeID string, filter timesheet.ListFilter, companyID string) ([]timesheet.TimeEntry, int64, error) {
	return nil, 0, nil
}

func (r *fakeEntryRepo) ListHistory(ctx context.Context, employeeID string, companyID string) ([]timesheet.TimeEntry, error) {
	if len(r.updated) > 0 {
		return r.updated, nil
	}
	if r.open != nil {
		return []timesheet.TimeEntry{*r.open}, nil
	}
	return nil, nil
}

type fakeBreakRepo struct {
	open      *timesheet.BreakEntry
	updateErr error
	updated   []timesheet.BreakEntry
	updateTxs []interface{}
}

func (r *fakeBreakRepo) Create(ctx context.Context, brk timesheet.BreakEntry) (timesheet.BreakEntry, error) {
	return brk, nil
}

func (r *fakeBreakRepo) GetOpenBreak(ctx context.Context, timeEntryID string) (*timesheet.BreakEntry, error) {
	if r.open == nil {
		return nil, nil
	}
	open := *r.open
	return &open, nil
}

func (r *fakeBreakRepo) Update(ctx context.Context, brk timesheet.BreakEntry) error {
	r.updateTxs = append(r.updateTxs, ctx.Value("tx"))
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, brk)
	return nil
}

func (r *fakeBreakRepo) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]timesheet.BreakEntry, error) {
	return r.updated, nil
}

type fakeEmployeeRepo struct{}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	return employee.Employee{ID: id, CompanyID: companyID, FullName: "Test Worker"}, nil
}

func authedContext(t *testing.T) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("employee_id", "emp-1"))
	require.NoError(t, tok.Set("company_id", "comp-1"))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newClockOutFixture(t *testing.T) (*fakeDB, *fakeEntryRepo, *fakeBreakRepo, timesheet.Service) {
	t.Helper()
	engine, err := compliancesvc.NewEngine(compliance.DefaultLimits())
	require.NoError(t, err)

	clockIn := time.Now().UTC().Add(-8 * time.Hour)
	breakStart := time.Now().UTC().Add(-30 * time.Minute)

	db := &fakeDB{tx: &fakeTx{}}
	entryRepo := &fakeEntryRepo{
		open: &timesheet.TimeEntry{
			ID:         "entry-1",
			EmployeeID: "emp-1",
			CompanyID:  "comp-1",
			ClockIn:    clockIn,
		},
	}
	breakRepo := &fakeBreakRepo{
		open: &timesheet.BreakEntry{
			ID:          "break-1",
			TimeEntryID: "entry-1",
			EmployeeID:  "emp-1",
			CompanyID:   "comp-1",
			BreakStart:  breakStart,
			BreakType:   string(compliance.BreakTypeUnpaid),
		},
	}

	service := NewTimesheetService(db, engine, entryRepo, breakRepo, &fakeEmployeeRepo{})
	return db, entryRepo, breakRepo, service
}

func TestClockOut_ClosesBreakAndEntryInOneTransaction(t *testing.T) {
	db, entryRepo, breakRepo, service := newClockOutFixture(t)

	resp, err := service.ClockOut(authedContext(t), timesheet.ClockOutRequest{})
	require.NoError(t, err)

	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)

	// Both writes ran on the transaction querier, not the pool.
	require.Len(t, breakRepo.updateTxs, 1)
	require.Len(t, entryRepo.updateTxs, 1)
	assert.Same(t, db.tx, breakRepo.updateTxs[0])
	assert.Same(t, db.tx, entryRepo.updateTxs[0])

	// The closed break's minutes made it into the entry aggregate.
	require.Len(t, entryRepo.updated, 1)
	assert.NotNil(t, entryRepo.updated[0].ClockOut)
	assert.Equal(t, 30, entryRepo.updated[0].BreakMinutes)
	require.NotNil(t, resp.Compliance)
	assert.Len(t, resp.Compliance.Results, 12)
}

func TestClockOut_RollsBackWhenEntryUpdateFails(t *testing.T) {
	db, entryRepo, breakRepo, service := newClockOutFixture(t)
	entryRepo.updateErr = errors.New("connection reset")

	_, err := service.ClockOut(authedContext(t), timesheet.ClockOutRequest{})
	require.Error(t, err)

	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
	// The break close must not survive the failed entry update.
	require.Len(t, breakRepo.updateTxs, 1)
	assert.Same(t, db.tx, breakRepo.updateTxs[0])
}

func TestEndBreak_SyncsEntryInOneTransaction(t *testing.T) {
	db, entryRepo, breakRepo, service := newClockOutFixture(t)

	resp, err := service.EndBreak(authedContext(t))
	require.NoError(t, err)
	assert.NotNil(t, resp.BreakEnd)

	assert.True(t, db.tx.committed)
	require.Len(t, breakRepo.updateTxs, 1)
	require.Len(t, entryRepo.updateTxs, 1)
	assert.Same(t, db.tx, breakRepo.updateTxs[0])
	assert.Same(t, db.tx, entryRepo.updateTxs[0])
	require.Len(t, entryRepo.updated, 1)
	assert.Equal(t, 30, entryRepo.updated[0].BreakMinutes)
}

func TestEndBreak_RollsBackWhenBreakUpdateFails(t *testing.T) {
	db, _, breakRepo, service := newClockOutFixture(t)
	breakRepo.updateErr = errors.New("connection reset")

	_, err := service.EndBreak(authedContext(t))
	require.Error(t, err)

	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}
