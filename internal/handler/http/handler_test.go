package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/timesheet"
	"github.com/jornada-hq/jornada-backend-go/internal/handler/http/response"
)

const testEntryID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"

type stubComplianceService struct {
	calls int
}

func (s *stubComplianceService) ValidateEntry(ctx context.Context, entryID string) (compliance.ReportResponse, error) {
	s.calls++
	return compliance.ReportResponse{EntryID: entryID}, nil
}

func (s *stubComplianceService) ValidateEntryRule(ctx context.Context, entryID string, rule compliance.RuleKind) (compliance.Result, error) {
	s.calls++
	return compliance.Result{Rule: rule, Pass: true}, nil
}

type stubTimesheetService struct {
	timesheet.Service
	calls int
}

func (s *stubTimesheetService) GetEntry(ctx context.Context, id string) (timesheet.TimeEntryResponse, error) {
	s.calls++
	return timesheet.TimeEntryResponse{ID: id}, nil
}

func newComplianceTestRouter(service compliance.Service) *chi.Mux {
	handler := NewComplianceHandler(service)
	r := chi.NewRouter()
	r.Get("/compliance/entries/{id}", handler.ValidateEntry)
	r.Get("/compliance/entries/{id}/rules/{rule}", handler.ValidateEntryRule)
	return r
}

func TestComplianceHandler_RejectsMalformedEntryID(t *testing.T) {
	service := &stubComplianceService{}
	router := newComplianceTestRouter(service)

	paths := []string{
		"/compliance/entries/not-a-uuid",
		"/compliance/entries/123e4567-e89b-12d3-a456-426614174000", // v1, not v7
		"/compliance/entries/not-a-uuid/rules/daily_limit",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Zero(t, service.calls, "service must not be reached with a malformed ID")
}

func TestComplianceHandler_AcceptsValidEntryID(t *testing.T) {
	service := &stubComplianceService{}
	router := newComplianceTestRouter(service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compliance/entries/"+testEntryID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, service.calls)

	var body response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestTimesheetHandler_GetRejectsMalformedEntryID(t *testing.T) {
	service := &stubTimesheetService{}
	handler := NewTimesheetHandler(service)
	r := chi.NewRouter()
	r.Get("/timesheet/entries/{id}", handler.Get)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timesheet/entries/nope", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, service.calls)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timesheet/entries/"+testEntryID, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, service.calls)
}
