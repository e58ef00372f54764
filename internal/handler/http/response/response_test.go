package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var body Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "abc"})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	body := decode(t, rec)
	if !body.Success || body.Error != nil {
		t.Errorf("unexpected envelope: %+v", body)
	}
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name     string
		fn       func(w http.ResponseWriter)
		wantCode int
		wantErr  string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "nope", nil) }, http.StatusBadRequest, "BAD_REQUEST"},
		{"validation", func(w http.ResponseWriter) { ValidationError(w, map[string]string{"f": "m"}) }, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "nope") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(w http.ResponseWriter) { Forbidden(w, "nope") }, http.StatusForbidden, "FORBIDDEN"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "nope") }, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "nope") }, http.StatusConflict, "CONFLICT"},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "nope") }, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.fn(rec)

			if rec.Code != c.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, c.wantCode)
			}
			body := decode(t, rec)
			if body.Success {
				t.Error("error response marked success")
			}
			if body.Error == nil || body.Error.Code != c.wantErr {
				t.Errorf("error = %+v, want code %q", body.Error, c.wantErr)
			}
		})
	}
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, &Meta{Page: 2, Limit: 20, TotalItems: 41, TotalPages: 3})

	body := decode(t, rec)
	if body.Meta == nil || body.Meta.Page != 2 || body.Meta.TotalPages != 3 {
		t.Errorf("meta = %+v", body.Meta)
	}
}
