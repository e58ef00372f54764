package response

import (
	"errors"
	"net/http"

	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/employee"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/timesheet"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Timesheet domain errors
	switch {
	case errors.Is(err, timesheet.ErrOpenEntryExists):
		Conflict(w, "An open time entry already exists")
	case errors.Is(err, timesheet.ErrNoOpenEntry):
		Conflict(w, "No open time entry")
	case errors.Is(err, timesheet.ErrOpenBreakExists):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, timesheet.ErrNoOpenBreak):
		Conflict(w, "No break in progress")
	case errors.Is(err, timesheet.ErrOutsideAllowedRadius):
		Forbidden(w, "Clock-in location is outside the allowed radius")
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timesheet.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this time entry")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this employee")

	// Compliance domain errors
	case errors.Is(err, compliance.ErrUnknownRule):
		BadRequest(w, "Unknown compliance rule", nil)
	case errors.Is(err, compliance.ErrEntryNotInHistory):
		InternalServerError(w, "Validation contract violation")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
