package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jornada-hq/jornada-backend-go/internal/domain/compliance"
	"github.com/jornada-hq/jornada-backend-go/internal/handler/http/response"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/validator"
)

type ComplianceHandler interface {
	ValidateEntry(w http.ResponseWriter, r *http.Request)
	ValidateEntryRule(w http.ResponseWriter, r *http.Request)
}

type complianceHandlerImpl struct {
	complianceService compliance.Service
}

func NewComplianceHandler(complianceService compliance.Service) ComplianceHandler {
	return &complianceHandlerImpl{
		complianceService: complianceService,
	}
}

// ValidateEntry implements ComplianceHandler.
func (h *complianceHandlerImpl) ValidateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Entry ID must be a valid UUID", nil)
		return
	}

	report, err := h.complianceService.ValidateEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// ValidateEntryRule implements ComplianceHandler.
func (h *complianceHandlerImpl) ValidateEntryRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rule := chi.URLParam(r, "rule")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Entry ID must be a valid UUID", nil)
		return
	}
	if rule == "" {
		response.BadRequest(w, "Rule is required", nil)
		return
	}

	result, err := h.complianceService.ValidateEntryRule(r.Context(), id, compliance.RuleKind(rule))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
