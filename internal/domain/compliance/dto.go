package compliance

// ========================================
// COMPLIANCE DTOs
// ========================================

// ReportResponse is the serialized twelve-rule verdict for one time entry.
type ReportResponse struct {
	EntryID     string   `json:"entry_id"`
	EmployeeID  string   `json:"employee_id"`
	EvaluatedAt string   `json:"evaluated_at"`
	Compliant   bool     `json:"compliant"`
	Violations  int      `json:"violations"`
	Warnings    int      `json:"warnings"`
	Results     []Result `json:"results"`
}

// Summarize fills the aggregate fields from the result list. A violation is
// a failed rule; a warning is a passing result that still carries a severity
// (the 40-48h overtime notice).
func (r *ReportResponse) Summarize() {
	r.Compliant = true
	r.Violations = 0
	r.Warnings = 0
	for _, res := range r.Results {
		if !res.Pass {
			r.Compliant = false
			r.Violations++
		} else if res.Severity != "" {
			r.Warnings++
		}
	}
}
