package employee

import (
	"context"
)

// EmployeeRepository defines data access for worker profiles. companyID is
// required on every method to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
}
