package ports

import (
	"context"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// EmployeeUpdate is an EmployeePatch whose password has already been hashed.
type EmployeeUpdate struct {
	EmpID        *string
	Name         *string
	Role         *string
	Team         *string
	Email        *string
	IsAdmin      *bool
	PasswordHash *string
}

// EmployeeRepository defines persistence operations for employees. Lookups
// that match nothing return domain.ErrEmployeeNotFound.
type EmployeeRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindByEmpID(ctx context.Context, empID string) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// List returns every employee, or only one team's when team is non-empty.
	List(ctx context.Context, team string) ([]*domain.Employee, error)
	// Create fails with domain.ErrEmployeeExists when empID or email is taken.
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, id string, upd EmployeeUpdate) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
