package ports

import (
	"context"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// AuthService issues and resolves bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Employee, error)
	// Authenticate resolves the employee named by a token subject.
	Authenticate(ctx context.Context, empID string) (*domain.Employee, error)
}

// ClientService covers the client operations outside the ledger.
type ClientService interface {
	List(ctx context.Context, archived bool) ([]*domain.Client, error)
	Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

// CreateTaskInput carries the fields of a new task.
type CreateTaskInput struct {
	Team             string
	ClientID         string
	Client           string
	ActivityCode     string
	DeliveryDate     string
	Count            map[string]int
	Minutes          map[string]int
	Amount           map[string]int
	Description      string
	CallsDescription string
}

// TaskService covers task operations outside the ledger.
type TaskService interface {
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	TeamEfficiency(ctx context.Context) ([]domain.TeamTotals, error)
}

// CreateEmployeeInput carries the fields of a new employee.
type CreateEmployeeInput struct {
	EmpID    string
	Name     string
	Role     string
	Team     string
	Email    string
	Password string
	IsAdmin  bool
}

// EmployeeService manages staff accounts.
type EmployeeService interface {
	List(ctx context.Context, team string) ([]*domain.Employee, error)
	Get(ctx context.Context, empID string) (*domain.Employee, error)
	Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

// ActivityService reads the client billing trail.
type ActivityService interface {
	ListByClientID(ctx context.Context, clientID string, limit int) ([]domain.Activity, error)
}
