package ports

import (
	"context"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks. Lookups that
// match nothing return domain.ErrTaskNotFound.
type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	// Insert stores a new task and sets t.ID to the store-assigned key.
	Insert(ctx context.Context, t *domain.Task) error
	// Update applies the non-nil patch fields and returns the stored task.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// TeamTotals groups all tasks by team.
	TeamTotals(ctx context.Context) ([]domain.TeamTotals, error)
}
