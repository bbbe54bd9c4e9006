package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

type TaskService struct {
	repo ports.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

func (s *TaskService) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	return s.repo.List(ctx, filter)
}

// Create stores a new task as Pending with no remarks or submission link.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	t := &domain.Task{
		Team:             in.Team,
		ClientID:         in.ClientID,
		Client:           in.Client,
		ActivityCode:     in.ActivityCode,
		DeliveryDate:     in.DeliveryDate,
		Status:           domain.TaskStatusPending,
		Count:            in.Count,
		Minutes:          in.Minutes,
		Amount:           in.Amount,
		Description:      in.Description,
		CallsDescription: in.CallsDescription,
	}

	if err := s.repo.Insert(ctx, t); err != nil {
		s.log.Error().Err(err).Str("client_id", in.ClientID).Msg("failed to create task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.Info().Str("task_id", t.ID).Str("team", t.Team).Str("client_id", t.ClientID).Msg("task created")
	return t, nil
}

// Update applies the set fields. An empty patch returns the stored task.
func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

// TeamEfficiency returns the per-team task tallies.
func (s *TaskService) TeamEfficiency(ctx context.Context) ([]domain.TeamTotals, error) {
	totals, err := s.repo.TeamTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("team efficiency: %w", err)
	}
	return totals, nil
}
