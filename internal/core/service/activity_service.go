package service

import (
	"context"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type ActivityService struct {
	repo ports.ActivityRepository
}

func NewActivityService(repo ports.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// ListByClientID returns a client's trail, newest first. limit is clamped
// to [1, 200] and defaults to 50.
func (s *ActivityService) ListByClientID(ctx context.Context, clientID string, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return s.repo.ListByClientID(ctx, clientID, limit)
}
