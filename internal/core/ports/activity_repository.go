package ports

import (
	"context"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// ActivityRepository persists the client billing trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// ListByClientID returns up to limit entries, newest first.
	ListByClientID(ctx context.Context, clientID string, limit int) ([]domain.Activity, error)
}
