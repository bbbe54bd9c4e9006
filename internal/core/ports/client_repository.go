package ports

import (
	"context"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// ClientRepository defines persistence operations for clients. Lookups that
// match nothing return domain.ErrClientNotFound.
type ClientRepository interface {
	// FindActiveByIdentity returns the non-archived client with exactly this
	// name and phone.
	FindActiveByIdentity(ctx context.Context, clientName, phone string) (*domain.Client, error)
	// LastClientID returns the greatest clientID in descending string order,
	// or "" when no client exists.
	LastClientID(ctx context.Context) (string, error)
	FindByClientID(ctx context.Context, clientID string) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, archived bool) ([]*domain.Client, error)
	// Insert stores a new client and sets c.ID to the store-assigned key.
	Insert(ctx context.Context, c *domain.Client) error
	// Replace overwrites the whole record keyed by c.ID.
	Replace(ctx context.Context, c *domain.Client) error
	// UpdateTotalAmount writes only the totalAmount field.
	UpdateTotalAmount(ctx context.Context, id string, total int) error
	Delete(ctx context.Context, id string) error
}
