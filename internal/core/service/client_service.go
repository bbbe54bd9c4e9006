package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

type ClientService struct {
	repo   ports.ClientRepository
	locker Locker
	log    zerolog.Logger
}

// ClientServiceOption customises a ClientService.
type ClientServiceOption func(*ClientService)

// WithClientLocker makes Update take the same per-client lock the ledger
// uses for merges and reconciliation.
func WithClientLocker(l Locker) ClientServiceOption {
	return func(s *ClientService) { s.locker = l }
}

func NewClientService(repo ports.ClientRepository, log zerolog.Logger, opts ...ClientServiceOption) *ClientService {
	s := &ClientService{repo: repo, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ClientService) List(ctx context.Context, archived bool) ([]*domain.Client, error) {
	return s.repo.List(ctx, archived)
}

// Update applies a patch and writes the whole record back. Slot edits
// recompute totalAmount from the resulting slots.
func (s *ClientService) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	unlock, err := acquireLock(ctx, s.locker, clientLockKey(c.ClientID), s.log)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	defer unlock()

	// Re-read under the lock; the first read only resolved the clientID.
	if s.locker != nil {
		if c, err = s.repo.FindByID(ctx, id); err != nil {
			return nil, fmt.Errorf("update client: %w", err)
		}
	}

	slotsChanged := patch.Apply(c)
	if err := s.repo.Replace(ctx, c); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	s.log.Info().
		Str("client_id", c.ClientID).
		Bool("archived", c.IsArchived).
		Bool("slots_changed", slotsChanged).
		Msg("client updated")
	return c, nil
}

// Delete removes a client. Its tasks are left in place.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	s.log.Info().Str("id", id).Msg("client deleted")
	return nil
}
