package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

// Locker serializes read-modify-write sequences across requests (Redis).
// Lock returns domain.ErrBusy when the key stays held past the wait budget.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// acquireLock takes key on locker. Only ErrBusy is surfaced; a failing lock
// backend degrades to running unlocked.
func acquireLock(ctx context.Context, locker Locker, key string, log zerolog.Logger) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	unlock, err := locker.Lock(ctx, key)
	if errors.Is(err, domain.ErrBusy) {
		return nil, err
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("lock unavailable, proceeding unlocked")
		return func() {}, nil
	}
	return unlock, nil
}

// clientLockKey guards every write to one client record: merges, total
// reconciliation and edits.
func clientLockKey(clientID string) string {
	return "client:" + clientID
}

type ledger struct {
	clients  ports.ClientRepository
	tasks    ports.TaskRepository
	ids      *IDGenerator
	locker   Locker
	recorder ports.ActivityRecorder
	now      func() time.Time
	log      zerolog.Logger
}

// LedgerOption customises a ledger built by NewLedger.
type LedgerOption func(*ledger)

// WithLocker serializes submissions per client identity and every write to
// an existing client per clientID. Without it everything runs unlocked.
func WithLocker(l Locker) LedgerOption {
	return func(lg *ledger) { lg.locker = l }
}

// WithActivityRecorder sends every ledger mutation to r.
func WithActivityRecorder(r ports.ActivityRecorder) LedgerOption {
	return func(lg *ledger) { lg.recorder = r }
}

// WithClock overrides time.Now for activity codes and trail timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(lg *ledger) { lg.now = now }
}

// NewLedger returns the ports.Ledger implementation.
func NewLedger(clients ports.ClientRepository, tasks ports.TaskRepository, log zerolog.Logger, opts ...LedgerOption) ports.Ledger {
	l := &ledger{
		clients: clients,
		tasks:   tasks,
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.ids = NewIDGenerator(clients, l.now)
	return l
}

// SubmitClient folds the submission into the non-archived client with the
// same name and phone, or creates a new client when there is none.
func (l *ledger) SubmitClient(ctx context.Context, in ports.ClientSubmission) (*ports.SubmitResult, error) {
	unlock, err := acquireLock(ctx, l.locker, identityLockKey(in.ClientName, in.Phone), l.log)
	if err != nil {
		return nil, fmt.Errorf("submit client: %w", err)
	}
	defer unlock()

	existing, err := l.clients.FindActiveByIdentity(ctx, in.ClientName, in.Phone)
	switch {
	case err == nil:
		return l.merge(ctx, existing, in)
	case errors.Is(err, domain.ErrClientNotFound):
		return l.create(ctx, in)
	default:
		return nil, fmt.Errorf("submit client: find existing: %w", err)
	}
}

// merge re-reads the matched client under its per-client lock so a
// concurrent reconciliation or edit is not overwritten by the replace.
func (l *ledger) merge(ctx context.Context, match *domain.Client, in ports.ClientSubmission) (*ports.SubmitResult, error) {
	unlock, err := acquireLock(ctx, l.locker, clientLockKey(match.ClientID), l.log)
	if err != nil {
		return nil, fmt.Errorf("submit client: %w", err)
	}
	defer unlock()

	c, err := l.clients.FindByID(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("submit client: reload: %w", err)
	}

	added := 0
	for _, def := range domain.Services {
		sub, ok := in.Services[def.Name]
		if !ok || !sub.Selected() {
			continue
		}
		cur, _ := c.Slot(def.Name)
		c.SetSlot(def.Name, mergeSlot(cur, sub, sub.AddedAmount()))
		added += sub.AddedAmount()
	}
	c.RecomputeTotal()
	// A merge revives the record even if it had been archived meanwhile.
	c.IsArchived = false

	if err := l.clients.Replace(ctx, c); err != nil {
		l.log.Error().Err(err).Str("client_id", c.ClientID).Msg("failed to merge client")
		return nil, fmt.Errorf("submit client: replace: %w", err)
	}

	l.log.Info().Str("client_id", c.ClientID).Int("added", added).Int("total_amount", c.TotalAmount).Msg("client merged")
	l.record(domain.Activity{
		ClientID:   c.ClientID,
		Kind:       domain.ActivityClientMerged,
		Amount:     added,
		TotalAfter: c.TotalAmount,
		Actor:      in.Actor,
	})
	return &ports.SubmitResult{Client: c, Merged: true}, nil
}

func (l *ledger) create(ctx context.Context, in ports.ClientSubmission) (*ports.SubmitResult, error) {
	clientID, err := l.ids.NextClientID(ctx)
	if err != nil {
		return nil, fmt.Errorf("submit client: %w", err)
	}

	c := &domain.Client{
		ClientID:      clientID,
		ClientName:    in.ClientName,
		Industry:      in.Industry,
		DeliveryDate:  in.DeliveryDate,
		Phone:         in.Phone,
		Email:         in.Email,
		ActivityCodes: make(map[string]string),
	}
	for _, def := range domain.Services {
		sub, ok := in.Services[def.Name]
		if !ok || !sub.Selected() {
			continue
		}
		c.SetSlot(def.Name, mergeSlot(domain.ServiceSlot{}, sub, sub.NewAmount()))
		// Sequence is always 1 on creation.
		c.ActivityCodes[def.Name] = l.ids.ActivityCode(clientID, def.Name, 1)
	}
	c.RecomputeTotal()

	if err := l.clients.Insert(ctx, c); err != nil {
		l.log.Error().Err(err).Str("client_id", clientID).Msg("failed to create client")
		return nil, fmt.Errorf("submit client: insert: %w", err)
	}

	l.log.Info().Str("client_id", clientID).Int("total_amount", c.TotalAmount).Msg("client created")
	l.record(domain.Activity{
		ClientID:   clientID,
		Kind:       domain.ActivityClientCreated,
		Amount:     c.TotalAmount,
		TotalAfter: c.TotalAmount,
		Actor:      in.Actor,
	})
	return &ports.SubmitResult{Client: c}, nil
}

// mergeSlot adds a submission onto the current slot value. The submitted
// description replaces the current one only when it was sent.
func mergeSlot(cur domain.ServiceSlot, sub domain.SlotSubmission, amount int) domain.ServiceSlot {
	out := domain.ServiceSlot{
		Count:       cur.Count + sub.Count,
		Amount:      cur.Amount + amount,
		Min:         cur.Min + sub.Min,
		Description: cur.Description,
	}
	if sub.Description != nil {
		out.Description = *sub.Description
	}
	return out
}

// DeleteTask deletes a task after subtracting its amount from the owning
// client's total, floored at zero. A missing client skips the subtraction.
// A store failure while reconciling is returned and the task is kept.
func (l *ledger) DeleteTask(ctx context.Context, taskID, actor string) (*ports.DeleteTaskResult, error) {
	task, err := l.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	unlock, err := acquireLock(ctx, l.locker, clientLockKey(task.ClientID), l.log)
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	defer unlock()

	res, err := l.reconcile(ctx, task, actor)
	if err != nil {
		l.log.Error().Err(err).Str("task_id", taskID).Str("client_id", task.ClientID).Msg("task reconciliation failed")
		return nil, fmt.Errorf("delete task: %w", err)
	}

	if err := l.tasks.Delete(ctx, taskID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	l.log.Info().
		Str("task_id", taskID).
		Str("client_id", task.ClientID).
		Str("outcome", string(res.Outcome)).
		Int("amount", res.Amount).
		Msg("task deleted")
	return res, nil
}

func (l *ledger) reconcile(ctx context.Context, task *domain.Task, actor string) (*ports.DeleteTaskResult, error) {
	client, err := l.clients.FindByClientID(ctx, task.ClientID)
	if errors.Is(err, domain.ErrClientNotFound) {
		return &ports.DeleteTaskResult{Outcome: ports.ReconcileSkipped}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}

	amount := task.AmountTotal()
	total := client.TotalAmount - amount
	if total < 0 {
		total = 0
	}
	if err := l.clients.UpdateTotalAmount(ctx, client.ID, total); err != nil {
		return nil, fmt.Errorf("update total: %w", err)
	}

	l.record(domain.Activity{
		ClientID:   client.ClientID,
		Kind:       domain.ActivityTaskReconciled,
		Amount:     -amount,
		TotalAfter: total,
		Actor:      actor,
	})
	return &ports.DeleteTaskResult{
		Outcome:     ports.ReconcileApplied,
		ClientID:    client.ClientID,
		Amount:      amount,
		TotalAmount: total,
	}, nil
}

func (l *ledger) record(a domain.Activity) {
	if l.recorder == nil {
		return
	}
	a.At = l.now().UTC()
	l.recorder.Record(a)
}

func identityLockKey(clientName, phone string) string {
	return "client-identity:" + clientName + "|" + phone
}
