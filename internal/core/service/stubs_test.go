package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// march2024 is a fixed clock: year digit "4", month "3".
func march2024() time.Time {
	return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	byID      map[string]*domain.Client
	nextKey   int
	inserts   int
	replaces  int
	totalSets map[string]int // id -> last total written by UpdateTotalAmount

	// staleRead makes FindActiveByIdentity ignore the archived flag, as if
	// the client was archived between the read and the write.
	staleRead bool

	// afterFindByClientID runs once FindByClientID has read the record,
	// before the caller writes anything back.
	afterFindByClientID func()

	findErr   error
	lastIDErr error
	insertErr error
	updateErr error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{
		byID:      make(map[string]*domain.Client),
		totalSets: make(map[string]int),
	}
}

func cloneClient(c *domain.Client) *domain.Client {
	clone := *c
	clone.Services = make(map[string]domain.ServiceSlot, len(c.Services))
	for k, v := range c.Services {
		clone.Services[k] = v
	}
	clone.ActivityCodes = make(map[string]string, len(c.ActivityCodes))
	for k, v := range c.ActivityCodes {
		clone.ActivityCodes[k] = v
	}
	return &clone
}

func (r *stubClientRepo) seed(c *domain.Client) *domain.Client {
	r.nextKey++
	c.ID = fmt.Sprintf("key-%d", r.nextKey)
	r.byID[c.ID] = cloneClient(c)
	return c
}

func (r *stubClientRepo) all() []*domain.Client {
	out := make([]*domain.Client, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubClientRepo) FindActiveByIdentity(_ context.Context, clientName, phone string) (*domain.Client, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.all() {
		if c.ClientName == clientName && c.Phone == phone && (r.staleRead || !c.IsArchived) {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) LastClientID(_ context.Context) (string, error) {
	if r.lastIDErr != nil {
		return "", r.lastIDErr
	}
	last := ""
	for _, c := range r.byID {
		if c.ClientID > last {
			last = c.ClientID
		}
	}
	return last, nil
}

func (r *stubClientRepo) FindByClientID(_ context.Context, clientID string) (*domain.Client, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.all() {
		if c.ClientID == clientID {
			clone := cloneClient(c)
			if r.afterFindByClientID != nil {
				r.afterFindByClientID()
			}
			return clone, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return cloneClient(c), nil
}

func (r *stubClientRepo) List(_ context.Context, archived bool) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range r.all() {
		if c.IsArchived == archived {
			out = append(out, cloneClient(c))
		}
	}
	return out, nil
}

func (r *stubClientRepo) Insert(_ context.Context, c *domain.Client) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserts++
	r.seed(c)
	return nil
}

func (r *stubClientRepo) Replace(_ context.Context, c *domain.Client) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	r.replaces++
	r.byID[c.ID] = cloneClient(c)
	return nil
}

func (r *stubClientRepo) UpdateTotalAmount(_ context.Context, id string, total int) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.TotalAmount = total
	r.totalSets[id] = total
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	byID      map[string]*domain.Task
	nextKey   int
	deleted   []string
	totals    []domain.TeamTotals
	totalsErr error
	deleteErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) seed(t *domain.Task) *domain.Task {
	r.nextKey++
	t.ID = fmt.Sprintf("task-%d", r.nextKey)
	clone := *t
	r.byID[t.ID] = &clone
	return t
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, f domain.TaskFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if f.Team != "" && t.Team != f.Team {
			continue
		}
		if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) Insert(_ context.Context, t *domain.Task) error {
	r.seed(t)
	return nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, p domain.TaskPatch) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Remarks != nil {
		t.Remarks = *p.Remarks
	}
	if p.SubmissionLink != nil {
		t.SubmissionLink = *p.SubmissionLink
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubTaskRepo) TeamTotals(_ context.Context) ([]domain.TeamTotals, error) {
	return r.totals, r.totalsErr
}

// ---------------------------------------------------------------------------
// Locking and activity
// ---------------------------------------------------------------------------

type stubLocker struct {
	err      error
	keys     []string
	released int
}

func (l *stubLocker) Lock(_ context.Context, key string) (func(), error) {
	l.keys = append(l.keys, key)
	if l.err != nil {
		return nil, l.err
	}
	return func() { l.released++ }, nil
}

// keyedLocker holds keys in memory and answers ErrBusy for a key that is
// already held, like KeyLock once its wait runs out.
type keyedLocker struct {
	held map[string]bool
	keys []string
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{held: make(map[string]bool)}
}

func (l *keyedLocker) Lock(_ context.Context, key string) (func(), error) {
	l.keys = append(l.keys, key)
	if l.held[key] {
		return nil, domain.ErrBusy
	}
	l.held[key] = true
	return func() { delete(l.held, key) }, nil
}

type stubRecorder struct {
	recorded []domain.Activity
}

func (r *stubRecorder) Record(a domain.Activity) {
	r.recorded = append(r.recorded, a)
}

var _ ports.ActivityRecorder = (*stubRecorder)(nil)
