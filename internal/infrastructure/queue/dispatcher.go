package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ActivityDispatcher persists client activity off the request path. Entries
// are sharded by clientID so one client's trail is written in order.
type ActivityDispatcher struct {
	mu      sync.RWMutex
	closed  bool
	workers []chan domain.Activity
	wg      sync.WaitGroup

	repo  ports.ActivityRepository
	depth *prometheus.GaugeVec
	log   zerolog.Logger
}

// NewActivityDispatcher creates numWorkers shards (defaultWorkers when <= 0).
// depth may be nil; otherwise it is labelled by worker_id.
func NewActivityDispatcher(numWorkers int, repo ports.ActivityRepository, depth *prometheus.GaugeVec, log zerolog.Logger) *ActivityDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &ActivityDispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		repo:    repo,
		depth:   depth,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches the workers. Writes keep going after ctx is cancelled so
// Stop can drain what is queued.
func (d *ActivityDispatcher) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record queues an entry without blocking. A full shard drops the entry.
func (d *ActivityDispatcher) Record(a domain.Activity) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("client_id", a.ClientID).Str("kind", string(a.Kind)).Msg("activity dispatcher stopped, entry dropped")
		return
	}

	idx := d.shardIndex(a.ClientID)
	select {
	case d.workers[idx] <- a:
		d.observe(idx)
	default:
		d.log.Warn().
			Str("client_id", a.ClientID).
			Str("kind", string(a.Kind)).
			Int("worker_id", idx).
			Msg("activity queue full, entry dropped")
	}
}

// Stop closes every shard and waits until queued entries are written.
func (d *ActivityDispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *ActivityDispatcher) shardIndex(clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *ActivityDispatcher) observe(idx int) {
	if d.depth == nil {
		return
	}
	d.depth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

func (d *ActivityDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	for a := range ch {
		d.observe(id)
		if err := d.repo.Insert(ctx, &a); err != nil {
			d.log.Error().Err(err).
				Str("client_id", a.ClientID).
				Str("kind", string(a.Kind)).
				Int("worker_id", id).
				Msg("activity write failed")
		}
	}
}
