package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultInterval = time.Minute
	defaultTTL      = 2 * time.Hour
)

// DraftSweeper exposes the draft store operations the janitor needs.
type DraftSweeper interface {
	EvictIdleDrafts(ctx context.Context, olderThan time.Time) int
	ActiveDrafts() int
}

// DraftGauges publishes janitor results.
type DraftGauges interface {
	SetActiveDrafts(n int)
	AddEvictedDrafts(n int)
}

type nopGauges struct{}

func (nopGauges) SetActiveDrafts(int)  {}
func (nopGauges) AddEvictedDrafts(int) {}

// DraftJanitor periodically discards drafts abandoned for longer than the TTL.
type DraftJanitor struct {
	sweeper  DraftSweeper
	gauges   DraftGauges
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDraftJanitor constructs the janitor. Non-positive durations fall back to defaults.
func NewDraftJanitor(sweeper DraftSweeper, gauges DraftGauges, interval, ttl time.Duration, logger *slog.Logger) *DraftJanitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if gauges == nil {
		gauges = nopGauges{}
	}
	return &DraftJanitor{
		sweeper:  sweeper,
		gauges:   gauges,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Start launches the sweep loop. Calling Start twice without Stop is a no-op.
func (j *DraftJanitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go j.loop(runCtx)
}

// Stop cancels the loop and waits for it to exit.
func (j *DraftJanitor) Stop() {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.mu.Unlock()

	j.wg.Wait()
}

func (j *DraftJanitor) loop(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep runs one eviction pass and returns the number of drafts removed.
func (j *DraftJanitor) Sweep(ctx context.Context) int {
	evicted := j.sweeper.EvictIdleDrafts(ctx, j.now().Add(-j.ttl))
	active := j.sweeper.ActiveDrafts()

	j.gauges.AddEvictedDrafts(evicted)
	j.gauges.SetActiveDrafts(active)
	if evicted > 0 {
		j.logger.Info("idle drafts evicted", slog.Int("evicted", evicted), slog.Int("active", active))
	}
	return evicted
}
