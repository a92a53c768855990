package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// Janitor periodically purges finished tasks from the queue.
//
// For multi-worker deployments, configure a DistributedLock so only one
// instance purges per cycle.
type Janitor struct {
	taskQueue driven.TaskQueue
	lock      driven.DistributedLock
	logger    *slog.Logger

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	interval time.Duration
	maxAge   time.Duration
	lockTTL  time.Duration
}

// JanitorConfig holds configuration for the janitor.
type JanitorConfig struct {
	TaskQueue driven.TaskQueue
	Lock      driven.DistributedLock // Optional: coordination across instances
	Logger    *slog.Logger
	Interval  time.Duration // How often to purge (default: 10m)
	MaxAge    time.Duration // Age past which finished tasks are purged (default: 24h)
	LockTTL   time.Duration // TTL for the distributed lock (default: 2x interval)
}

// NewJanitor creates a new queue janitor.
func NewJanitor(cfg JanitorConfig) *Janitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = 2 * interval
	}

	return &Janitor{
		taskQueue: cfg.TaskQueue,
		lock:      cfg.Lock,
		logger:    logger,
		interval:  interval,
		maxAge:    maxAge,
		lockTTL:   lockTTL,
	}
}

// Start begins the janitor loop.
// It runs until Stop is called or context is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.doneCh = make(chan struct{})
	j.mu.Unlock()

	j.logger.Info("janitor starting", "interval", j.interval, "max_age", j.maxAge)

	go j.run(ctx)
}

// Stop gracefully stops the janitor.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	close(j.stopCh)
	j.mu.Unlock()

	<-j.doneCh

	j.mu.Lock()
	j.running = false
	j.mu.Unlock()

	j.logger.Info("janitor stopped")
}

// run is the main janitor loop.
func (j *Janitor) run(ctx context.Context) {
	defer close(j.doneCh)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("janitor context cancelled")
			return
		case <-j.stopCh:
			return
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

// purge removes finished tasks older than the configured age. With a lock
// configured, a cycle whose lock is held elsewhere is skipped.
func (j *Janitor) purge(ctx context.Context) {
	if j.lock != nil {
		acquired, err := j.lock.Acquire(ctx, "janitor", j.lockTTL)
		if err != nil {
			j.logger.Warn("failed to acquire janitor lock", "error", err)
			return
		}
		if !acquired {
			return
		}
		defer func() {
			if err := j.lock.Release(ctx, "janitor"); err != nil {
				j.logger.Warn("failed to release janitor lock", "error", err)
			}
		}()
	}

	purged, err := j.taskQueue.PurgeTasks(ctx, int(j.maxAge.Seconds()))
	if err != nil {
		j.logger.Error("failed to purge tasks", "error", err)
		return
	}
	if purged > 0 {
		j.logger.Info("purged finished tasks", "count", purged)
	}
}
