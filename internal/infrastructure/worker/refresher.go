package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DashboardLoader reloads the dashboard panels
type DashboardLoader interface {
	LoadDashboard(ctx context.Context) error
}

// ViewTracker reports whether the dashboard is the view on screen
type ViewTracker interface {
	DashboardActive() bool
}

// RefresherConfig holds configuration for the auto-refresh worker
type RefresherConfig struct {
	Interval time.Duration
}

// DefaultRefresherConfig returns default configuration
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{Interval: 30 * time.Second}
}

// RefresherStats is a point-in-time view of the refresher counters
type RefresherStats struct {
	Refreshed int
	Skipped   int
	LastRun   time.Time
}

// Refresher reloads the dashboard on a fixed interval while it is the
// active view. Reloads run on the loop goroutine, so a tick that arrives
// during a slow reload is dropped rather than queued.
type Refresher struct {
	config RefresherConfig
	loader DashboardLoader
	views  ViewTracker
	logger *zap.Logger

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	done      chan struct{}
	stats     RefresherStats
}

// NewRefresher creates a Refresher
func NewRefresher(config RefresherConfig, loader DashboardLoader, views ViewTracker, logger *zap.Logger) *Refresher {
	if config.Interval <= 0 {
		config.Interval = DefaultRefresherConfig().Interval
	}
	return &Refresher{
		config: config,
		loader: loader,
		views:  views,
		logger: logger,
	}
}

// Start begins the refresh loop
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("refresher already running")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.isRunning = true

	r.logger.Info("Refresher started", zap.Duration("interval", r.config.Interval))

	go r.loop(loopCtx, r.done)
	return nil
}

// Stop ends the loop and waits for an in-flight reload to return
func (r *Refresher) Stop() error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	cancel()
	<-done

	stats := r.Stats()
	r.logger.Info("Refresher stopped",
		zap.Int("refreshed", stats.Refreshed),
		zap.Int("skipped", stats.Skipped))
	return nil
}

// Name returns the worker name for identification
func (r *Refresher) Name() string {
	return "DashboardRefresher"
}

// Stats returns the current counters
func (r *Refresher) Stats() RefresherStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Refresher) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	if !r.views.DashboardActive() {
		r.mu.Lock()
		r.stats.Skipped++
		r.mu.Unlock()
		return
	}

	if err := r.loader.LoadDashboard(ctx); err != nil {
		r.logger.Warn("Dashboard refresh failed", zap.Error(err))
	}

	r.mu.Lock()
	r.stats.Refreshed++
	r.stats.LastRun = time.Now()
	r.mu.Unlock()
}

var _ Worker = (*Refresher)(nil)
