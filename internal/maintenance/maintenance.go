// Package maintenance runs periodic background tasks for the dashboard
// server as Go tickers.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/cricket-insights/internal/cache"
	"github.com/albapepper/cricket-insights/internal/dataset"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CachePurgeInterval   time.Duration // Drop expired report cache entries
	DatasetWatchInterval time.Duration // Re-check the dataset tables
}

// SchemaChecker is the dataset probe the watch task runs.
type SchemaChecker interface {
	CheckSchema(ctx context.Context) ([]dataset.TableStatus, error)
}

// Runner holds the state shared by the tasks.
type Runner struct {
	checker SchemaChecker
	cache   *cache.Cache
	logger  *slog.Logger

	// last dataset state seen by Watch; nil until the first check
	ready *bool
}

// New creates a Runner.
func New(checker SchemaChecker, c *cache.Cache, logger *slog.Logger) *Runner {
	return &Runner{checker: checker, cache: c, logger: logger}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func (r *Runner) Start(ctx context.Context, cfg Config) {
	r.logger.Info("Maintenance tickers started",
		"cache_purge", cfg.CachePurgeInterval,
		"dataset_watch", cfg.DatasetWatchInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.CachePurgeInterval > 0 && r.cache.Enabled() {
		t := time.NewTicker(cfg.CachePurgeInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { r.PurgeCache() })
	}

	if cfg.DatasetWatchInterval > 0 {
		t := time.NewTicker(cfg.DatasetWatchInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { r.Watch(ctx) })
	}

	<-ctx.Done()
	r.logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// PurgeCache drops expired report cache entries.
func (r *Runner) PurgeCache() int {
	n := r.cache.Purge()
	if n > 0 {
		r.logger.Info("Cache purge: dropped expired reports", "count", n)
	}
	return n
}

// Watch checks the dataset tables and logs when readiness changes. Any
// change flushes the report cache so no result outlives the data it came
// from. It returns the current readiness.
func (r *Runner) Watch(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.checker.CheckSchema(checkCtx)
	ready := err == nil

	if r.ready != nil && *r.ready == ready {
		return ready
	}
	first := r.ready == nil
	r.ready = &ready

	switch {
	case ready && first:
		r.logger.Debug("Dataset watch: ready")
	case ready:
		r.logger.Info("Dataset watch: dataset is readable again")
	default:
		r.logger.Warn("Dataset watch: dataset not ready", "error", err)
	}
	if !first {
		if n := r.cache.Flush(); n > 0 {
			r.logger.Info("Dataset watch: flushed report cache", "count", n)
		}
	}
	return ready
}
