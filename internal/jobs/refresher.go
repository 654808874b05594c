package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/logger"
	"github.com/Haloween-arch/Jobtune/internal/metrics"
)

// DefaultRefreshSchedule runs the date refresh once a day.
const DefaultRefreshSchedule = "@every 24h"

// RefresherConfig configures a Refresher
type RefresherConfig struct {
	Schedule   string // cron spec, DefaultRefreshSchedule when empty
	RunOnStart bool   // refresh immediately when started
}

// Refresher periodically rewrites posting dates so the dataset looks recent.
type Refresher struct {
	target   DatesRefresher
	cfg      RefresherConfig
	logger   *zap.Logger
	now      func() time.Time
	cron     *cron.Cron
	hooksMu  sync.RWMutex
	hooks    []func()
	runMu    sync.Mutex
	lastRun  time.Time
	lastRows int
}

// NewRefresher creates a Refresher for target
func NewRefresher(target DatesRefresher, cfg RefresherConfig, log *zap.Logger) *Refresher {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultRefreshSchedule
	}
	return &Refresher{
		target: target,
		cfg:    cfg,
		logger: logger.Component(log, "job-refresher"),
		now:    time.Now,
	}
}

// OnRefresh registers fn to be called after every successful refresh.
func (r *Refresher) OnRefresh(fn func()) {
	r.hooksMu.Lock()
	defer r.hooksMu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// RunOnce refreshes the dataset dates now. A missing dataset is logged and
// is not an error.
func (r *Refresher) RunOnce(ctx context.Context) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	today := r.now()
	rows, err := r.target.RefreshDates(ctx, today)
	if err != nil {
		if IsNotFound(err) {
			metrics.JobRefreshes.WithLabelValues("missing").Inc()
			r.logger.Warn("job dataset not found, skipping date refresh", zap.Error(err))
			return nil
		}
		metrics.JobRefreshes.WithLabelValues("error").Inc()
		r.logger.Error("job date refresh failed", zap.Error(err))
		return err
	}

	r.lastRun = today
	r.lastRows = rows
	metrics.JobRefreshes.WithLabelValues("success").Inc()
	r.logger.Info("job dates refreshed", zap.Int("rows", rows), zap.Time("at", today))

	r.hooksMu.RLock()
	hooks := append([]func(){}, r.hooks...)
	r.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// LastRun returns the time and row count of the last successful refresh.
func (r *Refresher) LastRun() (time.Time, int) {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	return r.lastRun, r.lastRows
}

// Start schedules periodic refreshes, running one immediately first when
// configured. Stop must be called to release the scheduler.
func (r *Refresher) Start(ctx context.Context) error {
	if r.cfg.RunOnStart {
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Warn("initial job date refresh failed", zap.Error(err))
		}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(r.cfg.Schedule, func() {
		_ = r.RunOnce(ctx)
	}); err != nil {
		return err
	}
	c.Start()
	r.cron = c
	r.logger.Info("job date refresher started", zap.String("schedule", r.cfg.Schedule))
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
	r.cron = nil
	r.logger.Info("job date refresher stopped")
}

// Run starts the refresher and blocks until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	r.Stop()
	return nil
}
