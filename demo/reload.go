package demo

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/najoast/pointdemo/bootstrap"
	"github.com/najoast/pointdemo/config"
)

// Reloader reruns a Script whenever the watched configuration changes
type Reloader struct {
	watcher *config.Watcher
	script  *Script
	logger  *zap.Logger
	started atomic.Bool
}

// NewReloader creates a reloader service
func NewReloader(watcher *config.Watcher, script *Script, logger *zap.Logger) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reloader{
		watcher: watcher,
		script:  script,
		logger:  logger.Named("reloader"),
	}
}

// Name returns the service name
func (r *Reloader) Name() string {
	return "reloader"
}

// Start registers the rerun callback and begins watching
func (r *Reloader) Start(ctx context.Context) error {
	r.watcher.OnConfigChange(func(_, newConfig *config.Config) {
		if err := r.script.Rerun(newConfig.Demo); err != nil {
			r.logger.Error("rerun failed", zap.Error(err))
		}
	})
	if err := r.watcher.Start(); err != nil {
		_ = r.watcher.Stop()
		return err
	}
	r.started.Store(true)
	return nil
}

// Stop stops the underlying watcher
func (r *Reloader) Stop(ctx context.Context) error {
	r.started.Store(false)
	return r.watcher.Stop()
}

// Health reports whether the watcher is running
func (r *Reloader) Health(ctx context.Context) (bootstrap.HealthStatus, error) {
	if !r.started.Load() {
		return bootstrap.HealthStatus{State: bootstrap.HealthStopped}, nil
	}
	return bootstrap.HealthStatus{State: bootstrap.HealthHealthy, Message: "watching"}, nil
}
