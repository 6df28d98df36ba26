// Package bootstrap provides application implementation
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long Run waits for services to stop
const ShutdownTimeout = 30 * time.Second

// Application owns the lifecycle of the program's services
type Application struct {
	lifecycle *LifecycleManager
	logger    *zap.Logger
	signals   []os.Signal
}

// NewApplication creates a new application
func NewApplication(logger *zap.Logger) *Application {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		lifecycle: NewLifecycleManager(logger),
		logger:    logger,
		signals:   []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// Register registers a service that starts after deps
func (app *Application) Register(service Service, deps ...string) error {
	return app.lifecycle.Register(service, deps...)
}

// LifecycleManager returns the lifecycle manager
func (app *Application) LifecycleManager() *LifecycleManager {
	return app.lifecycle
}

// RunOnce starts every service and stops them again right away
func (app *Application) RunOnce(ctx context.Context) error {
	if err := app.lifecycle.Start(ctx); err != nil {
		return err
	}
	return app.lifecycle.Stop(ctx)
}

// Run starts every service and blocks until ctx is cancelled or the
// process receives SIGINT or SIGTERM, then shuts down gracefully
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, app.signals...)
	defer stop()

	if err := app.lifecycle.Start(ctx); err != nil {
		return fmt.Errorf("failed to start services: %w", err)
	}

	<-ctx.Done()
	app.logger.Info("starting graceful shutdown", zap.Error(context.Cause(ctx)))

	return app.Shutdown(context.Background())
}

// Shutdown stops every service within ShutdownTimeout
func (app *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()

	err := app.lifecycle.Stop(shutdownCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to stop services: %w", err)
	}
	return nil
}
