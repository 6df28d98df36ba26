package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/najoast/pointdemo/bootstrap"
	"github.com/najoast/pointdemo/config"
	"github.com/najoast/pointdemo/demo"
	"github.com/najoast/pointdemo/logging"
)

var errWatchNeedsConfig = errors.New("--watch requires --config")

// loadConfig loads configuration and applies command line overrides
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := opts.newLoader().Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	return applyFlags(cfg, opts)
}

func applyFlags(cfg *config.Config, opts *rootOptions) (*config.Config, error) {
	if opts.logLevel != "" {
		cfg.Log.Level = config.LogLevel(strings.ToLower(opts.logLevel))
	}
	if opts.verbose {
		cfg.Log.Level = config.LogLevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command line flags: %w", err)
	}
	return cfg, nil
}

// runScript runs the demo once and exits
func runScript(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app := bootstrap.NewApplication(logger)
	script := demo.NewScript(cfg.Demo, cmd.OutOrStdout(), logger)
	if err := app.Register(script); err != nil {
		return err
	}

	logger.Debug("running script", zap.String("app", cfg.App.Name), zap.String("environment", cfg.App.Environment.String()))
	return app.RunOnce(cmd.Context())
}

// watchScript runs the demo, then reruns it on every change of the
// config file until interrupted
func watchScript(cmd *cobra.Command, opts *rootOptions) error {
	if opts.configFile == "" {
		return errWatchNeedsConfig
	}

	// Build the logger from an initial load so watcher errors are reported
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	watcher, err := config.NewWatcher(opts.configFile, opts.newLoader(), logger)
	if err != nil {
		return err
	}
	// Stop is idempotent; this releases the watcher when a service fails
	// to start and the reloader never gets to own it
	defer func() { _ = watcher.Stop() }()

	app := bootstrap.NewApplication(logger)
	script := demo.NewScript(watcher.GetConfig().Demo, cmd.OutOrStdout(), logger)
	if err := app.Register(script); err != nil {
		return err
	}
	if err := app.Register(demo.NewReloader(watcher, script, logger), script.Name()); err != nil {
		return err
	}

	logger.Info("watching config file", zap.String("file", opts.configFile))
	return app.Run(cmd.Context())
}
