// Package config provides configuration watching and hot-reload functionality
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits after the last write
// before reloading
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a configuration file for changes and reloads it
type Watcher struct {
	// Configuration file path
	configFile string

	// Configuration loader
	loader *Loader

	logger   *zap.Logger
	debounce time.Duration

	// Current configuration
	config   *Config
	configMu sync.RWMutex

	// File system watcher
	fsWatcher *fsnotify.Watcher

	// Event callbacks
	callbacks   []ConfigChangeCallback
	callbacksMu sync.RWMutex

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc

	// Debounced reload requests, drained by watchLoop
	reloadCh chan struct{}

	// Wait group for goroutines
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopErr  error
}

// ConfigChangeCallback is called when configuration changes
type ConfigChangeCallback func(oldConfig, newConfig *Config)

// NewWatcher creates a new configuration watcher and loads the initial
// configuration from configFile
func NewWatcher(configFile string, loader *Loader, logger *zap.Logger) (*Watcher, error) {
	if _, err := FormatFromPath(configFile); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	absPath, err := filepath.Abs(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	config, err := loader.LoadFromFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file system watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		configFile: absPath,
		loader:     loader,
		logger:     logger.Named("config.watcher"),
		debounce:   DefaultDebounce,
		config:     config,
		fsWatcher:  fsWatcher,
		reloadCh:   make(chan struct{}, 1),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// SetDebounce changes the reload debounce interval; call before Start
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start starts watching the configuration file. The parent directory is
// watched so editors that replace the file by rename keep working.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.configFile)); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}

	w.wg.Add(1)
	go w.watchLoop()

	w.logger.Debug("watching configuration", zap.String("file", w.configFile))
	return nil
}

// Stop stops watching the configuration file and waits for an in-flight
// reload, including its callbacks, to finish. It is safe to call more than
// once. Callbacks must not call Stop.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		w.cancel()
		w.stopErr = w.fsWatcher.Close()
		w.wg.Wait()
	})
	return w.stopErr
}

// GetConfig returns the current configuration
func (w *Watcher) GetConfig() *Config {
	w.configMu.RLock()
	defer w.configMu.RUnlock()
	return w.config
}

// OnConfigChange registers a callback for configuration changes
func (w *Watcher) OnConfigChange(callback ConfigChangeCallback) {
	w.callbacksMu.Lock()
	defer w.callbacksMu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Reload manually reloads the configuration
func (w *Watcher) Reload() error {
	return w.reloadConfig()
}

// watchLoop watches for file system events
func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	// Debounce rapid successive writes into one reload
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.configFile {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(w.debounce, w.requestReload)
			} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.logger.Info("config file was removed or renamed", zap.String("file", w.configFile))
			}

		case <-w.reloadCh:
			if w.ctx.Err() != nil {
				return
			}
			if err := w.reloadConfig(); err != nil {
				w.logger.Warn("failed to reload config", zap.Error(err))
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

// requestReload queues a reload for watchLoop; a pending request absorbs
// further ones
func (w *Watcher) requestReload() {
	select {
	case w.reloadCh <- struct{}{}:
	default:
	}
}

// reloadConfig reloads the configuration from file. An invalid file keeps
// the previous configuration in place.
func (w *Watcher) reloadConfig() error {
	newConfig, err := w.loader.LoadFromFile(w.configFile)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	w.configMu.Lock()
	oldConfig := w.config
	w.config = newConfig
	w.configMu.Unlock()

	w.notifyCallbacks(oldConfig, newConfig)

	w.logger.Info("configuration reloaded", zap.String("file", w.configFile))
	return nil
}

// notifyCallbacks calls registered callbacks in registration order
func (w *Watcher) notifyCallbacks(oldConfig, newConfig *Config) {
	w.callbacksMu.RLock()
	callbacks := make([]ConfigChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.callbacksMu.RUnlock()

	for _, callback := range callbacks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("config change callback panicked", zap.Any("panic", r))
				}
			}()
			callback(oldConfig, newConfig)
		}()
	}
}
