// Package bootstrap provides service lifecycle management
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrCircularDependency is returned when services depend on each other
var ErrCircularDependency = errors.New("circular dependency detected")

// LifecycleManager starts services in dependency order and stops them in
// reverse order
type LifecycleManager struct {
	// services holds all registered services
	services map[string]Service

	// dependencies tracks service dependencies
	dependencies map[string][]string

	// registered keeps registration order for deterministic startup
	registered []string

	// startOrder tracks the order services were started
	startOrder []string

	// mutex protects concurrent access
	mutex sync.RWMutex

	started bool

	// listeners for lifecycle events
	listeners []func(LifecycleEvent)

	logger *zap.Logger

	// timeout for service operations
	timeout time.Duration
}

// NewLifecycleManager creates a new lifecycle manager
func NewLifecycleManager(logger *zap.Logger) *LifecycleManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleManager{
		services:     make(map[string]Service),
		dependencies: make(map[string][]string),
		logger:       logger.Named("lifecycle"),
		timeout:      30 * time.Second,
	}
}

// Register registers a service with the lifecycle manager
func (lm *LifecycleManager) Register(service Service, deps ...string) error {
	if service == nil {
		return fmt.Errorf("service cannot be nil")
	}
	name := service.Name()
	if name == "" {
		return fmt.Errorf("service name cannot be empty")
	}

	lm.mutex.Lock()
	defer lm.mutex.Unlock()

	if lm.started {
		return fmt.Errorf("cannot register service %s: lifecycle manager already started", name)
	}
	if _, exists := lm.services[name]; exists {
		return fmt.Errorf("service %s is already registered", name)
	}

	lm.services[name] = service
	lm.dependencies[name] = deps
	lm.registered = append(lm.registered, name)

	lm.broadcastEvent(LifecycleEvent{Type: EventServiceRegistered, Service: name})
	return nil
}

// Start starts all services in dependency order. Services already started
// are stopped again when a later one fails.
func (lm *LifecycleManager) Start(ctx context.Context) error {
	lm.mutex.Lock()
	defer lm.mutex.Unlock()

	if lm.started {
		return fmt.Errorf("lifecycle manager already started")
	}

	order, err := lm.calculateStartOrder()
	if err != nil {
		return &ApplicationError{Operation: "start", Err: err}
	}

	for _, name := range order {
		service := lm.services[name]
		lm.broadcastEvent(LifecycleEvent{Type: EventServiceStarting, Service: name})

		startCtx, cancel := context.WithTimeout(ctx, lm.timeout)
		err := service.Start(startCtx)
		cancel()

		if err != nil {
			lm.broadcastEvent(LifecycleEvent{Type: EventServiceStartFailed, Service: name, Error: err})
			// Rollback failures travel with the start error
			stopErr := lm.stopLocked(ctx)
			return &ApplicationError{Operation: "start", Service: name, Err: errors.Join(err, stopErr)}
		}

		lm.startOrder = append(lm.startOrder, name)
		lm.broadcastEvent(LifecycleEvent{Type: EventServiceStarted, Service: name})
	}

	lm.started = true
	return nil
}

// Stop stops all started services in reverse start order and returns the
// first error encountered
func (lm *LifecycleManager) Stop(ctx context.Context) error {
	lm.mutex.Lock()
	defer lm.mutex.Unlock()

	if !lm.started {
		return nil
	}
	lm.started = false
	return lm.stopLocked(ctx)
}

func (lm *LifecycleManager) stopLocked(ctx context.Context) error {
	var firstErr error

	for i := len(lm.startOrder) - 1; i >= 0; i-- {
		name := lm.startOrder[i]
		lm.broadcastEvent(LifecycleEvent{Type: EventServiceStopping, Service: name})

		stopCtx, cancel := context.WithTimeout(ctx, lm.timeout)
		err := lm.services[name].Stop(stopCtx)
		cancel()

		if err != nil {
			if firstErr == nil {
				firstErr = &ApplicationError{Operation: "stop", Service: name, Err: err}
			}
			lm.broadcastEvent(LifecycleEvent{Type: EventServiceStopFailed, Service: name, Error: err})
			continue
		}
		lm.broadcastEvent(LifecycleEvent{Type: EventServiceStopped, Service: name})
	}

	lm.startOrder = nil
	return firstErr
}

// Health returns the health status of all services
func (lm *LifecycleManager) Health(ctx context.Context) map[string]HealthStatus {
	lm.mutex.RLock()
	defer lm.mutex.RUnlock()

	health := make(map[string]HealthStatus, len(lm.services))
	for name, service := range lm.services {
		healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		status, err := service.Health(healthCtx)
		cancel()

		if err != nil {
			status = HealthStatus{State: HealthUnhealthy, Message: err.Error()}
		}
		health[name] = status
	}
	return health
}

// Services returns all registered service names
func (lm *LifecycleManager) Services() []string {
	lm.mutex.RLock()
	defer lm.mutex.RUnlock()

	names := append([]string(nil), lm.registered...)
	sort.Strings(names)
	return names
}

// AddListener adds a lifecycle event listener. Listeners run synchronously
// while the manager holds its lock and must not call back into it.
func (lm *LifecycleManager) AddListener(listener func(LifecycleEvent)) {
	lm.mutex.Lock()
	defer lm.mutex.Unlock()
	lm.listeners = append(lm.listeners, listener)
}

// SetTimeout sets the timeout for service operations
func (lm *LifecycleManager) SetTimeout(timeout time.Duration) {
	lm.mutex.Lock()
	defer lm.mutex.Unlock()
	lm.timeout = timeout
}

// IsStarted returns true if the lifecycle manager has been started
func (lm *LifecycleManager) IsStarted() bool {
	lm.mutex.RLock()
	defer lm.mutex.RUnlock()
	return lm.started
}

// calculateStartOrder orders services so each starts after its
// dependencies; ties keep registration order
func (lm *LifecycleManager) calculateStartOrder() ([]string, error) {
	// Kahn's algorithm
	inDegree := make(map[string]int, len(lm.services))
	dependents := make(map[string][]string, len(lm.services))

	for _, name := range lm.registered {
		for _, dep := range lm.dependencies[name] {
			if _, exists := lm.services[dep]; !exists {
				return nil, fmt.Errorf("dependency %s of service %s is not registered", dep, name)
			}
			dependents[dep] = append(dependents[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for _, name := range lm.registered {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	result := make([]string, 0, len(lm.registered))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(lm.registered) {
		return nil, ErrCircularDependency
	}
	return result, nil
}

// broadcastEvent logs the event and hands it to every listener
func (lm *LifecycleManager) broadcastEvent(event LifecycleEvent) {
	event.Timestamp = time.Now()

	if event.Error != nil {
		lm.logger.Warn(event.Type, zap.String("service", event.Service), zap.Error(event.Error))
	} else {
		lm.logger.Debug(event.Type, zap.String("service", event.Service))
	}

	for _, listener := range lm.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					lm.logger.Error("lifecycle listener panicked", zap.Any("panic", r))
				}
			}()
			listener(event)
		}()
	}
}
