// Package bootstrap provides application lifecycle management for the demo
package bootstrap

import (
	"context"
	"fmt"
	"time"
)

// Service represents a service that can be managed by the lifecycle manager
type Service interface {
	// Start starts the service
	Start(ctx context.Context) error

	// Stop stops the service
	Stop(ctx context.Context) error

	// Health returns the health status of the service
	Health(ctx context.Context) (HealthStatus, error)

	// Name returns the service name
	Name() string
}

// HealthStatus represents the health status of a service
type HealthStatus struct {
	// State indicates whether the service is healthy
	State HealthState `json:"state"`

	// Message provides additional information about the health status
	Message string `json:"message,omitempty"`

	// Data contains additional health information
	Data map[string]interface{} `json:"data,omitempty"`
}

// HealthState represents the health state of a service
type HealthState string

const (
	HealthUnknown   HealthState = "unknown"
	HealthStarting  HealthState = "starting"
	HealthHealthy   HealthState = "healthy"
	HealthUnhealthy HealthState = "unhealthy"
	HealthStopped   HealthState = "stopped"
)

// LifecycleEvent represents an event in the service lifecycle
type LifecycleEvent struct {
	Type      string    `json:"type"`
	Service   string    `json:"service,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     error     `json:"error,omitempty"`
}

// Lifecycle event types
const (
	EventServiceRegistered  = "service.registered"
	EventServiceStarting    = "service.starting"
	EventServiceStarted     = "service.started"
	EventServiceStartFailed = "service.start_failed"
	EventServiceStopping    = "service.stopping"
	EventServiceStopped     = "service.stopped"
	EventServiceStopFailed  = "service.stop_failed"
)

// ApplicationError represents an error that occurred during application lifecycle
type ApplicationError struct {
	Operation string
	Service   string
	Err       error
}

func (e *ApplicationError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("%s failed for service %s: %v", e.Operation, e.Service, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}
