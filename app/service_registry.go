package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrServiceDisabled is returned by Initialize when configuration turns a
// service off. The registry records the service as disabled, not degraded.
var ErrServiceDisabled = errors.New("service disabled")

// Service is the lifecycle every application service implements.
type Service interface {
	// Name is used in log lines and error messages.
	Name() string
	// Initialize runs once all services are constructed.
	Initialize(ctx context.Context) error
	// Shutdown releases resources.
	Shutdown() error
}

// ServiceState is where a service stands in its lifecycle.
type ServiceState int

const (
	StatePending ServiceState = iota
	StateReady
	StateDisabled
	StateDegraded
	StateStopped
)

func (s ServiceState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateDisabled:
		return "disabled"
	case StateDegraded:
		return "degraded"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("ServiceState(%d)", int(s))
}

// ServiceStatus reports one registered service. Err is the initialization
// error of a degraded service.
type ServiceStatus struct {
	Name     string
	Critical bool
	State    ServiceState
	Err      error
}

// statusSource is what services consult about their peers.
type statusSource interface {
	Status(name string) (ServiceStatus, bool)
}

type serviceEntry struct {
	service  Service
	critical bool // startup fails if this service fails
	state    ServiceState
	err      error
}

func (e *serviceEntry) status() ServiceStatus {
	return ServiceStatus{
		Name:     e.service.Name(),
		Critical: e.critical,
		State:    e.state,
		Err:      e.err,
	}
}

// ServiceRegistry owns the services of a run, starts and stops them in
// order, and remembers which ones came up.
type ServiceRegistry struct {
	ctx      context.Context
	logger   func(string)
	mu       sync.RWMutex
	services []*serviceEntry
	byName   map[string]*serviceEntry
}

// NewServiceRegistry creates an empty registry.
func NewServiceRegistry(ctx context.Context, logger func(string)) *ServiceRegistry {
	if logger == nil {
		logger = func(string) {}
	}
	return &ServiceRegistry{
		ctx:    ctx,
		logger: logger,
		byName: make(map[string]*serviceEntry),
	}
}

// Register adds an optional service: a failed initialization leaves it
// degraded and the run continues without it.
func (r *ServiceRegistry) Register(svc Service) error {
	return r.register(svc, false)
}

// RegisterCritical adds a service that must initialize for the run to start.
func (r *ServiceRegistry) RegisterCritical(svc Service) error {
	return r.register(svc, true)
}

func (r *ServiceRegistry) register(svc Service, critical bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := svc.Name()
	if _, exists := r.byName[name]; exists {
		return WrapError("ServiceRegistry", "Register", fmt.Errorf("service %q already registered", name))
	}

	entry := &serviceEntry{service: svc, critical: critical}
	r.services = append(r.services, entry)
	r.byName[name] = entry
	return nil
}

// Get looks a service up by name.
func (r *ServiceRegistry) Get(name string) (Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return entry.service, true
}

// Status reports the state of one service.
func (r *ServiceRegistry) Status(name string) (ServiceStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byName[name]
	if !ok {
		return ServiceStatus{}, false
	}
	return entry.status(), true
}

// Degraded lists the optional services whose initialization failed, in
// registration order.
func (r *ServiceRegistry) Degraded() []ServiceStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ServiceStatus
	for _, entry := range r.services {
		if entry.state == StateDegraded {
			out = append(out, entry.status())
		}
	}
	return out
}

func (r *ServiceRegistry) entries() []*serviceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*serviceEntry(nil), r.services...)
}

func (r *ServiceRegistry) setState(entry *serviceEntry, state ServiceState, err error) {
	r.mu.Lock()
	entry.state = state
	entry.err = err
	r.mu.Unlock()
}

// InitializeAll initializes services in registration order. A critical
// failure stops startup; other failures leave the service degraded.
func (r *ServiceRegistry) InitializeAll() error {
	for _, entry := range r.entries() {
		name := entry.service.Name()
		err := entry.service.Initialize(r.ctx)
		switch {
		case err == nil:
			r.setState(entry, StateReady, nil)
		case errors.Is(err, ErrServiceDisabled):
			r.setState(entry, StateDisabled, nil)
		case entry.critical:
			r.setState(entry, StateDegraded, err)
			r.logger(fmt.Sprintf("Critical service %q failed to initialize: %v", name, err))
			return WrapError("ServiceRegistry", "InitializeAll", fmt.Errorf("critical service %q failed: %w", name, err))
		default:
			r.setState(entry, StateDegraded, err)
			r.logger(fmt.Sprintf("Service %q failed to initialize, continuing degraded: %v", name, err))
		}
	}
	return nil
}

// ShutdownAll shuts services down in reverse registration order. Errors are
// logged and do not stop the remaining shutdowns.
func (r *ServiceRegistry) ShutdownAll() {
	entries := r.entries()
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if err := entry.service.Shutdown(); err != nil {
			r.logger(fmt.Sprintf("Service %q shutdown error: %v", entry.service.Name(), err))
		}
		r.setState(entry, StateStopped, entry.err)
	}
}
