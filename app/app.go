// Package app wires the deck, history and export services behind one
// lifecycle for the command-line front end.
package app

import (
	"context"

	"hrslides/config"
)

// App holds the configured services.
type App struct {
	Config  *config.Config
	Deck    *DeckService
	History *HistoryService

	registry *ServiceRegistry
}

// New constructs the services for cfg. Call Start before use and Close when
// done.
func New(ctx context.Context, cfg *config.Config, logger func(string)) (*App, error) {
	if logger == nil {
		logger = func(string) {}
	}

	a := &App{
		Config:   cfg,
		registry: NewServiceRegistry(ctx, logger),
	}
	a.History = NewHistoryService(cfg.History, logger)
	a.Deck = NewDeckService(cfg, a.History, logger)
	a.Deck.services = a.registry

	// History is optional: a broken database degrades to unrecorded builds.
	if err := a.registry.Register(a.History); err != nil {
		return nil, err
	}
	if err := a.registry.RegisterCritical(a.Deck); err != nil {
		return nil, err
	}
	return a, nil
}

// Start initializes all services.
func (a *App) Start() error {
	return a.registry.InitializeAll()
}

// Status reports the lifecycle state of the named service.
func (a *App) Status(name string) (ServiceStatus, bool) {
	return a.registry.Status(name)
}

// Degraded lists the optional services that failed to start.
func (a *App) Degraded() []ServiceStatus {
	return a.registry.Degraded()
}

// Close shuts all services down.
func (a *App) Close() {
	a.registry.ShutdownAll()
}
