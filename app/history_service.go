package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"hrslides/config"
	"hrslides/database"
	"hrslides/dbpool"
)

// ErrHistoryDisabled is returned by history operations when no history
// database is open.
var ErrHistoryDisabled = errors.New("build history is disabled")

// HistoryService owns the build-history database.
type HistoryService struct {
	cfg    config.HistoryConfig
	logger func(string)

	mu    sync.RWMutex
	db    *sql.DB
	store *database.BuildStore
}

// NewHistoryService creates a history service. Nothing is opened until
// Initialize.
func NewHistoryService(cfg config.HistoryConfig, logger func(string)) *HistoryService {
	return &HistoryService{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *HistoryService) Name() string {
	return "history"
}

func (s *HistoryService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// Initialize opens the database and runs migrations. It returns
// ErrServiceDisabled when history is off in the configuration.
func (s *HistoryService) Initialize(ctx context.Context) error {
	if !s.cfg.Enabled {
		return ErrServiceDisabled
	}

	engine, err := dbpool.ParseEngine(s.cfg.Engine)
	if err != nil {
		return WrapError("history", "Initialize", err)
	}

	mgr := dbpool.New(engine, s.logger)
	db, err := database.InitDB(mgr, dbpool.OpenOptions{
		Engine:     engine,
		Path:       s.cfg.DSN,
		MaxRetries: s.cfg.MaxRetries,
	}, s.logger)
	if err != nil {
		return WrapError("history", "Initialize", err)
	}

	s.mu.Lock()
	s.db = db
	s.store = database.NewBuildStore(db)
	s.mu.Unlock()

	s.log(fmt.Sprintf("[HISTORY] Opened %s history", engine))
	return nil
}

// Shutdown closes the database if it is open.
func (s *HistoryService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.store = nil
	return err
}

// Enabled reports whether builds are being recorded.
func (s *HistoryService) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store != nil
}

func (s *HistoryService) buildStore() (*database.BuildStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store, nil
}

// Record stores b and fills in its ID.
func (s *HistoryService) Record(ctx context.Context, b *database.Build) error {
	store, err := s.buildStore()
	if err != nil {
		return WrapError("history", "Record", err)
	}
	return WrapError("history", "Record", store.Record(ctx, b))
}

// List returns up to limit builds, most recent first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]database.Build, error) {
	store, err := s.buildStore()
	if err != nil {
		return nil, WrapError("history", "List", err)
	}
	builds, err := store.List(ctx, limit)
	if err != nil {
		return nil, WrapError("history", "List", err)
	}
	return builds, nil
}

// Get returns one build.
func (s *HistoryService) Get(ctx context.Context, id string) (*database.Build, error) {
	store, err := s.buildStore()
	if err != nil {
		return nil, WrapError("history", "Get", err)
	}
	b, err := store.Get(ctx, id)
	if err != nil {
		return nil, WrapError("history", "Get", err)
	}
	return b, nil
}

// Delete removes one build.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	store, err := s.buildStore()
	if err != nil {
		return WrapError("history", "Delete", err)
	}
	return WrapError("history", "Delete", store.Delete(ctx, id))
}
