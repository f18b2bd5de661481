// Package dbpool opens the build-history database. It hides the engine
// (embedded SQLite or a MySQL server) behind one Open call with retries and
// engine-specific pool settings.
//
// All code that needs a *sql.DB should go through DBManager instead of
// calling sql.Open directly.
package dbpool

import (
	"database/sql"
	"fmt"
	"strings"
)

// Engine identifies the database engine to use.
type Engine string

const (
	EngineSQLite Engine = "sqlite"
	EngineMySQL  Engine = "mysql"
)

// ParseEngine accepts an engine name in any case.
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case EngineSQLite, "sqlite3", "":
		return EngineSQLite, nil
	case EngineMySQL:
		return EngineMySQL, nil
	default:
		return "", fmt.Errorf("dbpool: unsupported engine %q", s)
	}
}

// AccessMode controls whether the connection is read-only or read-write.
type AccessMode int

const (
	ModeReadWrite AccessMode = iota
	ModeReadOnly
)

// OpenOptions configures how a database connection is opened.
type OpenOptions struct {
	// Engine to use. Defaults to the manager's engine if empty.
	Engine Engine
	// Path is the file path for SQLite and the DSN for MySQL.
	Path string
	// Mode controls read-only vs read-write access.
	Mode AccessMode
	// MaxRetries overrides the default retry count (0 = use default).
	MaxRetries int
	// RetryBaseMs overrides the base retry interval in milliseconds (0 = use default).
	RetryBaseMs int
}

// Logger is a simple logging function signature.
type Logger func(string)

// DBManager is the central connection manager.
type DBManager struct {
	logger Logger
	engine Engine
}

// New creates a new DBManager with the given default engine and logger.
func New(defaultEngine Engine, logger Logger) *DBManager {
	if logger == nil {
		logger = func(string) {}
	}
	if defaultEngine == "" {
		defaultEngine = EngineSQLite
	}
	return &DBManager{
		engine: defaultEngine,
		logger: logger,
	}
}

// DefaultEngine returns the manager's default engine.
func (m *DBManager) DefaultEngine() Engine {
	return m.engine
}

// Open opens a database connection with the given options, retrying while
// the file is locked or the server is unreachable.
func (m *DBManager) Open(opts OpenOptions) (*sql.DB, error) {
	eng := opts.Engine
	if eng == "" {
		eng = m.engine
	}

	switch eng {
	case EngineSQLite:
		return m.openSQLite(opts)
	case EngineMySQL:
		return m.openMySQL(opts)
	default:
		return nil, fmt.Errorf("dbpool: unsupported engine %q", eng)
	}
}

// OpenWritable is a convenience wrapper for read-write access.
func (m *DBManager) OpenWritable(path string) (*sql.DB, error) {
	return m.Open(OpenOptions{Path: path, Mode: ModeReadWrite})
}

// configureFilePool keeps one connection so file locks are released on Close.
func configureFilePool(db *sql.DB) {
	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(1)
}

// retryParams returns (maxRetries, baseMs) from opts or defaults.
func retryParams(opts OpenOptions) (int, int) {
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 8
	}
	baseMs := opts.RetryBaseMs
	if baseMs <= 0 {
		baseMs = 400
	}
	return maxRetries, baseMs
}
