package dbpool

import (
	"fmt"
	"strings"
)

// Dialect provides engine-specific SQL fragments so callers don't need to
// know which engine is in use.
type Dialect struct {
	Engine Engine
}

// NewDialect creates a Dialect for the given engine.
func NewDialect(engine Engine) *Dialect {
	return &Dialect{Engine: engine}
}

// QuoteIdent returns a properly quoted SQL identifier.
// SQLite uses double quotes; MySQL uses backticks.
// Internal quotes are escaped by doubling them.
func (d *Dialect) QuoteIdent(name string) string {
	switch d.Engine {
	case EngineMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// KeyType is the column type of short string keys such as UUIDs and
// migration versions. MySQL cannot index unbounded TEXT.
func (d *Dialect) KeyType(size int) string {
	if d.Engine == EngineMySQL {
		return fmt.Sprintf("VARCHAR(%d)", size)
	}
	return "TEXT"
}

// TimestampType is the column type of build timestamps.
func (d *Dialect) TimestampType() string {
	if d.Engine == EngineMySQL {
		return "DATETIME(6)"
	}
	return "TIMESTAMP"
}

// TableOptions is appended to CREATE TABLE statements.
func (d *Dialect) TableOptions() string {
	if d.Engine == EngineMySQL {
		return " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	}
	return ""
}

// ListTablesQuery returns the SQL to list user tables.
func (d *Dialect) ListTablesQuery() string {
	switch d.Engine {
	case EngineSQLite:
		return "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'"
	default:
		return "SHOW TABLES"
	}
}
