package dbpool

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlDSN normalizes a DSN so DATETIME columns scan into time.Time and
// text is stored as utf8mb4.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("dbpool: invalid MySQL DSN: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}

// openMySQL opens a MySQL (or MySQL-compatible) connection with retry.
func (m *DBManager) openMySQL(opts OpenOptions) (*sql.DB, error) {
	maxRetries, baseMs := retryParams(opts)

	dsn, err := mysqlDSN(opts.Path)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		db, err := sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err != nil {
				db.Close()
			}
		}

		if err != nil {
			lastErr = err
			m.logger(fmt.Sprintf("[dbpool] MySQL attempt %d/%d failed: %v", i+1, maxRetries, err))
			if maxRetries > 1 {
				time.Sleep(time.Duration(baseMs*(i+1)) * time.Millisecond)
			}
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(3 * time.Minute)
		return db, nil
	}

	return nil, fmt.Errorf("dbpool: failed to open MySQL after %d retries: %w", maxRetries, lastErr)
}
