package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	_ "modernc.org/sqlite"

	"catfacts/internal/config"
)

var sqlOpen = sql.Open

// BuildSQLiteDSN constructs a modernc.org/sqlite DSN for the configured database file.
// Pragmas are applied by the driver on every new connection, so each pooled
// connection gets the same busy timeout and case-sensitive LIKE semantics.
// Example: file:facts.db?_pragma=busy_timeout(5000)&_pragma=case_sensitive_like(1)
func BuildSQLiteDSN(c config.DatabaseConfig) (string, error) {
	if c.Path == "" {
		return "", fmt.Errorf("invalid database config: path is required")
	}

	dsn := "file:" + c.Path + "?_pragma=case_sensitive_like(1)&_pragma=journal_mode(WAL)"
	if c.BusyTimeoutMs > 0 {
		dsn += fmt.Sprintf("&_pragma=busy_timeout(%d)", c.BusyTimeoutMs)
	}
	return dsn, nil
}

// NewSQLite opens a database/sql handle on the SQLite file, creating its parent directory if needed,
// and applies pooling settings.
func NewSQLite(c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildSQLiteDSN(c)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(c.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	// Register the otelsql driver wrapper
	driverName, err := otelsql.Register("sqlite",
		otelsql.WithAttributes(semconv.DBSystemSqlite),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	// Verify the file can be opened with a short timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}
