package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

// The created_at default keeps the fixed '+5 hours', '30 minutes' shift applied to SQLite's UTC "now".
var steps = []migrationStep{
	{
		Name: "create_table_facts",
		SQL: `CREATE TABLE IF NOT EXISTS facts (
  id         INTEGER   PRIMARY KEY AUTOINCREMENT,
  fact       TEXT      NOT NULL,
  created_at TIMESTAMP DEFAULT (datetime('now', '+5 hours', '30 minutes'))
);`,
	},
}

// EnsureMigrated checks if the 'facts' table exists and runs migrations if it doesn't.
// Every step is idempotent, so concurrent or repeated calls are safe.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbPath string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{
		"component": "database",
		"db_path":   dbPath,
	})

	log.WithFields(logrus.Fields{
		"event":  "db_migration_check",
		"status": "starting",
	}).Info("checking schema")

	var count int
	query := "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'facts'"
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if count > 0 {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithFields(logrus.Fields{
		"event":  "db_migration_start",
		"status": "in_progress",
	}).Info("applying schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema ready")

	return nil
}
