package database

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"catfacts/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSQLiteDSN(t *testing.T) {
	tests := []struct {
		name    string
		config  config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{
			name:   "path with busy timeout",
			config: config.DatabaseConfig{Path: "facts.db", BusyTimeoutMs: 5000},
			want:   "file:facts.db?_pragma=case_sensitive_like(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		},
		{
			name:   "path without busy timeout",
			config: config.DatabaseConfig{Path: "/var/lib/catfacts/facts.db"},
			want:   "file:/var/lib/catfacts/facts.db?_pragma=case_sensitive_like(1)&_pragma=journal_mode(WAL)",
		},
		{
			name:    "missing path",
			config:  config.DatabaseConfig{BusyTimeoutMs: 5000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSQLiteDSN(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewSQLite(t *testing.T) {
	conf := config.DatabaseConfig{
		Path:               filepath.Join(t.TempDir(), "facts.db"),
		BusyTimeoutMs:      1000,
		MaxOpenConns:       4,
		MaxIdleConns:       2,
		ConnMaxLifetimeSec: 300,
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		origSqlOpen := sqlOpen
		sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
			return db, nil
		}
		defer func() { sqlOpen = origSqlOpen }()

		mock.ExpectPing()

		gotDB, err := NewSQLite(conf)
		assert.NoError(t, err)
		assert.NotNil(t, gotDB)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sqlOpen error", func(t *testing.T) {
		origSqlOpen := sqlOpen
		sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
			return nil, errors.New("open error")
		}
		defer func() { sqlOpen = origSqlOpen }()

		gotDB, err := NewSQLite(conf)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "sql open: open error")
		assert.Nil(t, gotDB)
	})

	t.Run("ping error", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)

		origSqlOpen := sqlOpen
		sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
			return db, nil
		}
		defer func() { sqlOpen = origSqlOpen }()

		mock.ExpectPing().WillReturnError(errors.New("ping failed"))

		gotDB, err := NewSQLite(conf)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "db ping: ping failed")
		assert.Nil(t, gotDB)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid config", func(t *testing.T) {
		gotDB, err := NewSQLite(config.DatabaseConfig{})
		assert.Error(t, err)
		assert.Nil(t, gotDB)
	})
}

func TestNewSQLiteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "facts.db")

	db, err := NewSQLite(config.DatabaseConfig{Path: path, BusyTimeoutMs: 1000})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE probe (id INTEGER)")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
