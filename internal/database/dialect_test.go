package database

import (
	"strings"
	"testing"
)

func TestDialectDriverNames(t *testing.T) {
	tests := []struct {
		dialect    Dialect
		driver     string
		migrations string
	}{
		{NewSQLiteDialect(), "sqlite3", "sqlite"},
		{NewPostgresDialect(), "postgres", "postgres"},
		{NewMySQLDialect(), "mysql", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrations {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrations)
			}
		})
	}
}

func TestDialectDSN(t *testing.T) {
	cfg := DialectConfig{Path: "/tmp/p.db", URL: "postgres://u@h/db"}

	if got := NewSQLiteDialect().DSN(cfg); got != cfg.Path {
		t.Errorf("SQLite DSN() = %v, want %v", got, cfg.Path)
	}
	if got := NewPostgresDialect().DSN(cfg); got != cfg.URL {
		t.Errorf("Postgres DSN() = %v, want %v", got, cfg.URL)
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT value FROM records WHERE partition_name = ?",
			expected: "SELECT value FROM records WHERE partition_name = ?",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "DELETE FROM records WHERE partition_name = ? AND record_key = ?",
			expected: "DELETE FROM records WHERE partition_name = $1 AND record_key = $2",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "DELETE FROM records WHERE partition_name = ?",
			expected: "DELETE FROM records WHERE partition_name = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestUpsertRecordQueryPlaceholders(t *testing.T) {
	for _, d := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		q := d.RewriteQuery(d.UpsertRecordQuery())
		if d.DriverName() == "postgres" {
			if !strings.Contains(q, "$3") || strings.Contains(q, "?") {
				t.Errorf("%s upsert not rewritten: %s", d.DriverName(), q)
			}
			continue
		}
		if n := strings.Count(q, "?"); n != 3 {
			t.Errorf("%s upsert has %d placeholders, want 3", d.DriverName(), n)
		}
	}
}
