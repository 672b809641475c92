package database

import (
	"context"
	"path/filepath"
	"testing"

	"pokelearn/internal/config"
)

func TestInitializeRunsMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := Initialize(filepath.Join(t.TempDir(), "pokelearn.db"))
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	defer db.Close()

	applied, err := db.RunMigrations(ctx)
	if err != nil {
		t.Fatalf("RunMigrations() failed: %v", err)
	}
	if len(applied) != 1 || applied[0] != "001_records.sql" {
		t.Errorf("applied = %v, want [001_records.sql]", applied)
	}

	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "records").Scan(&name)
	if err != nil {
		t.Errorf("records table not found: %v", err)
	}

	// Second run is a no-op
	applied, err = db.RunMigrations(ctx)
	if err != nil {
		t.Fatalf("second RunMigrations() failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("second run applied %v, want none", applied)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db, err := Initialize(filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	defer db.Close()
	if _, err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations() failed: %v", err)
	}

	err = db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, db.Dialect.UpsertRecordQuery(), "pokemon", "25", "{}"); err != nil {
			return err
		}
		return context.Canceled
	})
	if err != context.Canceled {
		t.Fatalf("WithTx() error = %v, want context.Canceled", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d after rollback, want 0", count)
	}
}

func TestInitializeWithConfigUnsupported(t *testing.T) {
	_, err := InitializeWithConfig(&config.Config{DatabaseType: "oracle"})
	if err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}
