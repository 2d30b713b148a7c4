package database

import (
	"path/filepath"
	"testing"
)

// NewTestDB opens a migrated database in the test's temp dir and closes it on cleanup.
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
