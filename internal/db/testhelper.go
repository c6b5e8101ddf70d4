package db

import (
	"context"
	"path/filepath"
	"testing"
)

// OpenTestStore opens a migrated Store in t.TempDir() and closes it on cleanup.
func OpenTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.sqlite"), 4)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := RunMigrations(context.Background(), s.Write, nil); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return s
}
