package db

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	w := buildDSN("/tmp/test.sqlite", ModeWrite)
	assert.True(t, strings.HasPrefix(w, "/tmp/test.sqlite?"))
	assert.Contains(t, w, "_journal_mode=WAL")
	assert.Contains(t, w, "_busy_timeout=5000")
	assert.Contains(t, w, "_foreign_keys=on")
	assert.Contains(t, w, "_txlock=immediate")

	r := buildDSN("/tmp/test.sqlite", ModeRead)
	assert.Contains(t, r, "_synchronous=NORMAL")
	assert.NotContains(t, r, "_txlock")
}

func TestOpenSQLite_InvalidMode(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), Mode("both"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid SQLite mode")
}

func TestOpenSQLite_InvalidPath(t *testing.T) {
	_, err := OpenSQLite("/nonexistent/dir/test.db", ModeWrite, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping sqlite")
}

func TestOpen_PoolSizesAndPragmas(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, 1, s.Write.Stats().MaxOpenConnections)
	assert.Equal(t, 4, s.Read.Stats().MaxOpenConnections)

	var journalMode string
	require.NoError(t, s.Read.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", strings.ToLower(journalMode))

	var fk int
	require.NoError(t, s.Write.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestRunMigrations_CreatesTablesAndIsIdempotent(t *testing.T) {
	s := OpenTestStore(t)

	for _, table := range []string{"chat_threads", "chat_messages", "query_history"} {
		var name string
		err := s.Read.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}

	require.NoError(t, RunMigrations(context.Background(), s.Write, nil))
}

func TestStore_ConcurrentReadersWithWriter(t *testing.T) {
	s := OpenTestStore(t)

	var wg sync.WaitGroup
	writeErrs := make([]error, 10)
	readErrs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			_, writeErrs[idx] = s.Write.Exec(
				"INSERT INTO query_history (id, target, sql_text) VALUES (?, 'physical', 'SELECT 1')",
				"q"+string(rune('a'+idx)))
		}(i)
		go func(idx int) {
			defer wg.Done()
			var n int
			readErrs[idx] = s.Read.QueryRow("SELECT count(*) FROM query_history").Scan(&n)
		}(i)
	}
	wg.Wait()

	for i := range writeErrs {
		assert.NoError(t, writeErrs[i], "writer %d", i)
		assert.NoError(t, readErrs[i], "reader %d", i)
	}

	var n int
	require.NoError(t, s.Read.QueryRow("SELECT count(*) FROM query_history").Scan(&n))
	assert.Equal(t, 10, n)
}
