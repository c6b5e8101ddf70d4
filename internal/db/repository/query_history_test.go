package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasync-console/internal/db"
	"datasync-console/internal/domain"
)

func TestQueryHistoryRepo_RecordListClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := db.OpenTestStore(t)
	repo := NewQueryHistoryRepo(s.Write, s.Read)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, &domain.QueryHistoryEntry{
		Target: domain.TargetPhysical, SQL: "SELECT 1", RowCount: 1, DurationMS: 12, CreatedAt: base,
	}))
	require.NoError(t, repo.Record(ctx, &domain.QueryHistoryEntry{
		Target: domain.TargetGlobal, SQL: "SELECT * FROM global_users", Error: "table not found", CreatedAt: base.Add(time.Minute),
	}))

	all, total, err := repo.List(ctx, "", domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, all, 2)
	assert.Equal(t, "SELECT * FROM global_users", all[0].SQL)
	assert.Equal(t, "table not found", all[0].Error)
	assert.Equal(t, base.Add(time.Minute), all[0].CreatedAt.UTC())
	assert.Empty(t, all[1].Error)
	assert.Equal(t, int64(12), all[1].DurationMS)

	physical, total, err := repo.List(ctx, domain.TargetPhysical, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, physical, 1)
	assert.Equal(t, "SELECT 1", physical[0].SQL)

	require.NoError(t, repo.Clear(ctx))
	_, total, err = repo.List(ctx, "", domain.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)
}
