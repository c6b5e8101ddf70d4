package query

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasync-console/internal/db"
	"datasync-console/internal/db/repository"
	"datasync-console/internal/domain"
	"datasync-console/internal/testutil"
)

func setup(t *testing.T, backend *testutil.MockBackend) (*Service, *repository.QueryHistoryRepo) {
	t.Helper()
	s := db.OpenTestStore(t)
	history := repository.NewQueryHistoryRepo(s.Write, s.Read)
	return NewService(backend, backend, history, slog.New(slog.DiscardHandler)), history
}

func usersResult() *domain.QueryResult {
	return &domain.QueryResult{
		Columns: []string{"id", "name", "tags"},
		Rows: []map[string]interface{}{
			{"id": json.Number("1"), "name": "Ada", "tags": []interface{}{"a", "b"}},
			{"id": json.Number("2"), "name": nil, "tags": nil},
		},
		RowCount: 2,
	}
}

func TestExecute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		sql      string
		backend  *testutil.MockBackend
		wantSQL  string
		wantErr  string
		wantRows int
	}{
		{
			name:    "empty SQL is rejected",
			target:  domain.TargetPhysical,
			sql:     "  ;  ",
			backend: &testutil.MockBackend{},
			wantErr: "sql query is required",
		},
		{
			name:    "unknown target is rejected",
			target:  "postgres",
			sql:     "SELECT 1",
			backend: &testutil.MockBackend{},
			wantErr: `unknown query target "postgres"`,
		},
		{
			name:   "physical strips trailing semicolon",
			target: domain.TargetPhysical,
			sql:    "  SELECT * FROM users;\n",
			backend: &testutil.MockBackend{
				ExecuteQueryFn: func(_ context.Context, sql string, params map[string]interface{}) (*domain.QueryResult, error) {
					if sql != "SELECT * FROM users" {
						return nil, errors.New("unexpected sql " + sql)
					}
					return usersResult(), nil
				},
			},
			wantSQL:  "SELECT * FROM users",
			wantRows: 2,
		},
		{
			name:   "global goes to the global endpoint",
			target: domain.TargetGlobal,
			sql:    "SELECT * FROM global_users LIMIT 10;",
			backend: &testutil.MockBackend{
				ExecuteGlobalQueryFn: func(_ context.Context, _ string) (*domain.QueryResult, error) {
					return usersResult(), nil
				},
			},
			wantSQL:  "SELECT * FROM global_users LIMIT 10",
			wantRows: 2,
		},
		{
			name:   "backend error is returned",
			target: domain.TargetGlobal,
			sql:    "SELECT * FROM nope",
			backend: &testutil.MockBackend{
				ExecuteGlobalQueryFn: func(_ context.Context, _ string) (*domain.QueryResult, error) {
					return nil, errors.New("table nope not found")
				},
			},
			wantSQL: "SELECT * FROM nope",
			wantErr: "table nope not found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, _ := setup(t, tc.backend)

			run, err := svc.Execute(context.Background(), tc.target, tc.sql)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				if run != nil {
					assert.Equal(t, tc.wantSQL, run.SQL)
					assert.Equal(t, err, run.Err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSQL, run.SQL)
			assert.Equal(t, tc.wantRows, run.Result.RowCount)
		})
	}
}

func TestExecute_RecordsHistory(t *testing.T) {
	t.Parallel()
	calls := 0
	backend := &testutil.MockBackend{
		ExecuteQueryFn: func(_ context.Context, _ string, _ map[string]interface{}) (*domain.QueryResult, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("syntax error")
			}
			return usersResult(), nil
		},
	}
	svc, _ := setup(t, backend)
	ctx := context.Background()

	_, err := svc.Execute(ctx, domain.TargetPhysical, "SELECT 1")
	require.NoError(t, err)
	_, err = svc.Execute(ctx, domain.TargetPhysical, "SELEC 1")
	require.Error(t, err)
	_, err = svc.Execute(ctx, domain.TargetPhysical, "")
	require.Error(t, err)

	entries, total, err := svc.History(ctx, "", domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "rejected SQL is not recorded")
	require.Len(t, entries, 2)

	byText := map[string]domain.QueryHistoryEntry{}
	for _, e := range entries {
		byText[e.SQL] = e
	}
	assert.Equal(t, 2, byText["SELECT 1"].RowCount)
	assert.Empty(t, byText["SELECT 1"].Error)
	assert.Equal(t, "syntax error", byText["SELEC 1"].Error)

	_, _, err = svc.History(ctx, "mongo", domain.PageRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	require.NoError(t, svc.ClearHistory(ctx))
	_, total, err = svc.History(ctx, domain.TargetPhysical, domain.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, usersResult()))
	assert.Equal(t, "id,name,tags\n1,Ada,\"[\"\"a\"\",\"\"b\"\"]\"\n2,NULL,NULL\n", buf.String())
}

func TestWriteCSV_NoColumnsWritesNothing(t *testing.T) {
	t.Parallel()
	for _, res := range []*domain.QueryResult{nil, {Rows: []map[string]interface{}{}}} {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, res))
		assert.Empty(t, buf.String())
	}
}

func TestExport(t *testing.T) {
	t.Parallel()
	backend := &testutil.MockBackend{
		ExecuteGlobalQueryFn: func(_ context.Context, _ string) (*domain.QueryResult, error) {
			return &domain.QueryResult{
				Columns:  []string{"active"},
				Rows:     []map[string]interface{}{{"active": true}},
				RowCount: 1,
			}, nil
		},
	}
	svc, _ := setup(t, backend)
	var buf bytes.Buffer

	require.NoError(t, svc.Export(context.Background(), &buf, domain.TargetGlobal, "SELECT active FROM global_users"))
	assert.Equal(t, "active\ntrue\n", buf.String())
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	var gotPrompt string
	backend := &testutil.MockBackend{
		GenerateQueryFn: func(_ context.Context, message string, _ []domain.ChatMessage) (*domain.QueryGenerationResponse, error) {
			gotPrompt = message
			return &domain.QueryGenerationResponse{Message: "Here you go", GeneratedSQL: "SELECT count(*) FROM global_users"}, nil
		},
	}
	svc, _ := setup(t, backend)

	resp, err := svc.Generate(context.Background(), "  how many users?  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "how many users?", gotPrompt)
	assert.Equal(t, "SELECT count(*) FROM global_users", resp.GeneratedSQL)

	_, err = svc.Generate(context.Background(), " ", nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}
