package repository

import (
	"context"
	"database/sql"

	"datasync-console/internal/domain"
)

var _ domain.QueryHistoryRepository = (*QueryHistoryRepo)(nil)

// QueryHistoryRepo records query runs made from the console.
type QueryHistoryRepo struct {
	write *sql.DB
	read  *sql.DB
}

// NewQueryHistoryRepo creates a QueryHistoryRepo.
func NewQueryHistoryRepo(write, read *sql.DB) *QueryHistoryRepo {
	return &QueryHistoryRepo{write: write, read: read}
}

// Record inserts a history entry.
func (r *QueryHistoryRepo) Record(ctx context.Context, e *domain.QueryHistoryEntry) error {
	if e.ID == "" {
		e.ID = domain.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}
	_, err := r.write.ExecContext(ctx, `
		INSERT INTO query_history (id, target, sql_text, row_count, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Target, e.SQL, e.RowCount, e.DurationMS, nullString(e.Error), e.CreatedAt.UTC())
	return mapDBError(err)
}

// List returns entries newest first. An empty target lists every target.
func (r *QueryHistoryRepo) List(ctx context.Context, target string, page domain.PageRequest) ([]domain.QueryHistoryEntry, int64, error) {
	var total int64
	err := r.read.QueryRowContext(ctx, `
		SELECT count(*) FROM query_history WHERE (? = '' OR target = ?)
	`, target, target).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.read.QueryContext(ctx, `
		SELECT id, target, sql_text, row_count, duration_ms, error, created_at
		FROM query_history
		WHERE (? = '' OR target = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, target, target, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.QueryHistoryEntry
	for rows.Next() {
		var (
			e      domain.QueryHistoryEntry
			errMsg sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Target, &e.SQL, &e.RowCount, &e.DurationMS, &errMsg, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		e.Error = errMsg.String
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// Clear deletes every history entry.
func (r *QueryHistoryRepo) Clear(ctx context.Context) error {
	_, err := r.write.ExecContext(ctx, `DELETE FROM query_history`)
	return mapDBError(err)
}
