package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"datasync-console/internal/domain"
)

var _ domain.ChatRepository = (*ChatRepo)(nil)

// ChatRepo stores chat threads and messages. Writes go through the
// single-connection write pool; reads use the read pool.
type ChatRepo struct {
	write *sql.DB
	read  *sql.DB
}

// NewChatRepo creates a ChatRepo.
func NewChatRepo(write, read *sql.DB) *ChatRepo {
	return &ChatRepo{write: write, read: read}
}

// CreateThread inserts a thread, assigning an id when empty.
func (r *ChatRepo) CreateThread(ctx context.Context, t *domain.ChatThread) (*domain.ChatThread, error) {
	if t == nil {
		return nil, domain.ErrValidation("chat thread is required")
	}
	if t.ID == "" {
		t.ID = domain.NewID()
	}
	ts := now()
	_, err := r.write.ExecContext(ctx, `
		INSERT INTO chat_threads (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, t.ID, t.Title, ts, ts)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetThread(ctx, t.ID)
}

// GetThread returns a thread by id.
func (r *ChatRepo) GetThread(ctx context.Context, id string) (*domain.ChatThread, error) {
	var t domain.ChatThread
	err := r.read.QueryRowContext(ctx, `
		SELECT id, title, created_at, updated_at FROM chat_threads WHERE id = ?
	`, id).Scan(&t.ID, &t.Title, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("chat thread %q not found", id)
		}
		return nil, mapDBError(err)
	}
	return &t, nil
}

// ListThreads returns threads, most recently active first.
func (r *ChatRepo) ListThreads(ctx context.Context, page domain.PageRequest) ([]domain.ChatThread, int64, error) {
	var total int64
	if err := r.read.QueryRowContext(ctx, `SELECT count(*) FROM chat_threads`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.read.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at
		FROM chat_threads
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.ChatThread
	for rows.Next() {
		var t domain.ChatThread
		if err := rows.Scan(&t.ID, &t.Title, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// DeleteThread removes a thread and, by cascade, its messages.
func (r *ChatRepo) DeleteThread(ctx context.Context, id string) error {
	res, err := r.write.ExecContext(ctx, `DELETE FROM chat_threads WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("chat thread %q not found", id)
	}
	return nil
}

// AppendMessage adds a message at the end of its thread and bumps the
// thread's activity time. The first user message becomes the thread title
// when the thread has none.
func (r *ChatRepo) AppendMessage(ctx context.Context, m *domain.StoredMessage) (*domain.StoredMessage, error) {
	if m == nil {
		return nil, domain.ErrValidation("chat message is required")
	}
	if m.ID == "" {
		m.ID = domain.NewID()
	}

	var toolJSON sql.NullString
	if len(m.ToolResults) > 0 {
		b, err := json.Marshal(m.ToolResults)
		if err != nil {
			return nil, fmt.Errorf("marshal tool results: %w", err)
		}
		toolJSON = sql.NullString{String: string(b), Valid: true}
	}

	tx, err := r.write.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ts := now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO chat_messages (id, thread_id, seq, role, content, tool_results, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_messages WHERE thread_id = ?), ?, ?, ?, ?)
	`, m.ID, m.ThreadID, m.ThreadID, m.Role, m.Content, toolJSON, ts)
	if err != nil {
		return nil, mapDBError(err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE chat_threads
		SET updated_at = ?,
		    title = CASE WHEN title = '' AND ? = 'user' THEN substr(?, 1, 80) ELSE title END
		WHERE id = ?
	`, ts, m.Role, m.Content, m.ThreadID)
	if err != nil {
		return nil, mapDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	m.CreatedAt = ts
	return m, nil
}

// ListMessages returns a thread's messages in conversation order.
func (r *ChatRepo) ListMessages(ctx context.Context, threadID string) ([]domain.StoredMessage, error) {
	rows, err := r.read.QueryContext(ctx, `
		SELECT id, thread_id, role, content, tool_results, created_at
		FROM chat_messages
		WHERE thread_id = ?
		ORDER BY seq
	`, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.StoredMessage
	for rows.Next() {
		var (
			m        domain.StoredMessage
			toolJSON sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.Role, &m.Content, &toolJSON, &m.CreatedAt); err != nil {
			return nil, err
		}
		if toolJSON.Valid && toolJSON.String != "" {
			if err := json.Unmarshal([]byte(toolJSON.String), &m.ToolResults); err != nil {
				return nil, fmt.Errorf("unmarshal tool results: %w", err)
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
