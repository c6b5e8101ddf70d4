// Package query runs SQL against the physical and global query endpoints,
// records each run, and generates SQL with the assistant.
package query

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"datasync-console/internal/domain"
)

// DefaultSQL seeds the query editor.
const DefaultSQL = "-- Write your SQL query here\nSELECT * FROM global_users LIMIT 10;"

// Service executes console queries.
type Service struct {
	backend   domain.QueryBackend
	assistant domain.AssistantBackend
	history   domain.QueryHistoryRepository
	logger    *slog.Logger
}

// NewService creates a query Service.
func NewService(backend domain.QueryBackend, assistant domain.AssistantBackend, history domain.QueryHistoryRepository, logger *slog.Logger) *Service {
	return &Service{backend: backend, assistant: assistant, history: history, logger: logger}
}

// ValidTarget reports whether target names a query endpoint.
func ValidTarget(target string) bool {
	return target == domain.TargetPhysical || target == domain.TargetGlobal
}

// Execute normalizes sql and runs it against target. Backend failures are
// returned both as the error and on the run, so callers can render the run.
func (s *Service) Execute(ctx context.Context, target, sql string) (*domain.QueryRun, error) {
	if !ValidTarget(target) {
		return nil, domain.ErrValidation("unknown query target %q", target)
	}
	stmt := domain.NormalizeSQL(sql)
	if stmt == "" {
		return nil, domain.ErrValidation("sql query is required")
	}

	run := &domain.QueryRun{Target: target, SQL: stmt}
	start := time.Now()
	if target == domain.TargetGlobal {
		run.Result, run.Err = s.backend.ExecuteGlobalQuery(ctx, stmt)
	} else {
		run.Result, run.Err = s.backend.ExecuteQuery(ctx, stmt, nil)
	}
	run.Duration = time.Since(start)

	s.record(ctx, run)

	if run.Err != nil {
		s.logger.WarnContext(ctx, "query failed", "target", target, "error", run.Err)
		return run, run.Err
	}
	s.logger.DebugContext(ctx, "query executed", "target", target, "rows", run.Result.RowCount, "duration", run.Duration)
	return run, nil
}

// record stores the run in history. Failures are logged only.
func (s *Service) record(ctx context.Context, run *domain.QueryRun) {
	if s.history == nil {
		return
	}
	entry := &domain.QueryHistoryEntry{
		Target:     run.Target,
		SQL:        run.SQL,
		DurationMS: run.Duration.Milliseconds(),
	}
	if run.Err != nil {
		entry.Error = run.Err.Error()
	} else if run.Result != nil {
		entry.RowCount = run.Result.RowCount
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "record query history", "error", err)
	}
}

// History lists past runs, newest first. An empty target lists all.
func (s *Service) History(ctx context.Context, target string, page domain.PageRequest) ([]domain.QueryHistoryEntry, int64, error) {
	if target != "" && !ValidTarget(target) {
		return nil, 0, domain.ErrValidation("unknown query target %q", target)
	}
	return s.history.List(ctx, target, page)
}

// ClearHistory deletes every history entry.
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}

// Export runs sql and writes the result set as CSV.
func (s *Service) Export(ctx context.Context, w io.Writer, target, sql string) error {
	run, err := s.Execute(ctx, target, sql)
	if err != nil {
		return err
	}
	return WriteCSV(w, run.Result)
}

// WriteCSV writes a header row of columns followed by every row, with cells
// formatted as they are displayed. A result without columns writes nothing.
func WriteCSV(w io.Writer, res *domain.QueryResult) error {
	if res == nil || len(res.Columns) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(res.Columns))
	for _, row := range res.Rows {
		for i, col := range res.Columns {
			record[i] = domain.FormatCell(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Generate asks the assistant for SQL answering prompt.
func (s *Service) Generate(ctx context.Context, prompt string, history []domain.ChatMessage) (*domain.QueryGenerationResponse, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.ErrValidation("prompt is required")
	}
	resp, err := s.assistant.GenerateQuery(ctx, prompt, history)
	if err != nil {
		return nil, fmt.Errorf("generate query: %w", err)
	}
	return resp, nil
}
