package studio

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"datasync-console/internal/domain"
)

// GlobalTableView is a global table with its columns and table mappings.
type GlobalTableView struct {
	Table    domain.GlobalTable
	Columns  []domain.GlobalColumn
	Mappings []domain.TableMapping
	Err      error
}

// GlobalTables lists global tables with their columns and mappings.
func (s *Service) GlobalTables(ctx context.Context) ([]GlobalTableView, error) {
	tables, err := s.global.ListGlobalTables(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]GlobalTableView, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for i, t := range tables {
		views[i].Table = t
		g.Go(func() error {
			cols, err := s.global.ListGlobalColumns(gctx, t.Name)
			if err != nil {
				views[i].Err = err
				return nil
			}
			mappings, err := s.global.ListTableMappings(gctx, t.Name)
			if err != nil {
				views[i].Err = err
			}
			views[i].Columns, views[i].Mappings = cols, mappings
			return nil
		})
	}
	_ = g.Wait()
	return views, nil
}

// GlobalTable returns one global table with its columns and mappings.
func (s *Service) GlobalTable(ctx context.Context, name string) (*GlobalTableView, error) {
	t, err := s.global.GetGlobalTable(ctx, name)
	if err != nil {
		return nil, err
	}
	view := &GlobalTableView{Table: *t}
	if view.Columns, err = s.global.ListGlobalColumns(ctx, name); err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", name, err)
	}
	if view.Mappings, err = s.global.ListTableMappings(ctx, name); err != nil {
		return nil, fmt.Errorf("list mappings of %s: %w", name, err)
	}
	return view, nil
}

// CreateGlobalTable validates and creates a global table.
func (s *Service) CreateGlobalTable(ctx context.Context, t domain.GlobalTable) error {
	if err := domain.ValidateGlobalTable(t); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "creating global table", "table", t.Name)
	return s.global.CreateGlobalTable(ctx, t)
}

// DeleteGlobalTable deletes a global table.
func (s *Service) DeleteGlobalTable(ctx context.Context, name string) error {
	s.logger.InfoContext(ctx, "deleting global table", "table", name)
	return s.global.DeleteGlobalTable(ctx, name)
}

// CreateGlobalColumn validates and creates a global column.
func (s *Service) CreateGlobalColumn(ctx context.Context, c domain.GlobalColumn) error {
	if err := domain.ValidateGlobalColumn(c); err != nil {
		return err
	}
	return s.global.CreateGlobalColumn(ctx, c)
}

// DeleteGlobalColumn deletes a global column.
func (s *Service) DeleteGlobalColumn(ctx context.Context, table, column string) error {
	return s.global.DeleteGlobalColumn(ctx, table, column)
}

// CreateTableMapping validates and creates a table mapping.
func (s *Service) CreateTableMapping(ctx context.Context, m domain.TableMapping) error {
	if err := domain.ValidateTableMapping(m); err != nil {
		return err
	}
	return s.global.CreateTableMapping(ctx, m)
}

// DeleteTableMapping deletes a table mapping.
func (s *Service) DeleteTableMapping(ctx context.Context, m domain.TableMapping) error {
	if err := domain.ValidateTableMapping(m); err != nil {
		return err
	}
	return s.global.DeleteTableMapping(ctx, m)
}

// ColumnMappings lists the physical columns mapped onto a global column.
func (s *Service) ColumnMappings(ctx context.Context, table, column string) ([]domain.ColumnMapping, error) {
	return s.global.ListColumnMappings(ctx, table, column)
}

// CreateColumnMapping validates and creates a column mapping.
func (s *Service) CreateColumnMapping(ctx context.Context, m domain.ColumnMapping) error {
	if err := domain.ValidateColumnMapping(m); err != nil {
		return err
	}
	return s.global.CreateColumnMapping(ctx, m)
}

// DeleteColumnMapping deletes a column mapping.
func (s *Service) DeleteColumnMapping(ctx context.Context, m domain.ColumnMapping) error {
	if err := domain.ValidateColumnMapping(m); err != nil {
		return err
	}
	return s.global.DeleteColumnMapping(ctx, m)
}
