package datasync

import (
	"context"
	"net/http"

	"datasync-console/internal/domain"
)

// CreateGlobalTable registers a global table.
func (c *Client) CreateGlobalTable(ctx context.Context, t domain.GlobalTable) error {
	return c.do(ctx, http.MethodPost, "/global/tables", t, nil, "Failed to create global table")
}

// ListGlobalTables returns every global table.
func (c *Client) ListGlobalTables(ctx context.Context) ([]domain.GlobalTable, error) {
	var out []domain.GlobalTable
	if err := c.do(ctx, http.MethodGet, "/global/tables", nil, &out, "Failed to fetch global tables"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetGlobalTable returns one global table.
func (c *Client) GetGlobalTable(ctx context.Context, name string) (*domain.GlobalTable, error) {
	var out domain.GlobalTable
	if err := c.do(ctx, http.MethodGet, escapePath("global", "tables", name), nil, &out, "Failed to fetch global table "+name); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGlobalTable removes a global table.
func (c *Client) DeleteGlobalTable(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, escapePath("global", "tables", name), nil, nil, "Failed to delete global table")
}

// CreateGlobalColumn adds a column to a global table.
func (c *Client) CreateGlobalColumn(ctx context.Context, col domain.GlobalColumn) error {
	path := escapePath("global", "tables", col.GlobalTableName, "columns")
	return c.do(ctx, http.MethodPost, path, col, nil, "Failed to create global column")
}

// ListGlobalColumns returns the columns of a global table.
func (c *Client) ListGlobalColumns(ctx context.Context, table string) ([]domain.GlobalColumn, error) {
	var out []domain.GlobalColumn
	path := escapePath("global", "tables", table, "columns")
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "Failed to fetch global columns"); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteGlobalColumn removes a column from a global table.
func (c *Client) DeleteGlobalColumn(ctx context.Context, table, column string) error {
	path := escapePath("global", "tables", table, "columns", column)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "Failed to delete global column")
}

// CreateTableMapping maps a physical table onto a global table.
func (c *Client) CreateTableMapping(ctx context.Context, m domain.TableMapping) error {
	path := escapePath("global", "tables", m.GlobalTableName, "mappings", "tables")
	return c.do(ctx, http.MethodPost, path, m, nil, "Failed to create table mapping")
}

// ListTableMappings returns the physical tables mapped onto a global table.
func (c *Client) ListTableMappings(ctx context.Context, table string) ([]domain.TableMapping, error) {
	var out []domain.TableMapping
	path := escapePath("global", "tables", table, "mappings", "tables")
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "Failed to fetch table mappings"); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTableMapping removes a table mapping. The mapping travels in the body.
func (c *Client) DeleteTableMapping(ctx context.Context, m domain.TableMapping) error {
	path := escapePath("global", "tables", m.GlobalTableName, "mappings", "tables")
	return c.do(ctx, http.MethodDelete, path, m, nil, "Failed to delete table mapping")
}

// CreateColumnMapping maps a physical column onto a global column.
func (c *Client) CreateColumnMapping(ctx context.Context, m domain.ColumnMapping) error {
	path := escapePath("global", "tables", m.GlobalTableName, "columns", m.GlobalColumnName, "mappings")
	return c.do(ctx, http.MethodPost, path, m, nil, "Failed to create column mapping")
}

// ListColumnMappings returns the physical columns mapped onto a global column.
func (c *Client) ListColumnMappings(ctx context.Context, table, column string) ([]domain.ColumnMapping, error) {
	var out []domain.ColumnMapping
	path := escapePath("global", "tables", table, "columns", column, "mappings")
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "Failed to fetch column mappings"); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteColumnMapping removes a column mapping. The mapping travels in the body.
func (c *Client) DeleteColumnMapping(ctx context.Context, m domain.ColumnMapping) error {
	path := escapePath("global", "tables", m.GlobalTableName, "columns", m.GlobalColumnName, "mappings")
	return c.do(ctx, http.MethodDelete, path, m, nil, "Failed to delete column mapping")
}
