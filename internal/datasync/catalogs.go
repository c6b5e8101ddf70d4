package datasync

import (
	"context"
	"net/http"

	"datasync-console/internal/domain"
)

// ListCatalogs returns every physical catalog.
func (c *Client) ListCatalogs(ctx context.Context) ([]domain.Catalog, error) {
	var out []domain.Catalog
	if err := c.do(ctx, http.MethodGet, "/catalogs", nil, &out, "Failed to fetch catalogs"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCatalog returns one catalog by name.
func (c *Client) GetCatalog(ctx context.Context, name string) (*domain.Catalog, error) {
	var out domain.Catalog
	if err := c.do(ctx, http.MethodGet, escapePath("catalogs", name), nil, &out, "Failed to fetch catalog "+name); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSchemas returns the schemas of a catalog.
func (c *Client) ListSchemas(ctx context.Context, catalog string) ([]domain.Schema, error) {
	var out []domain.Schema
	path := escapePath("catalogs", catalog, "schemas")
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "Failed to fetch schemas for catalog "+catalog); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscoverTables lists the tables of a schema.
func (c *Client) DiscoverTables(ctx context.Context, catalog, schema string) ([]domain.Table, error) {
	var out []domain.Table
	path := escapePath("discover", "catalogs", catalog, "schemas", schema, "tables")
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "Failed to fetch tables"); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscoverColumns lists the columns of a table.
func (c *Client) DiscoverColumns(ctx context.Context, catalog, schema, table string) ([]domain.Column, error) {
	var out []domain.Column
	path := escapePath("discover", "catalogs", catalog, "schemas", schema, "tables", table, "columns")
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "Failed to fetch columns"); err != nil {
		return nil, err
	}
	return out, nil
}
