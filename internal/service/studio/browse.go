package studio

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"datasync-console/internal/domain"
)

// BrowseRequest selects what the data-source browser shows. Catalog and
// Schema accept domain.AllSentinel.
type BrowseRequest struct {
	Catalog string
	Schema  string
	Search  string
}

// TableEntry is a table with its columns.
type TableEntry struct {
	Table   domain.Table
	Columns []domain.Column
	Err     error
}

// SchemaSection is one catalog › schema group of tables.
type SchemaSection struct {
	Catalog string
	Schema  string
	Tables  []TableEntry
	Err     error
}

// BrowseResult is the data-source browser model.
type BrowseResult struct {
	Catalogs    []domain.Catalog
	CatalogsErr error
	// Schemas lists the options for a concrete catalog selection.
	Schemas    []domain.Schema
	SchemasErr error
	Sections   []SchemaSection
	// ShowSearch is true once a schema (or every catalog) is selected.
	ShowSearch bool
}

// Browse loads catalogs, the schema options of the selected catalog and, once
// a scope is chosen, every table with its columns. Tables are filtered by a
// case-insensitive substring match on Search; sections left empty by the
// filter are dropped.
func (s *Service) Browse(ctx context.Context, req BrowseRequest) *BrowseResult {
	res := &BrowseResult{}
	res.Catalogs, res.CatalogsErr = s.meta.ListCatalogs(ctx)

	allCatalogs := req.Catalog == domain.AllSentinel
	if req.Catalog != "" && !allCatalogs {
		res.Schemas, res.SchemasErr = s.meta.ListSchemas(ctx, req.Catalog)
	}
	res.ShowSearch = allCatalogs || (req.Catalog != "" && req.Schema != "")

	var sections []SchemaSection
	switch {
	case allCatalogs:
		sections = s.allCatalogSections(ctx, res.Catalogs)
	case req.Catalog != "" && req.Schema == domain.AllSentinel:
		if res.SchemasErr != nil {
			sections = []SchemaSection{{Catalog: req.Catalog, Err: res.SchemasErr}}
		}
		for _, sc := range res.Schemas {
			sections = append(sections, SchemaSection{Catalog: req.Catalog, Schema: sc.Name})
		}
	case req.Catalog != "" && req.Schema != "":
		sections = []SchemaSection{{Catalog: req.Catalog, Schema: req.Schema}}
	}

	s.loadTables(ctx, sections, req.Search)

	for _, sec := range sections {
		if sec.Err != nil || len(sec.Tables) > 0 {
			res.Sections = append(res.Sections, sec)
		}
	}
	return res
}

// allCatalogSections expands every catalog into its schemas.
func (s *Service) allCatalogSections(ctx context.Context, catalogs []domain.Catalog) []SchemaSection {
	perCatalog := make([][]SchemaSection, len(catalogs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for i, c := range catalogs {
		g.Go(func() error {
			schemas, err := s.meta.ListSchemas(gctx, c.Name)
			if err != nil {
				perCatalog[i] = []SchemaSection{{Catalog: c.Name, Err: err}}
				return nil
			}
			for _, sc := range schemas {
				perCatalog[i] = append(perCatalog[i], SchemaSection{Catalog: c.Name, Schema: sc.Name})
			}
			return nil
		})
	}
	_ = g.Wait()

	var out []SchemaSection
	for _, secs := range perCatalog {
		out = append(out, secs...)
	}
	return out
}

// loadTables fills each section's tables, then each table's columns.
func (s *Service) loadTables(ctx context.Context, sections []SchemaSection, search string) {
	needle := strings.ToLower(strings.TrimSpace(search))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for i := range sections {
		sec := &sections[i]
		if sec.Err != nil {
			continue
		}
		g.Go(func() error {
			tables, err := s.meta.DiscoverTables(gctx, sec.Catalog, sec.Schema)
			if err != nil {
				sec.Err = err
				return nil
			}
			for _, t := range tables {
				if needle == "" || strings.Contains(strings.ToLower(t.Name), needle) {
					sec.Tables = append(sec.Tables, TableEntry{Table: t})
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for i := range sections {
		sec := &sections[i]
		for j := range sec.Tables {
			entry := &sec.Tables[j]
			g.Go(func() error {
				entry.Columns, entry.Err = s.meta.DiscoverColumns(gctx, sec.Catalog, sec.Schema, entry.Table.Name)
				return nil
			})
		}
	}
	_ = g.Wait()
}

// TableColumns lists the columns of one physical table.
func (s *Service) TableColumns(ctx context.Context, ref domain.TableRef) ([]domain.Column, error) {
	if ref.Catalog == "" || ref.Schema == "" || ref.Table == "" {
		return nil, domain.ErrValidation("catalog, schema and table are required")
	}
	return s.meta.DiscoverColumns(ctx, ref.Catalog, ref.Schema, ref.Table)
}
