package studio

import (
	"context"

	"golang.org/x/sync/errgroup"

	"datasync-console/internal/domain"
)

// SideSelection is what the relation form has chosen for one side.
type SideSelection struct {
	SourceType string
	Catalog    string
	Schema     string
	Table      string
	RelationID string
	Column     string
}

// Source converts the selection to a relation source.
func (s SideSelection) Source() domain.TableSource {
	if s.SourceType == domain.SourceRelation {
		return domain.TableSource{Type: domain.SourceRelation, RelationID: s.RelationID}
	}
	return domain.TableSource{Type: domain.SourcePhysical, Catalog: s.Catalog, Schema: s.Schema, Table: s.Table}
}

// SideOptions are the choices offered for one side. Each level is loaded
// only when its parent is chosen. Selection is the input with any choice
// that no longer exists under its parent cleared.
type SideOptions struct {
	Selection SideSelection
	Schemas   []domain.Schema
	Tables    []domain.Table
	Columns   []domain.Column
	Err       error
}

// FormOptions is the relation form model.
type FormOptions struct {
	Catalogs    []domain.Catalog
	CatalogsErr error
	Relations   []domain.TableRelation
	Left        SideOptions
	Right       SideOptions
}

// FormOptions loads the cascading option lists for both sides of the
// relation form.
func (s *Service) FormOptions(ctx context.Context, left, right SideSelection) *FormOptions {
	opts := &FormOptions{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts.Catalogs, opts.CatalogsErr = s.meta.ListCatalogs(gctx)
		return nil
	})
	g.Go(func() error {
		rels, err := s.relations.ListRelations(gctx)
		if err == nil {
			opts.Relations = rels
		}
		return nil
	})
	g.Go(func() error {
		opts.Left = s.sideOptions(gctx, left)
		return nil
	})
	g.Go(func() error {
		opts.Right = s.sideOptions(gctx, right)
		return nil
	})
	_ = g.Wait()
	return opts
}

func (s *Service) sideOptions(ctx context.Context, sel SideSelection) SideOptions {
	out := SideOptions{Selection: sel}
	if sel.SourceType == domain.SourceRelation {
		out.Selection = SideSelection{SourceType: domain.SourceRelation, RelationID: sel.RelationID, Column: sel.Column}
		return out
	}
	out.Selection.SourceType = domain.SourcePhysical
	out.Selection.RelationID = ""
	if sel.Catalog == "" {
		out.Selection.Schema, out.Selection.Table, out.Selection.Column = "", "", ""
		return out
	}

	if out.Schemas, out.Err = s.meta.ListSchemas(ctx, sel.Catalog); out.Err != nil || !hasSchema(out.Schemas, sel.Schema) {
		out.Selection.Schema, out.Selection.Table, out.Selection.Column = "", "", ""
		return out
	}
	if out.Tables, out.Err = s.meta.DiscoverTables(ctx, sel.Catalog, sel.Schema); out.Err != nil || !hasTable(out.Tables, sel.Table) {
		out.Selection.Table, out.Selection.Column = "", ""
		return out
	}
	if out.Columns, out.Err = s.meta.DiscoverColumns(ctx, sel.Catalog, sel.Schema, sel.Table); out.Err != nil || !hasColumn(out.Columns, sel.Column) {
		out.Selection.Column = ""
	}
	return out
}

func hasSchema(schemas []domain.Schema, name string) bool {
	for _, s := range schemas {
		if s.Name == name {
			return true
		}
	}
	return false
}

func hasTable(tables []domain.Table, name string) bool {
	for _, t := range tables {
		if t.Name == name {
			return true
		}
	}
	return false
}

func hasColumn(cols []domain.Column, name string) bool {
	for _, c := range cols {
		if c.Name == name {
			return true
		}
	}
	return false
}
