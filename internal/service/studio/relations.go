package studio

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"datasync-console/internal/domain"
)

// RelationView is a relation with its sources resolved for display.
type RelationView struct {
	Relation   domain.TableRelation
	LeftLabel  string
	RightLabel string
}

// RelationDetail adds the join column data types, when the sources are
// physical tables and the columns can be discovered.
type RelationDetail struct {
	RelationView
	LeftJoinType  string
	RightJoinType string
	// UsedBy lists relations that take this relation as a source.
	UsedBy []RelationView
}

// Relations lists table relations with display labels.
func (s *Service) Relations(ctx context.Context) ([]RelationView, error) {
	rels, err := s.relations.ListRelations(ctx)
	if err != nil {
		return nil, err
	}
	return viewsOf(rels, rels), nil
}

func viewsOf(subset, all []domain.TableRelation) []RelationView {
	out := make([]RelationView, len(subset))
	for i, r := range subset {
		out[i] = RelationView{
			Relation:   r,
			LeftLabel:  domain.SourceLabel(r.LeftTable, all),
			RightLabel: domain.SourceLabel(r.RightTable, all),
		}
	}
	return out
}

// Relation returns one relation with resolved sources and join column types.
func (s *Service) Relation(ctx context.Context, id string) (*RelationDetail, error) {
	rel, err := s.relations.GetRelation(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.relations.ListRelations(ctx)
	if err != nil {
		return nil, err
	}

	detail := &RelationDetail{RelationView: viewsOf([]domain.TableRelation{*rel}, all)[0]}
	for _, r := range all {
		if (r.LeftTable.Type == domain.SourceRelation && r.LeftTable.RelationID == id) ||
			(r.RightTable.Type == domain.SourceRelation && r.RightTable.RelationID == id) {
			detail.UsedBy = append(detail.UsedBy, viewsOf([]domain.TableRelation{r}, all)[0])
		}
	}

	if rel.JoinColumn != nil {
		detail.LeftJoinType, detail.RightJoinType = s.joinTypes(ctx, rel.LeftTable, rel.JoinColumn.Left, rel.RightTable, rel.JoinColumn.Right)
	}
	return detail, nil
}

// joinTypes looks up the data types of two join columns concurrently.
// Lookups that fail or hit a relation source leave the type empty.
func (s *Service) joinTypes(ctx context.Context, left domain.TableSource, leftCol string, right domain.TableSource, rightCol string) (string, string) {
	var lt, rt string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lt, _ = s.columnType(gctx, left, leftCol)
		return nil
	})
	g.Go(func() error {
		rt, _ = s.columnType(gctx, right, rightCol)
		return nil
	})
	_ = g.Wait()
	return lt, rt
}

func (s *Service) columnType(ctx context.Context, src domain.TableSource, column string) (string, error) {
	if src.Type != domain.SourcePhysical || column == "" {
		return "", nil
	}
	cols, err := s.meta.DiscoverColumns(ctx, src.Catalog, src.Schema, src.Table)
	if err != nil {
		return "", err
	}
	for _, c := range cols {
		if c.Name == column {
			return c.DataType, nil
		}
	}
	return "", domain.ErrValidation("column %q not found on %s", column, src.Ref())
}

// CreateRelation validates a draft against existing relations and the
// discovered join column types, assigns an id and stores it.
func (s *Service) CreateRelation(ctx context.Context, d domain.RelationDraft) (*domain.TableRelation, error) {
	existing, err := s.relations.ListRelations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}

	if d.RelationType == domain.RelationJoin && d.Left.Complete() && d.Right.Complete() &&
		d.LeftColumn != "" && d.RightColumn != "" {
		var lerr, rerr error
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			d.LeftColumnType, lerr = s.columnType(gctx, d.Left, d.LeftColumn)
			return nil
		})
		g.Go(func() error {
			d.RightColumnType, rerr = s.columnType(gctx, d.Right, d.RightColumn)
			return nil
		})
		_ = g.Wait()
		if lerr != nil {
			return nil, lerr
		}
		if rerr != nil {
			return nil, rerr
		}
	}

	if err := domain.ValidateRelationDraft(d, existing); err != nil {
		return nil, err
	}

	created, err := s.relations.CreateRelation(ctx, d.Relation(domain.NewID()))
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "relation created", "id", created.ID, "name", created.Name, "type", created.RelationType)
	return created, nil
}

// DeleteRelation deletes a relation.
func (s *Service) DeleteRelation(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "deleting relation", "id", id)
	return s.relations.DeleteRelation(ctx, id)
}

// AutoMatch asks the backend matcher for suggestions and creates them.
func (s *Service) AutoMatch(ctx context.Context) (*domain.AutoMatchResponse, error) {
	resp, err := s.relations.AutoMatchRelations(ctx, domain.AutoMatchRequest{
		MaxSuggestions: AutoMatchMaxSuggestions,
		AutoCreate:     AutoMatchAutoCreate,
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "auto-match finished",
		"suggestions", len(resp.Suggestions),
		"created", len(resp.CreatedRelations),
		"errors", len(resp.Errors),
	)
	return resp, nil
}

// Relationships lists column relationships.
func (s *Service) Relationships(ctx context.Context) ([]domain.ColumnRelationship, error) {
	return s.relations.ListRelationships(ctx)
}

// CreateRelationship validates a column relationship, assigns an id and stores it.
func (s *Service) CreateRelationship(ctx context.Context, r domain.ColumnRelationship) (*domain.ColumnRelationship, error) {
	if err := domain.ValidateColumnRelationship(r); err != nil {
		return nil, err
	}
	if r.ID == "" {
		r.ID = domain.NewID()
	}
	return s.relations.CreateRelationship(ctx, r)
}

// DeleteRelationship deletes a column relationship.
func (s *Service) DeleteRelationship(ctx context.Context, id string) error {
	return s.relations.DeleteRelationship(ctx, id)
}
