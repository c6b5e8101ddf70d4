package datasync

import (
	"context"
	"net/http"

	"datasync-console/internal/domain"
)

// CreateRelation stores a table relation.
func (c *Client) CreateRelation(ctx context.Context, r domain.TableRelation) (*domain.TableRelation, error) {
	var out domain.TableRelation
	if err := c.do(ctx, http.MethodPost, "/relations", r, &out, "Failed to create relation"); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out = r
	}
	return &out, nil
}

// ListRelations returns every table relation.
func (c *Client) ListRelations(ctx context.Context) ([]domain.TableRelation, error) {
	var out []domain.TableRelation
	if err := c.do(ctx, http.MethodGet, "/relations", nil, &out, "Failed to fetch relations"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRelation returns one relation by id.
func (c *Client) GetRelation(ctx context.Context, id string) (*domain.TableRelation, error) {
	var out domain.TableRelation
	if err := c.do(ctx, http.MethodGet, escapePath("relations", id), nil, &out, "Failed to fetch relation"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRelation removes a relation.
func (c *Client) DeleteRelation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, escapePath("relations", id), nil, nil, "Failed to delete relation")
}

// AutoMatchRelations asks the backend matcher for relation suggestions.
func (c *Client) AutoMatchRelations(ctx context.Context, req domain.AutoMatchRequest) (*domain.AutoMatchResponse, error) {
	var out domain.AutoMatchResponse
	if err := c.do(ctx, http.MethodPost, "/relations/auto-match", req, &out, "Failed to auto-match relations"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRelationship stores a column relationship.
func (c *Client) CreateRelationship(ctx context.Context, r domain.ColumnRelationship) (*domain.ColumnRelationship, error) {
	var out domain.ColumnRelationship
	if err := c.do(ctx, http.MethodPost, "/relationships", r, &out, "Failed to create relationship"); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out = r
	}
	return &out, nil
}

// ListRelationships returns every column relationship.
func (c *Client) ListRelationships(ctx context.Context) ([]domain.ColumnRelationship, error) {
	var out []domain.ColumnRelationship
	if err := c.do(ctx, http.MethodGet, "/relationships", nil, &out, "Failed to fetch relationships"); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRelationship removes a column relationship.
func (c *Client) DeleteRelationship(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, escapePath("relationships", id), nil, nil, "Failed to delete relationship")
}
