// Package inventory backs the catalog inventory page.
package inventory

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/syncsched"
)

// Overview is everything the inventory page shows. Each section carries its
// own error so one failing call does not blank the others.
type Overview struct {
	Catalogs    []domain.Catalog
	CatalogsErr error

	Selected   string
	Catalog    *domain.Catalog
	CatalogErr error
	Schemas    []domain.Schema
	SchemasErr error

	LastSync *domain.SyncOutcome
}

// Service loads catalog inventory and runs manual syncs.
type Service struct {
	backend domain.MetadataBackend
	syncer  *syncsched.Runner
	logger  *slog.Logger
}

// NewService creates an inventory Service.
func NewService(backend domain.MetadataBackend, syncer *syncsched.Runner, logger *slog.Logger) *Service {
	return &Service{backend: backend, syncer: syncer, logger: logger}
}

// Overview lists catalogs and, when selected is non-empty, that catalog's
// detail and schemas. Backend failures are reported per section.
func (s *Service) Overview(ctx context.Context, selected string) *Overview {
	ov := &Overview{Selected: selected}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ov.Catalogs, ov.CatalogsErr = s.backend.ListCatalogs(gctx)
		return nil
	})
	if selected != "" {
		g.Go(func() error {
			ov.Catalog, ov.CatalogErr = s.backend.GetCatalog(gctx, selected)
			return nil
		})
		g.Go(func() error {
			ov.Schemas, ov.SchemasErr = s.backend.ListSchemas(gctx, selected)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range []error{ov.CatalogsErr, ov.CatalogErr, ov.SchemasErr} {
		if err != nil {
			s.logger.WarnContext(ctx, "inventory section failed", "catalog", selected, "error", err)
		}
	}

	if last, ok := s.syncer.Last(); ok {
		ov.LastSync = &last
	}
	return ov
}

// Sync runs a metadata sync now.
func (s *Service) Sync(ctx context.Context) domain.SyncOutcome {
	return s.syncer.Run(ctx, syncsched.TriggerManual)
}

// Health reports backend liveness.
func (s *Service) Health(ctx context.Context) (*domain.HealthStatus, error) {
	return s.backend.Health(ctx)
}
