// Package studio backs the Schema Studio: the data-source browser, the global
// schema editor, column relationships and table relations.
package studio

import (
	"log/slog"

	"datasync-console/internal/domain"
)

// fanOut bounds concurrent backend calls made for one page.
const fanOut = 8

// Auto-match settings used by the studio.
const (
	AutoMatchMaxSuggestions = 10
	AutoMatchAutoCreate     = true
)

// Service aggregates backend calls for the studio pages.
type Service struct {
	meta      domain.MetadataBackend
	global    domain.GlobalSchemaBackend
	relations domain.RelationBackend
	logger    *slog.Logger
}

// NewService creates a studio Service.
func NewService(meta domain.MetadataBackend, global domain.GlobalSchemaBackend, relations domain.RelationBackend, logger *slog.Logger) *Service {
	return &Service{meta: meta, global: global, relations: relations, logger: logger}
}
