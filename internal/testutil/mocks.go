// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase.
package testutil

import (
	"context"

	"datasync-console/internal/domain"
)

// MockBackend implements every DataSync backend interface. Unset functions
// panic so a test fails loudly on an unexpected call.
type MockBackend struct {
	HealthFn          func(ctx context.Context) (*domain.HealthStatus, error)
	ListCatalogsFn    func(ctx context.Context) ([]domain.Catalog, error)
	GetCatalogFn      func(ctx context.Context, name string) (*domain.Catalog, error)
	ListSchemasFn     func(ctx context.Context, catalog string) ([]domain.Schema, error)
	DiscoverTablesFn  func(ctx context.Context, catalog, schema string) ([]domain.Table, error)
	DiscoverColumnsFn func(ctx context.Context, catalog, schema, table string) ([]domain.Column, error)
	SyncMetadataFn    func(ctx context.Context) (*domain.SyncResponse, error)

	CreateGlobalTableFn   func(ctx context.Context, t domain.GlobalTable) error
	ListGlobalTablesFn    func(ctx context.Context) ([]domain.GlobalTable, error)
	GetGlobalTableFn      func(ctx context.Context, name string) (*domain.GlobalTable, error)
	DeleteGlobalTableFn   func(ctx context.Context, name string) error
	CreateGlobalColumnFn  func(ctx context.Context, c domain.GlobalColumn) error
	ListGlobalColumnsFn   func(ctx context.Context, table string) ([]domain.GlobalColumn, error)
	DeleteGlobalColumnFn  func(ctx context.Context, table, column string) error
	CreateTableMappingFn  func(ctx context.Context, m domain.TableMapping) error
	ListTableMappingsFn   func(ctx context.Context, table string) ([]domain.TableMapping, error)
	DeleteTableMappingFn  func(ctx context.Context, m domain.TableMapping) error
	CreateColumnMappingFn func(ctx context.Context, m domain.ColumnMapping) error
	ListColumnMappingsFn  func(ctx context.Context, table, column string) ([]domain.ColumnMapping, error)
	DeleteColumnMappingFn func(ctx context.Context, m domain.ColumnMapping) error

	CreateRelationFn     func(ctx context.Context, r domain.TableRelation) (*domain.TableRelation, error)
	ListRelationsFn      func(ctx context.Context) ([]domain.TableRelation, error)
	GetRelationFn        func(ctx context.Context, id string) (*domain.TableRelation, error)
	DeleteRelationFn     func(ctx context.Context, id string) error
	AutoMatchRelationsFn func(ctx context.Context, req domain.AutoMatchRequest) (*domain.AutoMatchResponse, error)
	CreateRelationshipFn func(ctx context.Context, r domain.ColumnRelationship) (*domain.ColumnRelationship, error)
	ListRelationshipsFn  func(ctx context.Context) ([]domain.ColumnRelationship, error)
	DeleteRelationshipFn func(ctx context.Context, id string) error

	SendChatMessageFn func(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ChatResponse, error)
	GenerateQueryFn   func(ctx context.Context, message string, history []domain.ChatMessage) (*domain.QueryGenerationResponse, error)

	ExecuteQueryFn       func(ctx context.Context, sql string, params map[string]interface{}) (*domain.QueryResult, error)
	ExecuteGlobalQueryFn func(ctx context.Context, sql string) (*domain.QueryResult, error)
}

var (
	_ domain.MetadataBackend     = (*MockBackend)(nil)
	_ domain.GlobalSchemaBackend = (*MockBackend)(nil)
	_ domain.RelationBackend     = (*MockBackend)(nil)
	_ domain.AssistantBackend    = (*MockBackend)(nil)
	_ domain.QueryBackend        = (*MockBackend)(nil)
)

// === Metadata ===

// Health implements the interface method for testing.
func (m *MockBackend) Health(ctx context.Context) (*domain.HealthStatus, error) {
	if m.HealthFn != nil {
		return m.HealthFn(ctx)
	}
	panic("unexpected call to MockBackend.Health")
}

// ListCatalogs implements the interface method for testing.
func (m *MockBackend) ListCatalogs(ctx context.Context) ([]domain.Catalog, error) {
	if m.ListCatalogsFn != nil {
		return m.ListCatalogsFn(ctx)
	}
	panic("unexpected call to MockBackend.ListCatalogs")
}

// GetCatalog implements the interface method for testing.
func (m *MockBackend) GetCatalog(ctx context.Context, name string) (*domain.Catalog, error) {
	if m.GetCatalogFn != nil {
		return m.GetCatalogFn(ctx, name)
	}
	panic("unexpected call to MockBackend.GetCatalog")
}

// ListSchemas implements the interface method for testing.
func (m *MockBackend) ListSchemas(ctx context.Context, catalog string) ([]domain.Schema, error) {
	if m.ListSchemasFn != nil {
		return m.ListSchemasFn(ctx, catalog)
	}
	panic("unexpected call to MockBackend.ListSchemas")
}

// DiscoverTables implements the interface method for testing.
func (m *MockBackend) DiscoverTables(ctx context.Context, catalog, schema string) ([]domain.Table, error) {
	if m.DiscoverTablesFn != nil {
		return m.DiscoverTablesFn(ctx, catalog, schema)
	}
	panic("unexpected call to MockBackend.DiscoverTables")
}

// DiscoverColumns implements the interface method for testing.
func (m *MockBackend) DiscoverColumns(ctx context.Context, catalog, schema, table string) ([]domain.Column, error) {
	if m.DiscoverColumnsFn != nil {
		return m.DiscoverColumnsFn(ctx, catalog, schema, table)
	}
	panic("unexpected call to MockBackend.DiscoverColumns")
}

// SyncMetadata implements the interface method for testing.
func (m *MockBackend) SyncMetadata(ctx context.Context) (*domain.SyncResponse, error) {
	if m.SyncMetadataFn != nil {
		return m.SyncMetadataFn(ctx)
	}
	panic("unexpected call to MockBackend.SyncMetadata")
}

// === Global schema ===

// CreateGlobalTable implements the interface method for testing.
func (m *MockBackend) CreateGlobalTable(ctx context.Context, t domain.GlobalTable) error {
	if m.CreateGlobalTableFn != nil {
		return m.CreateGlobalTableFn(ctx, t)
	}
	panic("unexpected call to MockBackend.CreateGlobalTable")
}

// ListGlobalTables implements the interface method for testing.
func (m *MockBackend) ListGlobalTables(ctx context.Context) ([]domain.GlobalTable, error) {
	if m.ListGlobalTablesFn != nil {
		return m.ListGlobalTablesFn(ctx)
	}
	panic("unexpected call to MockBackend.ListGlobalTables")
}

// GetGlobalTable implements the interface method for testing.
func (m *MockBackend) GetGlobalTable(ctx context.Context, name string) (*domain.GlobalTable, error) {
	if m.GetGlobalTableFn != nil {
		return m.GetGlobalTableFn(ctx, name)
	}
	panic("unexpected call to MockBackend.GetGlobalTable")
}

// DeleteGlobalTable implements the interface method for testing.
func (m *MockBackend) DeleteGlobalTable(ctx context.Context, name string) error {
	if m.DeleteGlobalTableFn != nil {
		return m.DeleteGlobalTableFn(ctx, name)
	}
	panic("unexpected call to MockBackend.DeleteGlobalTable")
}

// CreateGlobalColumn implements the interface method for testing.
func (m *MockBackend) CreateGlobalColumn(ctx context.Context, c domain.GlobalColumn) error {
	if m.CreateGlobalColumnFn != nil {
		return m.CreateGlobalColumnFn(ctx, c)
	}
	panic("unexpected call to MockBackend.CreateGlobalColumn")
}

// ListGlobalColumns implements the interface method for testing.
func (m *MockBackend) ListGlobalColumns(ctx context.Context, table string) ([]domain.GlobalColumn, error) {
	if m.ListGlobalColumnsFn != nil {
		return m.ListGlobalColumnsFn(ctx, table)
	}
	panic("unexpected call to MockBackend.ListGlobalColumns")
}

// DeleteGlobalColumn implements the interface method for testing.
func (m *MockBackend) DeleteGlobalColumn(ctx context.Context, table, column string) error {
	if m.DeleteGlobalColumnFn != nil {
		return m.DeleteGlobalColumnFn(ctx, table, column)
	}
	panic("unexpected call to MockBackend.DeleteGlobalColumn")
}

// CreateTableMapping implements the interface method for testing.
func (m *MockBackend) CreateTableMapping(ctx context.Context, tm domain.TableMapping) error {
	if m.CreateTableMappingFn != nil {
		return m.CreateTableMappingFn(ctx, tm)
	}
	panic("unexpected call to MockBackend.CreateTableMapping")
}

// ListTableMappings implements the interface method for testing.
func (m *MockBackend) ListTableMappings(ctx context.Context, table string) ([]domain.TableMapping, error) {
	if m.ListTableMappingsFn != nil {
		return m.ListTableMappingsFn(ctx, table)
	}
	panic("unexpected call to MockBackend.ListTableMappings")
}

// DeleteTableMapping implements the interface method for testing.
func (m *MockBackend) DeleteTableMapping(ctx context.Context, tm domain.TableMapping) error {
	if m.DeleteTableMappingFn != nil {
		return m.DeleteTableMappingFn(ctx, tm)
	}
	panic("unexpected call to MockBackend.DeleteTableMapping")
}

// CreateColumnMapping implements the interface method for testing.
func (m *MockBackend) CreateColumnMapping(ctx context.Context, cm domain.ColumnMapping) error {
	if m.CreateColumnMappingFn != nil {
		return m.CreateColumnMappingFn(ctx, cm)
	}
	panic("unexpected call to MockBackend.CreateColumnMapping")
}

// ListColumnMappings implements the interface method for testing.
func (m *MockBackend) ListColumnMappings(ctx context.Context, table, column string) ([]domain.ColumnMapping, error) {
	if m.ListColumnMappingsFn != nil {
		return m.ListColumnMappingsFn(ctx, table, column)
	}
	panic("unexpected call to MockBackend.ListColumnMappings")
}

// DeleteColumnMapping implements the interface method for testing.
func (m *MockBackend) DeleteColumnMapping(ctx context.Context, cm domain.ColumnMapping) error {
	if m.DeleteColumnMappingFn != nil {
		return m.DeleteColumnMappingFn(ctx, cm)
	}
	panic("unexpected call to MockBackend.DeleteColumnMapping")
}

// === Relations ===

// CreateRelation implements the interface method for testing.
func (m *MockBackend) CreateRelation(ctx context.Context, r domain.TableRelation) (*domain.TableRelation, error) {
	if m.CreateRelationFn != nil {
		return m.CreateRelationFn(ctx, r)
	}
	panic("unexpected call to MockBackend.CreateRelation")
}

// ListRelations implements the interface method for testing.
func (m *MockBackend) ListRelations(ctx context.Context) ([]domain.TableRelation, error) {
	if m.ListRelationsFn != nil {
		return m.ListRelationsFn(ctx)
	}
	panic("unexpected call to MockBackend.ListRelations")
}

// GetRelation implements the interface method for testing.
func (m *MockBackend) GetRelation(ctx context.Context, id string) (*domain.TableRelation, error) {
	if m.GetRelationFn != nil {
		return m.GetRelationFn(ctx, id)
	}
	panic("unexpected call to MockBackend.GetRelation")
}

// DeleteRelation implements the interface method for testing.
func (m *MockBackend) DeleteRelation(ctx context.Context, id string) error {
	if m.DeleteRelationFn != nil {
		return m.DeleteRelationFn(ctx, id)
	}
	panic("unexpected call to MockBackend.DeleteRelation")
}

// AutoMatchRelations implements the interface method for testing.
func (m *MockBackend) AutoMatchRelations(ctx context.Context, req domain.AutoMatchRequest) (*domain.AutoMatchResponse, error) {
	if m.AutoMatchRelationsFn != nil {
		return m.AutoMatchRelationsFn(ctx, req)
	}
	panic("unexpected call to MockBackend.AutoMatchRelations")
}

// CreateRelationship implements the interface method for testing.
func (m *MockBackend) CreateRelationship(ctx context.Context, r domain.ColumnRelationship) (*domain.ColumnRelationship, error) {
	if m.CreateRelationshipFn != nil {
		return m.CreateRelationshipFn(ctx, r)
	}
	panic("unexpected call to MockBackend.CreateRelationship")
}

// ListRelationships implements the interface method for testing.
func (m *MockBackend) ListRelationships(ctx context.Context) ([]domain.ColumnRelationship, error) {
	if m.ListRelationshipsFn != nil {
		return m.ListRelationshipsFn(ctx)
	}
	panic("unexpected call to MockBackend.ListRelationships")
}

// DeleteRelationship implements the interface method for testing.
func (m *MockBackend) DeleteRelationship(ctx context.Context, id string) error {
	if m.DeleteRelationshipFn != nil {
		return m.DeleteRelationshipFn(ctx, id)
	}
	panic("unexpected call to MockBackend.DeleteRelationship")
}

// === Assistant and query ===

// SendChatMessage implements the interface method for testing.
func (m *MockBackend) SendChatMessage(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ChatResponse, error) {
	if m.SendChatMessageFn != nil {
		return m.SendChatMessageFn(ctx, message, history)
	}
	panic("unexpected call to MockBackend.SendChatMessage")
}

// GenerateQuery implements the interface method for testing.
func (m *MockBackend) GenerateQuery(ctx context.Context, message string, history []domain.ChatMessage) (*domain.QueryGenerationResponse, error) {
	if m.GenerateQueryFn != nil {
		return m.GenerateQueryFn(ctx, message, history)
	}
	panic("unexpected call to MockBackend.GenerateQuery")
}

// ExecuteQuery implements the interface method for testing.
func (m *MockBackend) ExecuteQuery(ctx context.Context, sql string, params map[string]interface{}) (*domain.QueryResult, error) {
	if m.ExecuteQueryFn != nil {
		return m.ExecuteQueryFn(ctx, sql, params)
	}
	panic("unexpected call to MockBackend.ExecuteQuery")
}

// ExecuteGlobalQuery implements the interface method for testing.
func (m *MockBackend) ExecuteGlobalQuery(ctx context.Context, sql string) (*domain.QueryResult, error) {
	if m.ExecuteGlobalQueryFn != nil {
		return m.ExecuteGlobalQueryFn(ctx, sql)
	}
	panic("unexpected call to MockBackend.ExecuteGlobalQuery")
}
