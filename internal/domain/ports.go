package domain

import "context"

// ChatRepository persists chat threads and their messages.
type ChatRepository interface {
	CreateThread(ctx context.Context, t *ChatThread) (*ChatThread, error)
	GetThread(ctx context.Context, id string) (*ChatThread, error)
	ListThreads(ctx context.Context, page PageRequest) ([]ChatThread, int64, error)
	DeleteThread(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, m *StoredMessage) (*StoredMessage, error)
	ListMessages(ctx context.Context, threadID string) ([]StoredMessage, error)
}

// QueryHistoryRepository persists query runs.
type QueryHistoryRepository interface {
	Record(ctx context.Context, e *QueryHistoryEntry) error
	List(ctx context.Context, target string, page PageRequest) ([]QueryHistoryEntry, int64, error)
	Clear(ctx context.Context) error
}

// MetadataBackend discovers physical metadata and triggers syncs.
type MetadataBackend interface {
	Health(ctx context.Context) (*HealthStatus, error)
	ListCatalogs(ctx context.Context) ([]Catalog, error)
	GetCatalog(ctx context.Context, name string) (*Catalog, error)
	ListSchemas(ctx context.Context, catalog string) ([]Schema, error)
	DiscoverTables(ctx context.Context, catalog, schema string) ([]Table, error)
	DiscoverColumns(ctx context.Context, catalog, schema, table string) ([]Column, error)
	SyncMetadata(ctx context.Context) (*SyncResponse, error)
}

// GlobalSchemaBackend manages global tables, columns and their mappings.
type GlobalSchemaBackend interface {
	CreateGlobalTable(ctx context.Context, t GlobalTable) error
	ListGlobalTables(ctx context.Context) ([]GlobalTable, error)
	GetGlobalTable(ctx context.Context, name string) (*GlobalTable, error)
	DeleteGlobalTable(ctx context.Context, name string) error
	CreateGlobalColumn(ctx context.Context, c GlobalColumn) error
	ListGlobalColumns(ctx context.Context, table string) ([]GlobalColumn, error)
	DeleteGlobalColumn(ctx context.Context, table, column string) error
	CreateTableMapping(ctx context.Context, m TableMapping) error
	ListTableMappings(ctx context.Context, table string) ([]TableMapping, error)
	DeleteTableMapping(ctx context.Context, m TableMapping) error
	CreateColumnMapping(ctx context.Context, m ColumnMapping) error
	ListColumnMappings(ctx context.Context, table, column string) ([]ColumnMapping, error)
	DeleteColumnMapping(ctx context.Context, m ColumnMapping) error
}

// RelationBackend manages table relations and column relationships.
type RelationBackend interface {
	CreateRelation(ctx context.Context, r TableRelation) (*TableRelation, error)
	ListRelations(ctx context.Context) ([]TableRelation, error)
	GetRelation(ctx context.Context, id string) (*TableRelation, error)
	DeleteRelation(ctx context.Context, id string) error
	AutoMatchRelations(ctx context.Context, req AutoMatchRequest) (*AutoMatchResponse, error)
	CreateRelationship(ctx context.Context, r ColumnRelationship) (*ColumnRelationship, error)
	ListRelationships(ctx context.Context) ([]ColumnRelationship, error)
	DeleteRelationship(ctx context.Context, id string) error
}

// AssistantBackend is the chat assistant.
type AssistantBackend interface {
	SendChatMessage(ctx context.Context, message string, history []ChatMessage) (*ChatResponse, error)
	GenerateQuery(ctx context.Context, message string, history []ChatMessage) (*QueryGenerationResponse, error)
}

// QueryBackend executes SQL against the physical or federated endpoint.
type QueryBackend interface {
	ExecuteQuery(ctx context.Context, sql string, params map[string]interface{}) (*QueryResult, error)
	ExecuteGlobalQuery(ctx context.Context, sql string) (*QueryResult, error)
}
