package studio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasync-console/internal/domain"
	"datasync-console/internal/testutil"
)

func newService(backend *testutil.MockBackend) *Service {
	return NewService(backend, backend, backend, slog.New(slog.DiscardHandler))
}

// twoCatalogs serves postgres(public: users, orders) and mongo(app: Users).
func twoCatalogs() *testutil.MockBackend {
	return &testutil.MockBackend{
		ListCatalogsFn: func(_ context.Context) ([]domain.Catalog, error) {
			return []domain.Catalog{{Name: "postgres"}, {Name: "mongo"}}, nil
		},
		ListSchemasFn: func(_ context.Context, catalog string) ([]domain.Schema, error) {
			switch catalog {
			case "postgres":
				return []domain.Schema{{Name: "public", CatalogName: catalog}}, nil
			case "mongo":
				return []domain.Schema{{Name: "app", CatalogName: catalog}}, nil
			}
			return nil, errors.New("unknown catalog")
		},
		DiscoverTablesFn: func(_ context.Context, catalog, schema string) ([]domain.Table, error) {
			if catalog == "postgres" {
				return []domain.Table{
					{Name: "users", CatalogName: catalog, SchemaName: schema},
					{Name: "orders", CatalogName: catalog, SchemaName: schema},
				}, nil
			}
			return []domain.Table{{Name: "Users", CatalogName: catalog, SchemaName: schema}}, nil
		},
		DiscoverColumnsFn: func(_ context.Context, _, _, table string) ([]domain.Column, error) {
			return []domain.Column{{Name: "id", DataType: "integer"}, {Name: table + "_name", DataType: "text"}}, nil
		},
	}
}

func TestBrowse_NothingSelected(t *testing.T) {
	res := newService(twoCatalogs()).Browse(context.Background(), BrowseRequest{})

	require.NoError(t, res.CatalogsErr)
	assert.Len(t, res.Catalogs, 2)
	assert.Nil(t, res.Schemas)
	assert.Empty(t, res.Sections)
	assert.False(t, res.ShowSearch)
}

func TestBrowse_CatalogWithoutSchemaHidesSearch(t *testing.T) {
	res := newService(twoCatalogs()).Browse(context.Background(), BrowseRequest{Catalog: "postgres"})

	require.Len(t, res.Schemas, 1)
	assert.Equal(t, "public", res.Schemas[0].Name)
	assert.Empty(t, res.Sections)
	assert.False(t, res.ShowSearch)
}

func TestBrowse_ConcreteSchema(t *testing.T) {
	res := newService(twoCatalogs()).Browse(context.Background(), BrowseRequest{Catalog: "postgres", Schema: "public"})

	assert.True(t, res.ShowSearch)
	require.Len(t, res.Sections, 1)
	sec := res.Sections[0]
	assert.Equal(t, "postgres", sec.Catalog)
	assert.Equal(t, "public", sec.Schema)
	require.Len(t, sec.Tables, 2)
	assert.Equal(t, "users", sec.Tables[0].Table.Name)
	require.Len(t, sec.Tables[0].Columns, 2)
	assert.Equal(t, "users_name", sec.Tables[0].Columns[1].Name)
}

func TestBrowse_AllCatalogsSearchIsCaseInsensitive(t *testing.T) {
	res := newService(twoCatalogs()).Browse(context.Background(), BrowseRequest{Catalog: domain.AllSentinel, Search: "USER"})

	assert.True(t, res.ShowSearch)
	assert.Nil(t, res.Schemas, "schema options are only listed for a concrete catalog")
	require.Len(t, res.Sections, 2)
	assert.Equal(t, "postgres", res.Sections[0].Catalog)
	require.Len(t, res.Sections[0].Tables, 1)
	assert.Equal(t, "users", res.Sections[0].Tables[0].Table.Name)
	assert.Equal(t, "mongo", res.Sections[1].Catalog)
	assert.Equal(t, "Users", res.Sections[1].Tables[0].Table.Name)
}

func TestBrowse_SearchDropsEmptySections(t *testing.T) {
	res := newService(twoCatalogs()).Browse(context.Background(), BrowseRequest{Catalog: domain.AllSentinel, Search: "orders"})

	require.Len(t, res.Sections, 1)
	assert.Equal(t, "postgres", res.Sections[0].Catalog)
}

func TestBrowse_AllSchemasKeepsFailedSections(t *testing.T) {
	backend := twoCatalogs()
	backend.ListSchemasFn = func(_ context.Context, catalog string) ([]domain.Schema, error) {
		return []domain.Schema{{Name: "good"}, {Name: "bad"}}, nil
	}
	backend.DiscoverTablesFn = func(_ context.Context, _, schema string) ([]domain.Table, error) {
		if schema == "bad" {
			return nil, errors.New("Failed to fetch tables")
		}
		return []domain.Table{{Name: "t1"}}, nil
	}

	res := newService(backend).Browse(context.Background(), BrowseRequest{Catalog: "postgres", Schema: domain.AllSentinel})

	require.Len(t, res.Sections, 2)
	assert.Equal(t, "good", res.Sections[0].Schema)
	assert.NoError(t, res.Sections[0].Err)
	assert.Equal(t, "bad", res.Sections[1].Schema)
	assert.EqualError(t, res.Sections[1].Err, "Failed to fetch tables")
}

func TestTableColumns_RequiresFullReference(t *testing.T) {
	_, err := newService(&testutil.MockBackend{}).TableColumns(context.Background(), domain.TableRef{Catalog: "postgres"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGlobalTables_CollectsColumnsAndMappings(t *testing.T) {
	backend := &testutil.MockBackend{
		ListGlobalTablesFn: func(_ context.Context) ([]domain.GlobalTable, error) {
			return []domain.GlobalTable{{Name: "global_users"}, {Name: "global_orders"}}, nil
		},
		ListGlobalColumnsFn: func(_ context.Context, table string) ([]domain.GlobalColumn, error) {
			return []domain.GlobalColumn{{GlobalTableName: table, Name: "id", DataType: "integer"}}, nil
		},
		ListTableMappingsFn: func(_ context.Context, table string) ([]domain.TableMapping, error) {
			if table == "global_orders" {
				return nil, errors.New("Failed to fetch table mappings")
			}
			return []domain.TableMapping{{GlobalTableName: table, CatalogName: "postgres", SchemaName: "public", TableName: "users"}}, nil
		},
	}

	views, err := newService(backend).GlobalTables(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "global_users", views[0].Table.Name)
	assert.Len(t, views[0].Columns, 1)
	assert.Equal(t, "postgres.public.users", views[0].Mappings[0].Ref().String())
	assert.EqualError(t, views[1].Err, "Failed to fetch table mappings")
}

func TestCreateGlobalColumn_RejectsBlankFields(t *testing.T) {
	svc := newService(&testutil.MockBackend{})

	err := svc.CreateGlobalColumn(context.Background(), domain.GlobalColumn{GlobalTableName: "global_users", Name: " "})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "column name is required", verr.Message)
}

func TestCreateTableMapping_PassesThrough(t *testing.T) {
	var got domain.TableMapping
	backend := &testutil.MockBackend{
		CreateTableMappingFn: func(_ context.Context, m domain.TableMapping) error {
			got = m
			return nil
		},
	}
	m := domain.TableMapping{GlobalTableName: "global_users", CatalogName: "postgres", SchemaName: "public", TableName: "users"}

	require.NoError(t, newService(backend).CreateTableMapping(context.Background(), m))
	assert.Equal(t, m, got)
}

func relationsBackend(existing ...domain.TableRelation) *testutil.MockBackend {
	var mu sync.Mutex
	return &testutil.MockBackend{
		ListRelationsFn: func(_ context.Context) ([]domain.TableRelation, error) {
			mu.Lock()
			defer mu.Unlock()
			return existing, nil
		},
		DiscoverColumnsFn: func(_ context.Context, catalog, _, _ string) ([]domain.Column, error) {
			if catalog == "mongo" {
				return []domain.Column{{Name: "_id", DataType: "objectid"}, {Name: "user_id", DataType: "integer"}}, nil
			}
			return []domain.Column{{Name: "id", DataType: "integer"}}, nil
		},
		CreateRelationFn: func(_ context.Context, r domain.TableRelation) (*domain.TableRelation, error) {
			mu.Lock()
			defer mu.Unlock()
			existing = append(existing, r)
			return &r, nil
		},
	}
}

func physical(catalog, schema, table string) domain.TableSource {
	return domain.TableSource{Type: domain.SourcePhysical, Catalog: catalog, Schema: schema, Table: table}
}

func TestCreateRelation_JoinWithMatchingTypes(t *testing.T) {
	svc := newService(relationsBackend())

	created, err := svc.CreateRelation(context.Background(), domain.RelationDraft{
		Name:         " users_orders ",
		RelationType: domain.RelationJoin,
		Left:         physical("postgres", "public", "users"),
		Right:        physical("mongo", "app", "orders"),
		LeftColumn:   "id",
		RightColumn:  "user_id",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "users_orders", created.Name)
	require.NotNil(t, created.JoinColumn)
	assert.Equal(t, "user_id", created.JoinColumn.Right)
}

func TestCreateRelation_JoinTypeMismatch(t *testing.T) {
	svc := newService(relationsBackend())

	_, err := svc.CreateRelation(context.Background(), domain.RelationDraft{
		Name:         "users_orders",
		RelationType: domain.RelationJoin,
		Left:         physical("postgres", "public", "users"),
		Right:        physical("mongo", "app", "orders"),
		LeftColumn:   "id",
		RightColumn:  "_id",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "join column types differ: integer vs objectid", verr.Message)
}

func TestCreateRelation_UnknownColumn(t *testing.T) {
	svc := newService(relationsBackend())

	_, err := svc.CreateRelation(context.Background(), domain.RelationDraft{
		Name:         "users_orders",
		RelationType: domain.RelationJoin,
		Left:         physical("postgres", "public", "users"),
		Right:        physical("mongo", "app", "orders"),
		LeftColumn:   "missing",
		RightColumn:  "user_id",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, `"missing"`)
}

func TestCreateRelation_DuplicateName(t *testing.T) {
	existing := domain.TableRelation{ID: "r1", Name: "all_users", RelationType: domain.RelationUnion}
	svc := newService(relationsBackend(existing))

	_, err := svc.CreateRelation(context.Background(), domain.RelationDraft{
		Name:         "all_users",
		RelationType: domain.RelationUnion,
		Left:         physical("postgres", "public", "users"),
		Right:        physical("mongo", "app", "users"),
	})
	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestCreateRelation_RelationSourceSkipsTypeLookup(t *testing.T) {
	existing := domain.TableRelation{ID: "r1", Name: "all_users", RelationType: domain.RelationUnion}
	backend := relationsBackend(existing)
	svc := newService(backend)

	created, err := svc.CreateRelation(context.Background(), domain.RelationDraft{
		Name:         "users_with_orders",
		RelationType: domain.RelationJoin,
		Left:         domain.TableSource{Type: domain.SourceRelation, RelationID: "r1"},
		Right:        physical("postgres", "public", "orders"),
		LeftColumn:   "anything",
		RightColumn:  "id",
	})
	require.NoError(t, err)

	rels, err := svc.Relations(context.Background())
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.Equal(t, created.ID, rels[1].Relation.ID)
	assert.Equal(t, "all_users", rels[1].LeftLabel)
	assert.Equal(t, "postgres.public.orders", rels[1].RightLabel)
}

func TestRelation_DetailResolvesLabelsAndTypes(t *testing.T) {
	base := domain.TableRelation{
		ID: "r1", Name: "users_orders", RelationType: domain.RelationJoin,
		LeftTable:  physical("postgres", "public", "users"),
		RightTable: physical("mongo", "app", "orders"),
		JoinColumn: &domain.JoinColumn{Left: "id", Right: "user_id"},
	}
	derived := domain.TableRelation{
		ID: "r2", Name: "derived", RelationType: domain.RelationUnion,
		LeftTable:  domain.TableSource{Type: domain.SourceRelation, RelationID: "r1"},
		RightTable: domain.TableSource{Type: domain.SourceRelation, RelationID: "gone"},
	}
	backend := relationsBackend(base, derived)
	backend.GetRelationFn = func(_ context.Context, id string) (*domain.TableRelation, error) {
		r := base
		return &r, nil
	}

	d, err := newService(backend).Relation(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "postgres.public.users", d.LeftLabel)
	assert.Equal(t, "integer", d.LeftJoinType)
	assert.Equal(t, "integer", d.RightJoinType)
	require.Len(t, d.UsedBy, 1)
	assert.Equal(t, "users_orders", d.UsedBy[0].LeftLabel)
	assert.Equal(t, domain.UnknownRelationLabel, d.UsedBy[0].RightLabel)
}

func TestAutoMatch_UsesFixedSettings(t *testing.T) {
	var got domain.AutoMatchRequest
	backend := &testutil.MockBackend{
		AutoMatchRelationsFn: func(_ context.Context, req domain.AutoMatchRequest) (*domain.AutoMatchResponse, error) {
			got = req
			return &domain.AutoMatchResponse{
				Suggestions: []domain.RelationSuggestion{{Name: "s1"}, {Name: "s2"}},
				Errors:      []string{"relation s2 already exists"},
			}, nil
		},
	}

	resp, err := newService(backend).AutoMatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AutoMatchRequest{MaxSuggestions: 10, AutoCreate: true}, got)
	assert.Len(t, resp.Suggestions, 2)
	assert.Len(t, resp.Errors, 1)
}

func TestCreateRelationship_AssignsID(t *testing.T) {
	backend := &testutil.MockBackend{
		CreateRelationshipFn: func(_ context.Context, r domain.ColumnRelationship) (*domain.ColumnRelationship, error) {
			return &r, nil
		},
	}
	r := domain.ColumnRelationship{
		Left:             domain.ColumnEndpoint{Catalog: "postgres", Schema: "public", Table: "users", Column: "id"},
		Right:            domain.ColumnEndpoint{Catalog: "mongo", Schema: "app", Table: "orders", Column: "user_id"},
		RelationshipType: "one-to-many",
	}

	created, err := newService(backend).CreateRelationship(context.Background(), r)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = newService(backend).CreateRelationship(context.Background(), domain.ColumnRelationship{RelationshipType: "x"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestFormOptions_LoadsOnlyChosenLevels(t *testing.T) {
	var mu sync.Mutex
	var columnCalls int
	backend := twoCatalogs()
	backend.ListRelationsFn = func(_ context.Context) ([]domain.TableRelation, error) {
		return []domain.TableRelation{{ID: "r1", Name: "all_users"}}, nil
	}
	inner := backend.DiscoverColumnsFn
	backend.DiscoverColumnsFn = func(ctx context.Context, c, s, tb string) ([]domain.Column, error) {
		mu.Lock()
		columnCalls++
		mu.Unlock()
		return inner(ctx, c, s, tb)
	}

	opts := newService(backend).FormOptions(context.Background(),
		SideSelection{SourceType: domain.SourcePhysical, Catalog: "postgres", Schema: "public", Table: "users"},
		SideSelection{SourceType: domain.SourcePhysical, Catalog: "mongo"},
	)

	require.NoError(t, opts.CatalogsErr)
	assert.Len(t, opts.Catalogs, 2)
	assert.Len(t, opts.Relations, 1)

	assert.Len(t, opts.Left.Schemas, 1)
	assert.Len(t, opts.Left.Tables, 2)
	assert.Len(t, opts.Left.Columns, 2)

	assert.Len(t, opts.Right.Schemas, 1)
	assert.Nil(t, opts.Right.Tables)
	assert.Nil(t, opts.Right.Columns)
	assert.Equal(t, 1, columnCalls)
}

func TestFormOptions_RelationSideLoadsNothing(t *testing.T) {
	backend := twoCatalogs()
	backend.ListRelationsFn = func(_ context.Context) ([]domain.TableRelation, error) { return nil, nil }

	opts := newService(backend).FormOptions(context.Background(),
		SideSelection{SourceType: domain.SourceRelation, RelationID: "r1", Catalog: "postgres"},
		SideSelection{},
	)
	assert.Nil(t, opts.Left.Schemas)
	assert.Nil(t, opts.Right.Schemas)

	src := SideSelection{SourceType: domain.SourceRelation, RelationID: "r1"}.Source()
	assert.True(t, src.Complete())
}

func TestFormOptions_ClearsStaleChoices(t *testing.T) {
	backend := twoCatalogs()
	backend.ListRelationsFn = func(_ context.Context) ([]domain.TableRelation, error) { return nil, nil }

	opts := newService(backend).FormOptions(context.Background(),
		SideSelection{SourceType: domain.SourcePhysical, Catalog: "postgres", Schema: "app", Table: "Users", Column: "id"},
		SideSelection{SourceType: domain.SourcePhysical, Catalog: "mongo", Schema: "app", Table: "gone"},
	)

	assert.Equal(t, SideSelection{SourceType: domain.SourcePhysical, Catalog: "postgres"}, opts.Left.Selection)
	assert.Nil(t, opts.Left.Tables)

	assert.Equal(t, "app", opts.Right.Selection.Schema)
	assert.Empty(t, opts.Right.Selection.Table)
	assert.Len(t, opts.Right.Tables, 1)
	assert.Nil(t, opts.Right.Columns)
}
