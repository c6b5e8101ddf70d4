package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func physical(c, s, t string) TableSource {
	return TableSource{Type: SourcePhysical, Catalog: c, Schema: s, Table: t}
}

func TestValidateRelationDraft(t *testing.T) {
	existing := []TableRelation{{ID: "r1", Name: "users_orders"}}

	tests := []struct {
		name    string
		draft   RelationDraft
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid_join",
			draft: RelationDraft{
				Name: "customers_orders", RelationType: RelationJoin,
				Left: physical("pg", "public", "customers"), Right: physical("mongo", "shop", "orders"),
				LeftColumn: "id", RightColumn: "customer_id",
				LeftColumnType: "integer", RightColumnType: "integer",
			},
		},
		{
			// Columns of a relation source are not discoverable, so only
			// physical-to-physical joins compare types.
			name: "join_with_relation_side_has_no_type_check",
			draft: RelationDraft{
				Name: "users_with_orders", RelationType: RelationJoin,
				Left: physical("pg", "public", "users"), Right: TableSource{Type: SourceRelation, RelationID: "r1"},
				LeftColumn: "id", RightColumn: "user_id",
				LeftColumnType: "integer",
			},
		},
		{
			name: "valid_union_without_columns",
			draft: RelationDraft{
				Name: "all_users", RelationType: RelationUnion,
				Left: physical("pg", "public", "users"), Right: TableSource{Type: SourceRelation, RelationID: "r1"},
			},
		},
		{
			name:    "blank_name",
			draft:   RelationDraft{Name: "   ", RelationType: RelationUnion},
			wantErr: true,
			errMsg:  "relation name is required",
		},
		{
			name: "duplicate_name",
			draft: RelationDraft{
				Name: "users_orders", RelationType: RelationUnion,
				Left: physical("a", "b", "c"), Right: physical("d", "e", "f"),
			},
			wantErr: true,
			errMsg:  "already exists",
		},
		{
			name: "incomplete_physical_source",
			draft: RelationDraft{
				Name: "x", RelationType: RelationUnion,
				Left: physical("pg", "", "users"), Right: physical("d", "e", "f"),
			},
			wantErr: true,
			errMsg:  "left source is incomplete",
		},
		{
			name: "relation_source_without_id",
			draft: RelationDraft{
				Name: "x", RelationType: RelationUnion,
				Left: physical("a", "b", "c"), Right: TableSource{Type: SourceRelation},
			},
			wantErr: true,
			errMsg:  "right source is incomplete",
		},
		{
			name: "join_missing_column",
			draft: RelationDraft{
				Name: "x", RelationType: RelationJoin,
				Left: physical("a", "b", "c"), Right: physical("d", "e", "f"),
				LeftColumn: "id",
			},
			wantErr: true,
			errMsg:  "join columns are required",
		},
		{
			name: "join_type_mismatch",
			draft: RelationDraft{
				Name: "x", RelationType: RelationJoin,
				Left: physical("a", "b", "c"), Right: physical("d", "e", "f"),
				LeftColumn: "id", RightColumn: "ref",
				LeftColumnType: "integer", RightColumnType: "varchar",
			},
			wantErr: true,
			errMsg:  "join column types differ",
		},
		{
			name: "join_on_relation_source_skips_type_check",
			draft: RelationDraft{
				Name: "x", RelationType: RelationJoin,
				Left: physical("a", "b", "c"), Right: TableSource{Type: SourceRelation, RelationID: "r1"},
				LeftColumn: "id", RightColumn: "id", LeftColumnType: "integer",
			},
		},
		{
			name: "unknown_type",
			draft: RelationDraft{
				Name: "x", RelationType: "CROSS",
				Left: physical("a", "b", "c"), Right: physical("d", "e", "f"),
			},
			wantErr: true,
			errMsg:  "JOIN or UNION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelationDraft(tt.draft, existing)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateRelationDraft_DuplicateIsConflict(t *testing.T) {
	err := ValidateRelationDraft(RelationDraft{Name: "dup"}, []TableRelation{{Name: "dup"}})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRelationDraft_Relation(t *testing.T) {
	d := RelationDraft{
		Name: " joined ", RelationType: RelationJoin,
		Left: physical("a", "b", "c"), Right: physical("d", "e", "f"),
		LeftColumn: "id", RightColumn: "fk",
	}
	r := d.Relation("id-1")
	assert.Equal(t, "joined", r.Name)
	require.NotNil(t, r.JoinColumn)
	assert.Equal(t, JoinColumn{Left: "id", Right: "fk"}, *r.JoinColumn)

	d.RelationType = RelationUnion
	assert.Nil(t, d.Relation("id-2").JoinColumn)
}

func TestSourceLabel(t *testing.T) {
	relations := []TableRelation{{ID: "r1", Name: "customers_orders"}}

	assert.Equal(t, "pg.public.users", SourceLabel(physical("pg", "public", "users"), relations))
	assert.Equal(t, "customers_orders", SourceLabel(TableSource{Type: SourceRelation, RelationID: "r1"}, relations))
	assert.Equal(t, UnknownRelationLabel, SourceLabel(TableSource{Type: SourceRelation, RelationID: "gone"}, relations))
}

func TestTableRelationJSON(t *testing.T) {
	r := TableRelation{
		ID: "r1", Name: "n", RelationType: RelationUnion,
		LeftTable:  physical("a", "b", "c"),
		RightTable: TableSource{Type: SourceRelation, RelationID: "r0"},
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id":"r1","name":"n","relationType":"UNION",
		"leftTable":{"type":"physical","catalog":"a","schema":"b","table":"c"},
		"rightTable":{"type":"relation","relationId":"r0"}
	}`, string(b))
}

func TestNormalizeSQL(t *testing.T) {
	assert.Equal(t, "SELECT 1", NormalizeSQL("  SELECT 1;  "))
	assert.Equal(t, "SELECT 1", NormalizeSQL("SELECT 1 ;"))
	assert.Equal(t, "", NormalizeSQL(" ; "))
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "NULL"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"string", "alice", "alice"},
		{"number", json.Number("12.50"), "12.50"},
		{"float", 0.5, "0.5"},
		{"object", map[string]interface{}{"a": json.Number("1")}, `{"a":1}`},
		{"array", []interface{}{"x", nil}, `["x",null]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(tt.in))
		})
	}
}

func TestRowCountLabel(t *testing.T) {
	assert.Equal(t, "0 rows", RowCountLabel(0))
	assert.Equal(t, "1 row", RowCountLabel(1))
	assert.Equal(t, "42 rows", RowCountLabel(42))
}

func TestValidateMappings(t *testing.T) {
	require.NoError(t, ValidateTableMapping(TableMapping{GlobalTableName: "g", CatalogName: "c", SchemaName: "s", TableName: "t"}))
	require.Error(t, ValidateTableMapping(TableMapping{GlobalTableName: "g", CatalogName: "c"}))
	require.Error(t, ValidateColumnMapping(ColumnMapping{GlobalTableName: "g", GlobalColumnName: "c"}))
	require.Error(t, ValidateGlobalTable(GlobalTable{Name: " "}))
	require.Error(t, ValidateGlobalColumn(GlobalColumn{GlobalTableName: "g", Name: "id"}))

	var verr *ValidationError
	require.ErrorAs(t, ValidateGlobalTable(GlobalTable{}), &verr)
}

func TestPageRequest(t *testing.T) {
	assert.Equal(t, DefaultPageSize, PageRequest{}.Limit())
	assert.Equal(t, MaxPageSize, PageRequest{MaxResults: 10_000}.Limit())
	assert.Equal(t, 0, PageRequest{PageToken: "!!"}.Offset())

	tok := NextPageToken(0, 10, 25)
	require.NotEmpty(t, tok)
	assert.Equal(t, 10, PageRequest{PageToken: tok}.Offset())
	assert.Empty(t, NextPageToken(20, 10, 25))
}

func TestSyncOutcomeBanner(t *testing.T) {
	assert.Equal(t, SyncSuccessMessage, SyncOutcome{}.Banner())
	o := SyncOutcome{Err: &ValidationError{Message: "boom"}}
	assert.False(t, o.OK())
	assert.Equal(t, "Metadata sync failed: boom", o.Banner())
}
