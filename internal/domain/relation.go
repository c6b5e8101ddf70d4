package domain

import "strings"

// Relation source kinds.
const (
	SourcePhysical = "physical"
	SourceRelation = "relation"
)

// Relation kinds.
const (
	RelationJoin  = "JOIN"
	RelationUnion = "UNION"
)

// UnknownRelationLabel is shown when a relation source references a missing id.
const UnknownRelationLabel = "Unknown Relation"

// TableSource is one side of a table relation: a physical table or another relation.
type TableSource struct {
	Type       string `json:"type"`
	Catalog    string `json:"catalog,omitempty"`
	Schema     string `json:"schema,omitempty"`
	Table      string `json:"table,omitempty"`
	RelationID string `json:"relationId,omitempty"`
}

// Complete reports whether the source is fully specified.
func (s TableSource) Complete() bool {
	switch s.Type {
	case SourcePhysical:
		return s.Catalog != "" && s.Schema != "" && s.Table != ""
	case SourceRelation:
		return s.RelationID != ""
	default:
		return false
	}
}

// Ref returns the physical table of a physical source.
func (s TableSource) Ref() TableRef {
	return TableRef{Catalog: s.Catalog, Schema: s.Schema, Table: s.Table}
}

// JoinColumn names the columns a JOIN relation matches on.
type JoinColumn struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// TableRelation composes two sources with a JOIN or UNION.
type TableRelation struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	LeftTable    TableSource `json:"leftTable"`
	RightTable   TableSource `json:"rightTable"`
	RelationType string      `json:"relationType"`
	JoinColumn   *JoinColumn `json:"joinColumn,omitempty"`
	Description  string      `json:"description,omitempty"`
}

// SourceLabel renders a relation source for display. Relation sources
// resolve against the given relations.
func SourceLabel(s TableSource, relations []TableRelation) string {
	if s.Type == SourcePhysical {
		return s.Catalog + "." + s.Schema + "." + s.Table
	}
	for _, r := range relations {
		if r.ID == s.RelationID {
			return r.Name
		}
	}
	return UnknownRelationLabel
}

// RelationDraft is a relation being composed in the studio form.
// LeftColumnType and RightColumnType carry the discovered data types of the
// chosen join columns; they are compared only when both sources are physical.
type RelationDraft struct {
	Name            string
	Description     string
	RelationType    string
	Left            TableSource
	Right           TableSource
	LeftColumn      string
	RightColumn     string
	LeftColumnType  string
	RightColumnType string
}

// ValidateRelationDraft checks a draft against the existing relations.
// Join column types are compared only when both sources are physical tables;
// a relation source exposes no column types to compare against.
func ValidateRelationDraft(d RelationDraft, existing []TableRelation) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return ErrValidation("relation name is required")
	}
	for _, r := range existing {
		if r.Name == name {
			return ErrConflict("relation %q already exists", name)
		}
	}
	if !d.Left.Complete() {
		return ErrValidation("left source is incomplete")
	}
	if !d.Right.Complete() {
		return ErrValidation("right source is incomplete")
	}
	switch d.RelationType {
	case RelationJoin:
		if d.LeftColumn == "" || d.RightColumn == "" {
			return ErrValidation("join columns are required")
		}
		bothPhysical := d.Left.Type == SourcePhysical && d.Right.Type == SourcePhysical
		if bothPhysical && d.LeftColumnType != d.RightColumnType {
			return ErrValidation("join column types differ: %s vs %s", d.LeftColumnType, d.RightColumnType)
		}
	case RelationUnion:
	default:
		return ErrValidation("relation type must be JOIN or UNION")
	}
	return nil
}

// Relation builds the wire relation from a validated draft.
func (d RelationDraft) Relation(id string) TableRelation {
	r := TableRelation{
		ID:           id,
		Name:         strings.TrimSpace(d.Name),
		LeftTable:    d.Left,
		RightTable:   d.Right,
		RelationType: d.RelationType,
		Description:  strings.TrimSpace(d.Description),
	}
	if d.RelationType == RelationJoin {
		r.JoinColumn = &JoinColumn{Left: d.LeftColumn, Right: d.RightColumn}
	}
	return r
}

// RelationSuggestion is a relation proposed by the backend matcher.
type RelationSuggestion struct {
	Name         string      `json:"Name"`
	LeftTable    TableSource `json:"LeftTable"`
	RightTable   TableSource `json:"RightTable"`
	RelationType string      `json:"RelationType"`
	JoinColumn   *JoinColumn `json:"JoinColumn,omitempty"`
	Description  string      `json:"Description"`
	Confidence   float64     `json:"Confidence"`
}

// AutoMatchRequest asks the backend matcher for relation suggestions.
type AutoMatchRequest struct {
	MaxSuggestions int  `json:"maxSuggestions"`
	AutoCreate     bool `json:"autoCreate"`
}

// AutoMatchResponse carries suggestions and, with AutoCreate, the created relations.
type AutoMatchResponse struct {
	Suggestions      []RelationSuggestion `json:"suggestions"`
	CreatedRelations []TableRelation      `json:"createdRelations,omitempty"`
	Errors           []string             `json:"errors,omitempty"`
}

// ColumnEndpoint is one side of a column relationship.
type ColumnEndpoint struct {
	Catalog string `json:"catalog"`
	Schema  string `json:"schema"`
	Table   string `json:"table"`
	Column  string `json:"column"`
}

// String renders the endpoint as catalog.schema.table.column.
func (e ColumnEndpoint) String() string {
	return e.Catalog + "." + e.Schema + "." + e.Table + "." + e.Column
}

// ColumnRelationship links two physical columns.
type ColumnRelationship struct {
	ID               string         `json:"id"`
	Left             ColumnEndpoint `json:"left"`
	Right            ColumnEndpoint `json:"right"`
	RelationshipType string         `json:"relationshipType"`
	Description      string         `json:"description,omitempty"`
}

// ValidateColumnRelationship checks both endpoints are fully qualified.
func ValidateColumnRelationship(r ColumnRelationship) error {
	for _, e := range []ColumnEndpoint{r.Left, r.Right} {
		if e.Catalog == "" || e.Schema == "" || e.Table == "" || e.Column == "" {
			return ErrValidation("both columns must be fully qualified")
		}
	}
	if strings.TrimSpace(r.RelationshipType) == "" {
		return ErrValidation("relationship type is required")
	}
	return nil
}
