package domain

import "strings"

// GlobalTable is a virtual table of the federated schema.
type GlobalTable struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// GlobalColumn is a column of a global table.
type GlobalColumn struct {
	GlobalTableName string `json:"GlobalTableName"`
	Name            string `json:"Name"`
	DataType        string `json:"DataType"`
	Description     string `json:"Description"`
}

// TableMapping links a physical table to a global table.
type TableMapping struct {
	GlobalTableName string `json:"GlobalTableName"`
	CatalogName     string `json:"CatalogName"`
	SchemaName      string `json:"SchemaName"`
	TableName       string `json:"TableName"`
}

// Ref returns the physical side of the mapping.
func (m TableMapping) Ref() TableRef {
	return TableRef{Catalog: m.CatalogName, Schema: m.SchemaName, Table: m.TableName}
}

// ColumnMapping links a physical column to a global column.
type ColumnMapping struct {
	GlobalTableName  string `json:"GlobalTableName"`
	GlobalColumnName string `json:"GlobalColumnName"`
	CatalogName      string `json:"CatalogName"`
	SchemaName       string `json:"SchemaName"`
	TableName        string `json:"TableName"`
	ColumnName       string `json:"ColumnName"`
}

// ValidateGlobalTable checks the fields the create form requires.
func ValidateGlobalTable(t GlobalTable) error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrValidation("global table name is required")
	}
	return nil
}

// ValidateGlobalColumn checks the fields the create form requires.
func ValidateGlobalColumn(c GlobalColumn) error {
	if strings.TrimSpace(c.GlobalTableName) == "" {
		return ErrValidation("global table name is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrValidation("column name is required")
	}
	if strings.TrimSpace(c.DataType) == "" {
		return ErrValidation("data type is required")
	}
	return nil
}

// ValidateTableMapping checks that the physical table is fully qualified.
func ValidateTableMapping(m TableMapping) error {
	if strings.TrimSpace(m.GlobalTableName) == "" {
		return ErrValidation("global table name is required")
	}
	if strings.TrimSpace(m.CatalogName) == "" || strings.TrimSpace(m.SchemaName) == "" || strings.TrimSpace(m.TableName) == "" {
		return ErrValidation("catalog, schema and table are required")
	}
	return nil
}

// ValidateColumnMapping checks that both sides of the mapping are set.
func ValidateColumnMapping(m ColumnMapping) error {
	if strings.TrimSpace(m.GlobalTableName) == "" || strings.TrimSpace(m.GlobalColumnName) == "" {
		return ErrValidation("global table and column are required")
	}
	if strings.TrimSpace(m.CatalogName) == "" || strings.TrimSpace(m.SchemaName) == "" ||
		strings.TrimSpace(m.TableName) == "" || strings.TrimSpace(m.ColumnName) == "" {
		return ErrValidation("catalog, schema, table and column are required")
	}
	return nil
}
