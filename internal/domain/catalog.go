package domain

// AllSentinel selects every catalog or every schema in the data-source browser.
const AllSentinel = "__ALL__"

// Catalog is a physical data-source catalog exposed by the federation backend.
type Catalog struct {
	Name     string            `json:"Name"`
	Metadata map[string]string `json:"Metadata"`
}

// Schema is a schema inside a physical catalog.
type Schema struct {
	Name        string            `json:"Name"`
	CatalogName string            `json:"CatalogName"`
	Metadata    map[string]string `json:"Metadata"`
}

// Table is a physical table discovered inside a schema.
type Table struct {
	Name        string `json:"Name"`
	CatalogName string `json:"CatalogName,omitempty"`
	SchemaName  string `json:"SchemaName,omitempty"`
}

// Column is a physical column discovered on a table.
type Column struct {
	Name     string `json:"Name"`
	DataType string `json:"DataType"`
	Nullable bool   `json:"Nullable,omitempty"`
}

// TableRef identifies a physical table by its three-part name.
type TableRef struct {
	Catalog string
	Schema  string
	Table   string
}

// String renders the ref as catalog.schema.table.
func (r TableRef) String() string {
	return r.Catalog + "." + r.Schema + "." + r.Table
}

// HealthStatus is the backend health payload.
type HealthStatus struct {
	Status string `json:"status"`
}

// SyncResponse is returned by a metadata sync.
type SyncResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
