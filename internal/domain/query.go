package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Query targets: the physical query endpoint or the federated global endpoint.
const (
	TargetPhysical = "physical"
	TargetGlobal   = "global"
)

// NullCell is how a SQL NULL is displayed.
const NullCell = "NULL"

// QueryRequest is the body of a physical query.
type QueryRequest struct {
	Query  string                 `json:"query"`
	Params map[string]interface{} `json:"params"`
}

// GlobalQueryRequest is the body of a federated query.
type GlobalQueryRequest struct {
	Query string `json:"query"`
}

// QueryResult is a result set. Columns keeps the key order of the first row
// as received; Rows values are decoded with json.Number for numbers.
type QueryResult struct {
	Columns       []string
	Rows          []map[string]interface{}
	RowCount      int
	GeneratedSQL  string
	ExecutionTime string
}

// QueryRun is the outcome of executing SQL from the console.
type QueryRun struct {
	Target   string
	SQL      string
	Result   *QueryResult
	Duration time.Duration
	Err      error
}

// QueryHistoryEntry is a persisted query run.
type QueryHistoryEntry struct {
	ID         string
	Target     string
	SQL        string
	RowCount   int
	DurationMS int64
	Error      string
	CreatedAt  time.Time
}

// NormalizeSQL trims whitespace and a single trailing semicolon.
func NormalizeSQL(sql string) string {
	s := strings.TrimSpace(sql)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

// FormatCell renders a result value for display.
func FormatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return NullCell
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return fmt.Sprintf("%v", t)
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// RowCountLabel renders "1 row" or "N rows".
func RowCountLabel(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
