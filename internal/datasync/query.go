package datasync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"datasync-console/internal/domain"
)

// ExecuteQuery runs SQL against the physical query endpoint.
func (c *Client) ExecuteQuery(ctx context.Context, sql string, params map[string]interface{}) (*domain.QueryResult, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	raw, err := c.send(ctx, http.MethodPost, c.baseURL+"/query", "/query",
		domain.QueryRequest{Query: sql, Params: params}, "Query failed")
	if err != nil {
		return nil, err
	}
	return ParseQueryResult(raw)
}

// ExecuteGlobalQuery runs SQL against the federated query endpoint.
func (c *Client) ExecuteGlobalQuery(ctx context.Context, sql string) (*domain.QueryResult, error) {
	raw, err := c.send(ctx, http.MethodPost, c.globalQueryURL, "/query/global",
		domain.GlobalQueryRequest{Query: sql}, "Global query failed")
	if err != nil {
		return nil, err
	}
	return ParseQueryResult(raw)
}

// HasRows reports whether a JSON payload carries a result set. Tool results
// from the assistant are rendered as tables when it does.
func HasRows(raw []byte) bool {
	if !gjson.ValidBytes(raw) {
		return false
	}
	return rowsField(raw).IsArray()
}

func rowsField(raw []byte) gjson.Result {
	if r := gjson.GetBytes(raw, "rows"); r.Exists() {
		return r
	}
	return gjson.GetBytes(raw, "Rows")
}

// ParseQueryResult decodes a query payload. Columns follow the key order of
// the first row as it appears on the wire, which a map decode would lose.
func ParseQueryResult(raw []byte) (*domain.QueryResult, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("decode query result: invalid JSON")
	}

	rows := rowsField(raw)
	result := &domain.QueryResult{
		Rows:          []map[string]interface{}{},
		GeneratedSQL:  gjson.GetBytes(raw, "generatedSQL").String(),
		ExecutionTime: gjson.GetBytes(raw, "executionTime").String(),
	}

	if rows.IsArray() {
		rows.Get("0").ForEach(func(key, _ gjson.Result) bool {
			result.Columns = append(result.Columns, key.String())
			return true
		})

		dec := json.NewDecoder(bytes.NewReader([]byte(rows.Raw)))
		dec.UseNumber()
		if err := dec.Decode(&result.Rows); err != nil {
			return nil, fmt.Errorf("decode query rows: %w", err)
		}
	}

	if rc := gjson.GetBytes(raw, "rowCount"); rc.Exists() {
		result.RowCount = int(rc.Int())
	} else {
		result.RowCount = len(result.Rows)
	}
	return result, nil
}
