package ui

import (
	"bytes"
	"encoding/json"
	"fmt"

	"datasync-console/internal/datasync"
	"datasync-console/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// maxDisplayRows caps rows rendered in one result table.
const maxDisplayRows = 500

// resultTable renders a result set with its row count, execution time and,
// when present, the generated SQL in a collapsible block.
func resultTable(res *domain.QueryResult) Node {
	if res == nil {
		return nil
	}

	meta := []Node{Span(Text(domain.RowCountLabel(res.RowCount)))}
	if res.ExecutionTime != "" {
		meta = append(meta, Span(Text("Execution time: "+res.ExecutionTime)))
	}

	var generated Node
	if res.GeneratedSQL != "" {
		generated = Details(
			Class("generated-sql"),
			Summary(Text("Generated SQL")),
			Pre(Code(Text(res.GeneratedSQL))),
		)
	}

	if len(res.Rows) == 0 {
		return Div(Class("result"), generated, P(Class(mutedClass()), Text("No rows returned.")))
	}

	header := make([]Node, 0, len(res.Columns))
	for _, col := range res.Columns {
		header = append(header, Th(Text(col)))
	}

	rows := res.Rows
	if len(rows) > maxDisplayRows {
		rows = rows[:maxDisplayRows]
		meta = append(meta, Span(Text(fmt.Sprintf("showing first %d", maxDisplayRows))))
	}

	body := make([]Node, 0, len(rows))
	for _, row := range rows {
		cells := make([]Node, 0, len(res.Columns))
		for _, col := range res.Columns {
			v := row[col]
			if v == nil {
				cells = append(cells, Td(Class("cell-null"), Text(domain.NullCell)))
				continue
			}
			cells = append(cells, Td(Text(domain.FormatCell(v))))
		}
		body = append(body, Tr(Group(cells)))
	}

	return Div(
		Class("result"),
		generated,
		Div(Class("result-meta "+mutedClass()), Group(meta)),
		Div(Class("table-wrap"),
			Table(
				THead(Tr(Group(header))),
				TBody(Group(body)),
			),
		),
	)
}

// toolResultNode renders an assistant tool result: a table when the data
// carries rows, pretty JSON otherwise.
func toolResultNode(tr domain.ToolResult) Node {
	var content Node
	if datasync.HasRows(tr.Data) {
		if res, err := datasync.ParseQueryResult(tr.Data); err == nil {
			content = resultTable(res)
		}
	}
	if content == nil {
		content = Pre(Class("json"), Code(Text(prettyJSON(tr.Data))))
	}
	return Div(
		Class("tool-result"),
		Div(Class("tool-name"), statusLabel(tr.ToolName, "accent")),
		content,
	)
}

func prettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
