package ui

import (
	"fmt"

	"datasync-console/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const assistantGreeting = "Hello! I can help you query your global data. Ask me anything, and I'll generate the SQL for you."

type queryPageData struct {
	Target string
	SQL    string
	Run    *domain.QueryRun

	Prompt       string
	Generated    *domain.QueryGenerationResponse
	AssistantErr error

	CSRF Node
}

func queryPage(d queryPageData) Node {
	return appPage("Query", "query",
		Div(Class("query-layout"),
			Section(Class("query-main"),
				queryEditor(d),
				queryResults(d.Run),
			),
			Aside(Class("query-assistant"), queryAssistant(d)),
		),
	)
}

func targetOptions(selected string) Node {
	return Group([]Node{
		optionSelectedValue(domain.TargetGlobal, selected, "Global (federated)"),
		optionSelectedValue(domain.TargetPhysical, selected, "Physical"),
	})
}

func queryEditor(d queryPageData) Node {
	return Div(Class(cardClass()),
		Form(Method("post"), Action("/ui/query/run"), d.CSRF,
			Div(Class("row gap-2 mb-2"),
				Label(For("query-target"), Text("Target")),
				Select(ID("query-target"), Name("target"), Class("form-select"), targetOptions(d.Target)),
			),
			Label(Class("sr-only"), For("query-sql"), Text("SQL")),
			Textarea(ID("query-sql"), Name("sql"), Class("sql-editor"), Rows("10"), Attr("spellcheck", "false"), Text(d.SQL)),
			Div(Class("button-row"),
				A(Href("/ui/query?clear=1&target="+d.Target), Class(secondaryButtonClass()), Text("Clear")),
				Button(Type("submit"), Class(secondaryButtonClass()), FormAction("/ui/query/export.csv"), Text("Export CSV")),
				Button(Type("submit"), Class(primaryButtonClass()), Text("Run")),
			),
		),
	)
}

func queryResults(run *domain.QueryRun) Node {
	switch {
	case run == nil:
		return Div(Class(cardClass()), P(Class(mutedClass()), Text("No query executed yet.")))
	case run.Err != nil:
		return Div(Class(cardClass("flash flash-error")),
			H2(Text("Query Error")),
			Pre(Text(run.Err.Error())),
		)
	default:
		return Div(Class(cardClass()),
			Div(Class("row flex-between"),
				H2(Text("Results")),
				Span(Class(mutedClass()), Text(fmt.Sprintf("%s in %d ms", domain.RowCountLabel(run.Result.RowCount), run.Duration.Milliseconds()))),
			),
			resultTable(run.Result),
		)
	}
}

func queryAssistant(d queryPageData) Node {
	messages := []Node{
		Div(Class("message message-assistant"), Div(Class("message-content"), Text(assistantGreeting))),
	}
	if d.Prompt != "" {
		messages = append(messages, Div(Class("message message-user"), Div(Class("message-content"), Text(d.Prompt))))
	}
	switch {
	case d.AssistantErr != nil:
		messages = append(messages, Div(Class("message message-assistant"),
			Div(Class("message-content"), Text(domain.ChatFailureReply)),
			P(Class(mutedClass()), Text(d.AssistantErr.Error())),
		))
	case d.Generated != nil:
		reply := []Node{Div(Class("message-content"), Text(d.Generated.Message))}
		if d.Generated.GeneratedSQL != "" {
			reply = append(reply,
				Pre(Class("generated-sql"), Code(Text(d.Generated.GeneratedSQL))),
				Form(Method("get"), Action("/ui/query"),
					Input(Type("hidden"), Name("target"), Value(domain.TargetGlobal)),
					Input(Type("hidden"), Name("sql"), Value(d.Generated.GeneratedSQL)),
					Button(Type("submit"), Class("btn btn-sm"), Text("Insert into Editor")),
				),
			)
		}
		messages = append(messages, Div(Class("message message-assistant"), Group(reply)))
	}

	return Div(Class(cardClass()),
		H2(Text("SQL Assistant")),
		Div(Class("chat-transcript"), Group(messages)),
		Form(Class("chat-composer"), Method("post"), Action("/ui/query/generate"), d.CSRF,
			Input(Type("hidden"), Name("target"), Value(d.Target)),
			Input(Type("hidden"), Name("sql"), Value(d.SQL)),
			Label(Class("sr-only"), For("assistant-prompt"), Text("Prompt")),
			Textarea(ID("assistant-prompt"), Name("prompt"), Rows("3"), Required(), Placeholder("Describe the data you need...")),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Generate SQL")),
		),
	)
}

type historyPageData struct {
	Entries []domain.QueryHistoryEntry
	Total   int64
	Target  string
	Page    domain.PageRequest
	CSRF    Node
}

func historyPage(d historyPageData) Node {
	filter := Form(Method("get"), Action("/ui/query/history"), Class("row gap-2"),
		Label(For("history-target"), Text("Target")),
		Select(ID("history-target"), Name("target"), Class("form-select"),
			optionSelectedValue("", d.Target, "All"),
			targetOptions(d.Target),
		),
		Button(Type("submit"), Class("btn btn-sm"), Text("Filter")),
	)

	var body Node
	if len(d.Entries) == 0 {
		body = emptyState("No queries recorded.")
	} else {
		rows := make([]Node, 0, len(d.Entries))
		for _, e := range d.Entries {
			status := statusLabel(domain.RowCountLabel(e.RowCount), "success")
			if e.Error != "" {
				status = Span(statusLabel("failed", "danger"), Span(Class(mutedClass()), Text(" "+e.Error)))
			}
			rows = append(rows, Tr(
				Td(Text(formatTime(e.CreatedAt))),
				Td(Text(e.Target)),
				Td(Pre(Class("sql-inline"), Text(e.SQL))),
				Td(status),
				Td(Text(fmt.Sprintf("%d ms", e.DurationMS))),
				Td(Form(Method("get"), Action("/ui/query"),
					Input(Type("hidden"), Name("target"), Value(e.Target)),
					Input(Type("hidden"), Name("sql"), Value(e.SQL)),
					Button(Type("submit"), Class("btn btn-sm"), Text("Open")),
				)),
			))
		}
		body = Div(Class(cardClass("table-wrap")),
			Table(
				THead(Tr(Th(Text("When")), Th(Text("Target")), Th(Text("SQL")), Th(Text("Result")), Th(Text("Duration")), Th())),
				TBody(Group(rows)),
			),
		)
	}

	extra := ""
	if d.Target != "" {
		extra = "&target=" + d.Target
	}
	return appPage("Query History", "history",
		Div(Class(cardClass("toolbar row flex-between")),
			filter,
			postButton(d.CSRF, "/ui/query/history/clear", "Clear history", dangerButtonClass(), "Clear all query history?"),
		),
		body,
		paginationCard("/ui/query/history", extra, d.Page, d.Total),
	)
}
