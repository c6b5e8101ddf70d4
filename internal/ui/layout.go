package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"datasync-console/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type navItem struct {
	Label string
	Href  string
	Key   string
	Icon  string
}

var navItems = []navItem{
	{Label: "Chat", Href: "/ui", Key: "chat", Icon: "message-square"},
	{Label: "Query", Href: "/ui/query", Key: "query", Icon: "square-terminal"},
	{Label: "Inventory", Href: "/ui/inventory", Key: "inventory", Icon: "database"},
	{Label: "Schema Studio", Href: "/ui/studio", Key: "studio", Icon: "git-merge"},
	{Label: "History", Href: "/ui/query/history", Key: "history", Icon: "history"},
}

const datastarBundle = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"

func pageHead(title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title+" | DataSync")),
		Link(Rel("icon"), Href("data:,")),
		Link(Rel("stylesheet"), Href("/ui/static/app.css")),
		Script(Raw(themeInitScript)),
		Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
		Script(Type("module"), Src(datastarBundle)),
	)
}

func appPage(title, active string, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		className := "app-nav-link"
		if item.Key == active {
			className += " active"
		}
		nav = append(nav, A(
			Href(item.Href),
			Class(className),
			I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Span(Text(item.Label)),
		))
	}

	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		pageHead(title),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("DataSync")),
						P(Class(mutedClass()), Text("Federated data console")),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						Button(ID("nav-toggle"), Type("button"), Class("btn btn-sm nav-toggle"), Attr("aria-expanded", "false"), Text("Menu")),
						H1(Class("page-title"), Text(title)),
						Button(ID("theme-toggle"), Type("button"), Class("btn btn-sm"), Title("Toggle theme"),
							I(Attr("data-lucide", "sun-moon"), Attr("aria-hidden", "true")),
							Span(Class("sr-only"), Text("Toggle theme")),
						),
					),
					Div(Class("content"), Group(body)),
				),
			),
			Script(Raw(themeToggleScript)),
		),
	)
}

func errorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		pageHead(title),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				Div(Class(cardClass("flash flash-error")), P(Text(message))),
				P(A(Href("/ui"), Text("Back to chat"))),
			),
		),
	)
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func cardClass(extra ...string) string {
	return strings.Join(append([]string{"card"}, extra...), " ")
}

func mutedClass() string {
	return "muted text-small"
}

func primaryButtonClass() string {
	return "btn btn-primary"
}

func secondaryButtonClass() string {
	return "btn"
}

func dangerButtonClass() string {
	return "btn btn-sm btn-danger"
}

func flash(tone, message string) Node {
	return Div(Class(cardClass("flash flash-"+tone)), Attr("role", "status"), Text(message))
}

// errorCard renders a per-section failure without hiding the rest of the page.
func errorCard(title string, err error) Node {
	return Div(
		Class(cardClass("flash flash-error")),
		Strong(Text(title)),
		P(Class("mb-0"), Text(err.Error())),
	)
}

func emptyState(message string) Node {
	return Div(Class(cardClass("blankslate")), P(Class("muted mb-0"), Text(message)))
}

func statusLabel(text, tone string) Node {
	className := "label"
	if tone != "" {
		className += " label-" + tone
	}
	return Span(Class(className), Text(text))
}

// containsExpr is a datastar expression matching the quick filter signal $q.
func containsExpr(value string) string {
	return "$q === '' || " + strconv.Quote(strings.ToLower(value)) + ".includes($q.toLowerCase())"
}

func quickFilterCard(placeholder string, extraControls ...Node) Node {
	controls := []Node{
		Label(Class("sr-only"), Text("Quick filter")),
		Input(Type("search"), Class("form-control flex-1"), Placeholder(placeholder), data.Bind("q"), AutoComplete("off")),
	}
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": ""}),
		Div(Class("row gap-2"), Group(controls), Group(extraControls)),
	)
}

func paginationCard(basePath string, extra string, page domain.PageRequest, total int64) Node {
	nextToken := domain.NextPageToken(page.Offset(), page.Limit(), total)
	shown := min(page.Offset()+page.Limit(), int(total))
	summary := P(Class(mutedClass()), Text(fmt.Sprintf("Showing %d of %d entries.", shown, total)))
	if nextToken == "" {
		return Div(Class(cardClass()), summary)
	}
	url := fmt.Sprintf("%s?max_results=%d&page_token=%s%s", basePath, page.Limit(), nextToken, extra)
	return Div(Class(cardClass()), summary, A(Href(url), Text("Next page ->")))
}

func optionSelectedValue(value, selected, label string) Node {
	if value == selected {
		return Option(Value(value), Selected(), Text(label))
	}
	return Option(Value(value), Text(label))
}

// postButton is a single-button form; confirm, when set, asks first.
func postButton(csrf Node, action, label, className, confirm string) Node {
	var onsubmit Node
	if confirm != "" {
		onsubmit = Attr("onsubmit", "return confirm("+strconv.Quote(confirm)+");")
	}
	return Form(
		Class("inline-form"),
		Method("post"),
		Action(action),
		onsubmit,
		csrf,
		Button(Type("submit"), Class(className), Text(label)),
	)
}
