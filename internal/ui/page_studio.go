package ui

import (
	"net/url"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/studio"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Studio tabs.
const (
	tabSources   = "sources"
	tabGlobal    = "global"
	tabRelations = "relations"
)

var studioTabs = []struct{ Key, Label string }{
	{tabSources, "Data Sources"},
	{tabGlobal, "Global Tables"},
	{tabRelations, "Studio"},
}

func studioPage(active string, body ...Node) Node {
	tabs := make([]Node, 0, len(studioTabs))
	for _, t := range studioTabs {
		className := "tab"
		if t.Key == active {
			className += " active"
		}
		tabs = append(tabs, A(Href("/ui/studio?tab="+t.Key), Class(className), Text(t.Label)))
	}
	return appPage("Schema Studio", "studio",
		Nav(Class("tabs"), Attr("role", "tablist"), Group(tabs)),
		Group(body),
	)
}

func sourcesTab(req studio.BrowseRequest, res *studio.BrowseResult) Node {
	var catalogErr Node
	if res.CatalogsErr != nil {
		catalogErr = errorCard("Failed to load catalogs", res.CatalogsErr)
	}

	catalogOpts := []Node{
		optionSelectedValue("", req.Catalog, "Select a catalog"),
		optionSelectedValue(domain.AllSentinel, req.Catalog, "All catalogs"),
	}
	for _, c := range res.Catalogs {
		catalogOpts = append(catalogOpts, optionSelectedValue(c.Name, req.Catalog, c.Name))
	}

	concreteCatalog := req.Catalog != "" && req.Catalog != domain.AllSentinel
	schemaOpts := []Node{
		optionSelectedValue("", req.Schema, "Select a schema"),
		optionSelectedValue(domain.AllSentinel, req.Schema, "All schemas"),
	}
	for _, s := range res.Schemas {
		schemaOpts = append(schemaOpts, optionSelectedValue(s.Name, req.Schema, s.Name))
	}
	var schemaDisabled Node
	if !concreteCatalog {
		schemaDisabled = Disabled()
	}

	var search Node
	if res.ShowSearch {
		search = Input(Type("search"), Name("search"), Class("form-control"), Placeholder("Search tables"), Value(req.Search))
	}

	filters := Div(Class(cardClass("toolbar")),
		Form(Method("get"), Action("/ui/studio"), Class("row gap-2"),
			Input(Type("hidden"), Name("tab"), Value(tabSources)),
			Select(Name("catalog"), Class("form-select"), Attr("onchange", "this.form.schema&&(this.form.schema.value='');this.form.submit()"), Group(catalogOpts)),
			Select(Name("schema"), Class("form-select"), schemaDisabled, Attr("onchange", "this.form.submit()"), Group(schemaOpts)),
			search,
			Button(Type("submit"), Class("btn btn-sm"), Text("Show")),
		),
	)

	var schemaErr Node
	if res.SchemasErr != nil {
		schemaErr = errorCard("Failed to load schemas", res.SchemasErr)
	}

	var body Node
	switch {
	case req.Catalog == "":
		body = emptyState("Choose a catalog to browse its tables.")
	case concreteCatalog && req.Schema == "":
		body = emptyState("Choose a schema, or all schemas.")
	case len(res.Sections) == 0:
		body = emptyState("No tables match.")
	default:
		sections := make([]Node, 0, len(res.Sections))
		for _, sec := range res.Sections {
			sections = append(sections, schemaSection(sec))
		}
		body = Group(sections)
	}

	return studioPage(tabSources, catalogErr, filters, schemaErr, body)
}

func schemaSection(sec studio.SchemaSection) Node {
	title := sec.Catalog
	if sec.Schema != "" {
		title += " › " + sec.Schema
	}
	if sec.Err != nil {
		return errorCard(title, sec.Err)
	}
	tables := make([]Node, 0, len(sec.Tables))
	for _, t := range sec.Tables {
		tables = append(tables, tableCard(sec, t))
	}
	return Div(Class("schema-section"), H2(Text(title)), Div(Class("card-grid"), Group(tables)))
}

func tableCard(sec studio.SchemaSection, t studio.TableEntry) Node {
	var cols Node
	switch {
	case t.Err != nil:
		cols = P(Class("text-danger text-small"), Text(t.Err.Error()))
	case len(t.Columns) == 0:
		cols = P(Class(mutedClass()), Text("No columns."))
	default:
		rows := make([]Node, 0, len(t.Columns))
		for _, c := range t.Columns {
			nullable := ""
			if c.Nullable {
				nullable = "nullable"
			}
			rows = append(rows, Tr(Td(Text(c.Name)), Td(Code(Text(c.DataType))), Td(Class(mutedClass()), Text(nullable))))
		}
		cols = Table(Class("compact"), TBody(Group(rows)))
	}
	q := url.Values{}
	q.Set("sql", "SELECT * FROM "+t.Table.Name+" LIMIT 10")
	q.Set("target", domain.TargetPhysical)
	return Div(Class(cardClass()),
		Div(Class("row flex-between"),
			H3(Text(t.Table.Name)),
			A(Href("/ui/query?"+q.Encode()), Class("text-small"), Text("Query ->")),
		),
		P(Class(mutedClass()), Text(sec.Catalog+"."+sec.Schema)),
		cols,
	)
}
