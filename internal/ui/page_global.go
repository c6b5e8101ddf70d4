package ui

import (
	"net/url"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/studio"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func globalTablePath(table string) string {
	return "/ui/studio/global/tables/" + url.PathEscape(table)
}

func globalColumnPath(table, column string) string {
	return globalTablePath(table) + "/columns/" + url.PathEscape(column)
}

func globalTab(views []studio.GlobalTableView, listErr error, csrf Node) Node {
	create := Div(Class(cardClass()),
		H2(Text("New global table")),
		Form(Class("row gap-2"), Method("post"), Action("/ui/studio/global/tables"), csrf,
			Input(Type("text"), Name("name"), Class("form-control"), Placeholder("Table name"), Required()),
			Input(Type("text"), Name("description"), Class("form-control flex-1"), Placeholder("Description")),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Create")),
		),
	)

	var body Node
	switch {
	case listErr != nil:
		body = errorCard("Failed to load global tables", listErr)
	case len(views) == 0:
		body = emptyState("No global tables yet.")
	default:
		cards := make([]Node, 0, len(views))
		for _, v := range views {
			cards = append(cards, globalTableCard(v, csrf))
		}
		body = Group([]Node{quickFilterCard("Filter global tables"), Group(cards)})
	}
	return studioPage(tabGlobal, create, body)
}

func globalTableCard(v studio.GlobalTableView, csrf Node) Node {
	name := v.Table.Name
	return Div(Class(cardClass()), data.Show(containsExpr(name)), globalTableBody(v, csrf))
}

// globalTablePage shows one global table on its own page.
func globalTablePage(v *studio.GlobalTableView, csrf Node) Node {
	return studioPage(tabGlobal,
		P(A(Href("/ui/studio?tab="+tabGlobal), Text("<- Global tables"))),
		Div(Class(cardClass()), globalTableBody(*v, csrf)),
	)
}

func globalTableBody(v studio.GlobalTableView, csrf Node) Node {
	name := v.Table.Name
	var sectionErr Node
	if v.Err != nil {
		sectionErr = P(Class("text-danger text-small"), Text(v.Err.Error()))
	}

	colRows := make([]Node, 0, len(v.Columns))
	for _, c := range v.Columns {
		colRows = append(colRows, Tr(
			Td(Text(c.Name)),
			Td(Code(Text(c.DataType))),
			Td(Class(mutedClass()), Text(orDash(c.Description))),
			Td(Class("actions"),
				A(Href(globalColumnPath(name, c.Name)+"/mappings"), Class("btn btn-sm"), Text("Mappings")),
				postButton(csrf, globalColumnPath(name, c.Name)+"/delete", "Delete", dangerButtonClass(), "Delete column "+c.Name+"?"),
			),
		))
	}
	columns := P(Class(mutedClass()), Text("No columns."))
	if len(colRows) > 0 {
		columns = Table(Class("compact"), THead(Tr(Th(Text("Column")), Th(Text("Type")), Th(Text("Description")), Th())), TBody(Group(colRows)))
	}

	mapRows := make([]Node, 0, len(v.Mappings))
	for _, m := range v.Mappings {
		mapRows = append(mapRows, Li(Class("row flex-between"),
			Code(Text(m.Ref().String())),
			Form(Class("inline-form"), Method("post"), Action(globalTablePath(name)+"/mappings/delete"), csrf,
				Input(Type("hidden"), Name("catalog"), Value(m.CatalogName)),
				Input(Type("hidden"), Name("schema"), Value(m.SchemaName)),
				Input(Type("hidden"), Name("table"), Value(m.TableName)),
				Button(Type("submit"), Class(dangerButtonClass()), Text("Remove")),
			),
		))
	}
	mappings := P(Class(mutedClass()), Text("Not mapped to any physical table."))
	if len(mapRows) > 0 {
		mappings = Ul(Class("link-list"), Group(mapRows))
	}

	return Group([]Node{
		Div(Class("row flex-between"),
			Div(H3(A(Href(globalTablePath(name)), Text(name))), P(Class(mutedClass()), Text(orDash(v.Table.Description)))),
			postButton(csrf, globalTablePath(name)+"/delete", "Delete table", dangerButtonClass(), "Delete global table "+name+"?"),
		),
		sectionErr,
		H4(Text("Columns")),
		columns,
		Form(Class("row gap-2"), Method("post"), Action(globalTablePath(name)+"/columns"), csrf,
			Input(Type("text"), Name("name"), Class("form-control"), Placeholder("Column name"), Required()),
			Input(Type("text"), Name("data_type"), Class("form-control"), Placeholder("Data type"), Required()),
			Input(Type("text"), Name("description"), Class("form-control flex-1"), Placeholder("Description")),
			Button(Type("submit"), Class("btn btn-sm"), Text("Add column")),
		),
		H4(Text("Table mappings")),
		mappings,
		Form(Class("row gap-2"), Method("post"), Action(globalTablePath(name)+"/mappings"), csrf,
			Input(Type("text"), Name("catalog"), Class("form-control"), Placeholder("Catalog"), Required()),
			Input(Type("text"), Name("schema"), Class("form-control"), Placeholder("Schema"), Required()),
			Input(Type("text"), Name("table"), Class("form-control"), Placeholder("Table"), Required()),
			Button(Type("submit"), Class("btn btn-sm"), Text("Add mapping")),
		),
	})
}

func columnMappingsPage(table, column string, mappings []domain.ColumnMapping, listErr error, csrf Node) Node {
	var list Node
	switch {
	case listErr != nil:
		list = errorCard("Failed to load column mappings", listErr)
	case len(mappings) == 0:
		list = emptyState("No physical columns mapped.")
	default:
		rows := make([]Node, 0, len(mappings))
		for _, m := range mappings {
			rows = append(rows, Tr(
				Td(Code(Text(m.CatalogName+"."+m.SchemaName+"."+m.TableName+"."+m.ColumnName))),
				Td(Class("actions"),
					Form(Class("inline-form"), Method("post"), Action(globalColumnPath(table, column)+"/mappings/delete"), csrf,
						Input(Type("hidden"), Name("catalog"), Value(m.CatalogName)),
						Input(Type("hidden"), Name("schema"), Value(m.SchemaName)),
						Input(Type("hidden"), Name("table"), Value(m.TableName)),
						Input(Type("hidden"), Name("column"), Value(m.ColumnName)),
						Button(Type("submit"), Class(dangerButtonClass()), Text("Remove")),
					),
				),
			))
		}
		list = Div(Class(cardClass("table-wrap")), Table(TBody(Group(rows))))
	}

	return studioPage(tabGlobal,
		P(A(Href("/ui/studio?tab="+tabGlobal), Text("<- Global tables"))),
		H2(Text(table+"."+column)),
		list,
		Div(Class(cardClass()),
			H3(Text("Map a physical column")),
			Form(Class("row gap-2"), Method("post"), Action(globalColumnPath(table, column)+"/mappings"), csrf,
				Input(Type("text"), Name("catalog"), Class("form-control"), Placeholder("Catalog"), Required()),
				Input(Type("text"), Name("schema"), Class("form-control"), Placeholder("Schema"), Required()),
				Input(Type("text"), Name("table"), Class("form-control"), Placeholder("Table"), Required()),
				Input(Type("text"), Name("column"), Class("form-control"), Placeholder("Column"), Required()),
				Button(Type("submit"), Class(primaryButtonClass()), Text("Add mapping")),
			),
		),
	)
}
