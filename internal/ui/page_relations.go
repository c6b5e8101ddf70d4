package ui

import (
	"fmt"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/studio"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// relationFormState is the relation form as submitted.
type relationFormState struct {
	Name         string
	Description  string
	RelationType string
	Left         studio.SideSelection
	Right        studio.SideSelection
}

type relationsTabData struct {
	Relations     []studio.RelationView
	RelationsErr  error
	Relationships []domain.ColumnRelationship
	RelshipsErr   error
	Form          relationFormState
	Options       *studio.FormOptions
	FormErr       error
	AutoMatch     *domain.AutoMatchResponse
	AutoMatchErr  error
	CSRF          Node
}

func relationsTab(d relationsTabData) Node {
	return studioPage(tabRelations,
		autoMatchCard(d.AutoMatch, d.AutoMatchErr, d.CSRF),
		Div(Class("studio-layout"),
			Section(relationList(d.Relations, d.RelationsErr, d.CSRF)),
			Section(relationForm(d)),
		),
		relationshipsCard(d.Relationships, d.RelshipsErr, d.CSRF),
	)
}

func autoMatchCard(res *domain.AutoMatchResponse, err error, csrf Node) Node {
	button := Form(Method("post"), Action("/ui/studio/relations/auto-match"), csrf,
		Button(Type("submit"), Class(primaryButtonClass()), Text("Auto-match relations")),
	)
	var result Node
	switch {
	case err != nil:
		result = errorCard("Auto-match failed", err)
	case res != nil:
		var errs []Node
		for _, e := range res.Errors {
			errs = append(errs, Li(Text(e)))
		}
		var errList Node
		if len(errs) > 0 {
			errList = Ul(Class("text-danger text-small"), Group(errs))
		}
		result = Div(Class(cardClass("flash flash-success")), Attr("role", "status"),
			Div(Class("row flex-between"),
				Strong(Text("Auto-match results")),
				A(Href("/ui/studio?tab="+tabRelations), Class("btn btn-sm"), Text("Dismiss")),
			),
			P(Text(fmt.Sprintf("Suggestions: %d", len(res.Suggestions)))),
			P(Text(fmt.Sprintf("Relations created: %d", len(res.CreatedRelations)))),
			P(Text(fmt.Sprintf("Errors: %d", len(res.Errors)))),
			errList,
		)
	}
	return Div(Class(cardClass("toolbar row flex-between")),
		P(Class(mutedClass()), Text("Let the matcher propose JOIN and UNION relations between your tables.")),
		button,
		result,
	)
}

// relationSummary renders "left ← TYPE (column) → right".
func relationSummary(v studio.RelationView) string {
	mid := v.Relation.RelationType
	if v.Relation.JoinColumn != nil {
		mid += " (" + v.Relation.JoinColumn.Left + ")"
	}
	return v.LeftLabel + " ← " + mid + " → " + v.RightLabel
}

func relationList(rels []studio.RelationView, err error, csrf Node) Node {
	if err != nil {
		return errorCard("Failed to load relations", err)
	}
	if len(rels) == 0 {
		return emptyState("No relations defined.")
	}
	cards := make([]Node, 0, len(rels))
	for _, v := range rels {
		cards = append(cards, Div(Class(cardClass("relation-card")),
			Div(Class("row flex-between"),
				A(Href("/ui/studio/relations/"+v.Relation.ID), H3(Text(v.Relation.Name))),
				postButton(csrf, "/ui/studio/relations/"+v.Relation.ID+"/delete", "Delete", dangerButtonClass(),
					"Are you sure you want to delete relation "+v.Relation.Name+"?"),
			),
			P(Code(Text(relationSummary(v)))),
			P(Class(mutedClass()), Text(v.Relation.Description)),
		))
	}
	return Div(H2(Text("Relations")), Group(cards))
}

func relationForm(d relationsTabData) Node {
	f := d.Form
	opts := d.Options
	isJoin := f.RelationType != domain.RelationUnion

	var formErr Node
	if d.FormErr != nil {
		formErr = errorCard("Cannot create relation", d.FormErr)
	}
	var catalogsErr Node
	if opts.CatalogsErr != nil {
		catalogsErr = errorCard("Failed to load catalogs", opts.CatalogsErr)
	}

	return Div(Class(cardClass()),
		H2(Text("New relation")),
		formErr,
		catalogsErr,
		Form(Class("stack-form"), Method("post"), Action("/ui/studio/relations/form"), d.CSRF,
			Label(For("rel-name"), Text("Name")),
			Input(ID("rel-name"), Type("text"), Name("name"), Class("form-control"), Value(f.Name)),
			Label(For("rel-type"), Text("Type")),
			Select(ID("rel-type"), Name("relation_type"), Class("form-select"), Attr("onchange", "this.form.requestSubmit()"),
				optionSelectedValue(domain.RelationJoin, f.RelationType, "JOIN"),
				optionSelectedValue(domain.RelationUnion, f.RelationType, "UNION"),
			),
			Div(Class("relation-sides"),
				sideFields("left", "Left source", opts.Left, opts, isJoin),
				sideFields("right", "Right source", opts.Right, opts, isJoin),
			),
			Label(For("rel-description"), Text("Description")),
			Textarea(ID("rel-description"), Name("description"), Rows("2"), Text(f.Description)),
			Div(Class("button-row"),
				Button(Type("submit"), Name("action"), Value("refresh"), Class(secondaryButtonClass()), Text("Refresh options")),
				Button(Type("submit"), Name("action"), Value("create"), Class(primaryButtonClass()), Text("Create relation")),
			),
		),
	)
}

func sideFields(prefix, title string, side studio.SideOptions, opts *studio.FormOptions, isJoin bool) Node {
	sel := side.Selection
	field := func(name string) string { return prefix + "_" + name }
	submit := Attr("onchange", "this.form.requestSubmit()")

	typeSelect := Select(Name(field("type")), Class("form-select"), submit,
		optionSelectedValue(domain.SourcePhysical, sel.SourceType, "Physical table"),
		optionSelectedValue(domain.SourceRelation, sel.SourceType, "Relation"),
	)

	var sideErr Node
	if side.Err != nil {
		sideErr = P(Class("text-danger text-small"), Text(side.Err.Error()))
	}

	if sel.SourceType == domain.SourceRelation {
		relOpts := []Node{optionSelectedValue("", sel.RelationID, "Select a relation")}
		for _, r := range opts.Relations {
			relOpts = append(relOpts, optionSelectedValue(r.ID, sel.RelationID, r.Name))
		}
		var column Node
		if isJoin {
			column = Input(Type("text"), Name(field("column")), Class("form-control"), Placeholder("Join column"), Value(sel.Column))
		}
		return FieldSet(Legend(Text(title)), typeSelect,
			Select(Name(field("relation")), Class("form-select"), Group(relOpts)),
			column,
		)
	}

	catalogOpts := []Node{optionSelectedValue("", sel.Catalog, "Catalog")}
	for _, c := range opts.Catalogs {
		catalogOpts = append(catalogOpts, optionSelectedValue(c.Name, sel.Catalog, c.Name))
	}
	schemaOpts := []Node{optionSelectedValue("", sel.Schema, "Schema")}
	for _, s := range side.Schemas {
		schemaOpts = append(schemaOpts, optionSelectedValue(s.Name, sel.Schema, s.Name))
	}
	tableOpts := []Node{optionSelectedValue("", sel.Table, "Table")}
	for _, t := range side.Tables {
		tableOpts = append(tableOpts, optionSelectedValue(t.Name, sel.Table, t.Name))
	}

	disabledUnless := func(ok bool) Node {
		if ok {
			return nil
		}
		return Disabled()
	}

	var column Node
	if isJoin {
		colOpts := []Node{optionSelectedValue("", sel.Column, "Join column")}
		for _, c := range side.Columns {
			colOpts = append(colOpts, optionSelectedValue(c.Name, sel.Column, c.Name+" ("+c.DataType+")"))
		}
		column = Select(Name(field("column")), Class("form-select"), disabledUnless(sel.Table != ""), Group(colOpts))
	}

	return FieldSet(Legend(Text(title)), typeSelect,
		Select(Name(field("catalog")), Class("form-select"), submit, Group(catalogOpts)),
		Select(Name(field("schema")), Class("form-select"), submit, disabledUnless(sel.Catalog != ""), Group(schemaOpts)),
		Select(Name(field("table")), Class("form-select"), submit, disabledUnless(sel.Schema != ""), Group(tableOpts)),
		column,
		sideErr,
	)
}

func relationshipsCard(rels []domain.ColumnRelationship, err error, csrf Node) Node {
	var list Node
	switch {
	case err != nil:
		list = errorCard("Failed to load column relationships", err)
	case len(rels) == 0:
		list = P(Class(mutedClass()), Text("No column relationships defined."))
	default:
		rows := make([]Node, 0, len(rels))
		for _, r := range rels {
			rows = append(rows, Tr(
				Td(Code(Text(r.Left.String()))),
				Td(statusLabel(r.RelationshipType, "accent")),
				Td(Code(Text(r.Right.String()))),
				Td(Class(mutedClass()), Text(orDash(r.Description))),
				Td(postButton(csrf, "/ui/studio/relationships/"+r.ID+"/delete", "Delete", dangerButtonClass(), "Delete this relationship?")),
			))
		}
		list = Div(Class("table-wrap"), Table(
			THead(Tr(Th(Text("Left")), Th(Text("Type")), Th(Text("Right")), Th(Text("Description")), Th())),
			TBody(Group(rows)),
		))
	}

	endpoint := func(prefix string) Node {
		return Group([]Node{
			Input(Type("text"), Name(prefix+"_catalog"), Class("form-control"), Placeholder("Catalog"), Required()),
			Input(Type("text"), Name(prefix+"_schema"), Class("form-control"), Placeholder("Schema"), Required()),
			Input(Type("text"), Name(prefix+"_table"), Class("form-control"), Placeholder("Table"), Required()),
			Input(Type("text"), Name(prefix+"_column"), Class("form-control"), Placeholder("Column"), Required()),
		})
	}

	return Div(Class(cardClass()),
		H2(Text("Column relationships")),
		list,
		Form(Class("stack-form"), Method("post"), Action("/ui/studio/relationships"), csrf,
			FieldSet(Legend(Text("Left column")), Div(Class("row gap-2"), endpoint("left"))),
			FieldSet(Legend(Text("Right column")), Div(Class("row gap-2"), endpoint("right"))),
			Div(Class("row gap-2"),
				Select(Name("relationship_type"), Class("form-select"),
					Option(Value("one-to-one"), Text("one-to-one")),
					Option(Value("one-to-many"), Text("one-to-many")),
					Option(Value("many-to-one"), Text("many-to-one")),
					Option(Value("many-to-many"), Text("many-to-many")),
				),
				Input(Type("text"), Name("description"), Class("form-control flex-1"), Placeholder("Description")),
				Button(Type("submit"), Class(primaryButtonClass()), Text("Add relationship")),
			),
		),
	)
}

func sourceRows(label string, src domain.TableSource, resolved, joinCol, joinType string) Node {
	rows := []Node{Tr(Th(Attr("colspan", "2"), Text(label)))}
	if src.Type == domain.SourceRelation {
		rows = append(rows,
			Tr(Td(Text("Relation")), Td(A(Href("/ui/studio/relations/"+src.RelationID), Text(resolved)))),
		)
	} else {
		rows = append(rows,
			Tr(Td(Text("Catalog")), Td(Text(src.Catalog))),
			Tr(Td(Text("Schema")), Td(Text(src.Schema))),
			Tr(Td(Text("Table")), Td(Text(src.Table))),
		)
	}
	if joinCol != "" {
		col := joinCol
		if joinType != "" {
			col += " (" + joinType + ")"
		}
		rows = append(rows, Tr(Td(Text("Join column")), Td(Code(Text(col)))))
	}
	return Group(rows)
}

func relationDetailPage(d *studio.RelationDetail, csrf Node) Node {
	r := d.Relation
	var leftCol, rightCol string
	if r.JoinColumn != nil {
		leftCol, rightCol = r.JoinColumn.Left, r.JoinColumn.Right
	}

	var usedBy Node
	if len(d.UsedBy) > 0 {
		items := make([]Node, 0, len(d.UsedBy))
		for _, u := range d.UsedBy {
			items = append(items, Li(A(Href("/ui/studio/relations/"+u.Relation.ID), Text(u.Relation.Name))))
		}
		usedBy = Div(Class(cardClass()), H3(Text("Used by")), Ul(Class("link-list"), Group(items)))
	}

	return studioPage(tabRelations,
		P(A(Href("/ui/studio?tab="+tabRelations), Text("<- Relations"))),
		Div(Class(cardClass()),
			Div(Class("row flex-between"),
				H2(Text(r.Name)),
				postButton(csrf, "/ui/studio/relations/"+r.ID+"/delete", "Delete", dangerButtonClass(),
					"Are you sure you want to delete relation "+r.Name+"?"),
			),
			P(statusLabel(r.RelationType, "accent"), Span(Class(mutedClass()), Text(" "+relationSummary(d.RelationView)))),
			Table(Class("kv-table"), TBody(
				sourceRows("Left", r.LeftTable, d.LeftLabel, leftCol, d.LeftJoinType),
				sourceRows("Right", r.RightTable, d.RightLabel, rightCol, d.RightJoinType),
			)),
			H3(Text("Description")),
			P(Text(orDash(r.Description))),
		),
		usedBy,
	)
}
