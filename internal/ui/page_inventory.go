package ui

import (
	"net/url"
	"sort"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/inventory"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type inventoryPageData struct {
	Overview  *inventory.Overview
	Health    *domain.HealthStatus
	HealthErr error
	CSRF      Node
}

func inventoryPage(d inventoryPageData) Node {
	ov := d.Overview
	return appPage("Inventory", "inventory",
		Div(Class(cardClass("toolbar row flex-between")),
			healthBadge(d.Health, d.HealthErr),
			Form(Method("post"), Action("/ui/inventory/sync"), d.CSRF,
				Input(Type("hidden"), Name("catalog"), Value(ov.Selected)),
				Button(Type("submit"), Class(primaryButtonClass()), Text("Sync metadata")),
			),
		),
		syncBanner(ov.LastSync),
		Div(Class("inventory-layout"),
			Section(catalogList(ov)),
			Section(catalogDetail(ov)),
		),
	)
}

func healthBadge(h *domain.HealthStatus, err error) Node {
	if err != nil {
		return Span(statusLabel("backend unreachable", "danger"), Span(Class(mutedClass()), Text(" "+err.Error())))
	}
	if h == nil {
		return nil
	}
	return statusLabel("backend "+h.Status, "success")
}

func syncBanner(last *domain.SyncOutcome) Node {
	if last == nil {
		return nil
	}
	tone := "success"
	if !last.OK() {
		tone = "error"
	}
	return Div(Class(cardClass("flash flash-"+tone)), Attr("role", "status"),
		Text(last.Banner()),
		Span(Class(mutedClass()), Text(" ("+last.Trigger+", "+formatTime(last.Finished)+")")),
	)
}

func catalogList(ov *inventory.Overview) Node {
	if ov.CatalogsErr != nil {
		return errorCard("Failed to load catalogs", ov.CatalogsErr)
	}
	if len(ov.Catalogs) == 0 {
		return emptyState("No catalogs found. Run a metadata sync to discover sources.")
	}
	items := make([]Node, 0, len(ov.Catalogs))
	for _, c := range ov.Catalogs {
		className := "list-link"
		if c.Name == ov.Selected {
			className += " active"
		}
		items = append(items, Li(
			data.Show(containsExpr(c.Name)),
			A(Href("/ui/inventory?catalog="+url.QueryEscape(c.Name)), Class(className), Text(c.Name)),
		))
	}
	return Div(
		quickFilterCard("Filter catalogs"),
		Div(Class(cardClass()), H2(Text("Catalogs")), Ul(Class("link-list"), Group(items))),
	)
}

func catalogDetail(ov *inventory.Overview) Node {
	if ov.Selected == "" {
		return emptyState("Select a catalog to see its details and schemas.")
	}

	var detail Node
	switch {
	case ov.CatalogErr != nil:
		detail = errorCard("Failed to load catalog "+ov.Selected, ov.CatalogErr)
	case ov.Catalog != nil:
		detail = Div(Class(cardClass()), H2(Text(ov.Catalog.Name)), metadataTable(ov.Catalog.Metadata))
	}

	var schemas Node
	switch {
	case ov.SchemasErr != nil:
		schemas = errorCard("Failed to load schemas", ov.SchemasErr)
	case len(ov.Schemas) == 0:
		schemas = emptyState("No schemas in this catalog.")
	default:
		rows := make([]Node, 0, len(ov.Schemas))
		for _, s := range ov.Schemas {
			browse := "/ui/studio?tab=sources&catalog=" + url.QueryEscape(ov.Selected) + "&schema=" + url.QueryEscape(s.Name)
			rows = append(rows, Tr(
				Td(Text(s.Name)),
				Td(metadataInline(s.Metadata)),
				Td(A(Href(browse), Text("Browse tables ->"))),
			))
		}
		schemas = Div(Class(cardClass("table-wrap")),
			H2(Text("Schemas")),
			Table(THead(Tr(Th(Text("Name")), Th(Text("Metadata")), Th())), TBody(Group(rows))),
		)
	}
	return Group([]Node{detail, schemas})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func metadataTable(m map[string]string) Node {
	if len(m) == 0 {
		return P(Class(mutedClass()), Text("No metadata."))
	}
	rows := make([]Node, 0, len(m))
	for _, k := range sortedKeys(m) {
		rows = append(rows, Tr(Th(Text(k)), Td(Text(m[k]))))
	}
	return Table(Class("kv-table"), TBody(Group(rows)))
}

func metadataInline(m map[string]string) Node {
	if len(m) == 0 {
		return Span(Class(mutedClass()), Text("-"))
	}
	parts := make([]Node, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, Span(Class("label"), Text(k+"="+m[k])))
	}
	return Group(parts)
}
