package ui

import (
	"net/http"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/studio"
)

func sideFromForm(r *http.Request, prefix string) studio.SideSelection {
	field := func(name string) string { return formString(r.PostForm, prefix+"_"+name) }
	sel := studio.SideSelection{
		SourceType: field("type"),
		Catalog:    field("catalog"),
		Schema:     field("schema"),
		Table:      field("table"),
		RelationID: field("relation"),
		Column:     field("column"),
	}
	if sel.SourceType != domain.SourceRelation {
		sel.SourceType = domain.SourcePhysical
		sel.RelationID = ""
	} else {
		sel.Catalog, sel.Schema, sel.Table = "", "", ""
	}
	return sel
}

// RelationForm re-renders the relation form with refreshed options, or
// creates the relation when action=create.
func (h *Handler) RelationForm(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	form := relationFormState{
		Name:         formString(r.PostForm, "name"),
		Description:  formString(r.PostForm, "description"),
		RelationType: formString(r.PostForm, "relation_type"),
		Left:         sideFromForm(r, "left"),
		Right:        sideFromForm(r, "right"),
	}
	if form.RelationType != domain.RelationUnion {
		form.RelationType = domain.RelationJoin
	}
	if form.RelationType == domain.RelationUnion {
		form.Left.Column, form.Right.Column = "", ""
	}

	if formString(r.PostForm, "action") != "create" {
		h.renderRelationsTab(w, r, http.StatusOK, relationsTabData{Form: form})
		return
	}

	rel, err := h.Studio.CreateRelation(r.Context(), domain.RelationDraft{
		Name:         form.Name,
		Description:  form.Description,
		RelationType: form.RelationType,
		Left:         form.Left.Source(),
		Right:        form.Right.Source(),
		LeftColumn:   form.Left.Column,
		RightColumn:  form.Right.Column,
	})
	if err != nil {
		status, _ := classifyError(err)
		if status == http.StatusInternalServerError {
			h.renderServiceError(w, r, err)
			return
		}
		h.renderRelationsTab(w, r, status, relationsTabData{Form: form, FormErr: err})
		return
	}
	redirect(w, r, "/ui/studio/relations/"+rel.ID)
}

// RelationAutoMatch asks the backend matcher to propose and create relations.
func (h *Handler) RelationAutoMatch(w http.ResponseWriter, r *http.Request) {
	res, err := h.Studio.AutoMatch(r.Context())
	if err != nil {
		h.Logger.WarnContext(r.Context(), "auto-match failed", "error", err)
	}
	h.renderRelationsTab(w, r, http.StatusOK, relationsTabData{
		Form: relationFormState{
			RelationType: domain.RelationJoin,
			Left:         studio.SideSelection{SourceType: domain.SourcePhysical},
			Right:        studio.SideSelection{SourceType: domain.SourcePhysical},
		},
		AutoMatch:    res,
		AutoMatchErr: err,
	})
}

// RelationDetail shows one relation.
func (h *Handler) RelationDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Studio.Relation(r.Context(), pathParam(r, "relationID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, relationDetailPage(detail, csrfField(r)))
}

// RelationDelete removes a relation.
func (h *Handler) RelationDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Studio.DeleteRelation(r.Context(), pathParam(r, "relationID")); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	redirect(w, r, "/ui/studio?tab="+tabRelations)
}

func endpointFromForm(r *http.Request, prefix string) domain.ColumnEndpoint {
	return domain.ColumnEndpoint{
		Catalog: formString(r.PostForm, prefix+"_catalog"),
		Schema:  formString(r.PostForm, prefix+"_schema"),
		Table:   formString(r.PostForm, prefix+"_table"),
		Column:  formString(r.PostForm, prefix+"_column"),
	}
}

// RelationshipCreate links two physical columns.
func (h *Handler) RelationshipCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	_, err := h.Studio.CreateRelationship(r.Context(), domain.ColumnRelationship{
		Left:             endpointFromForm(r, "left"),
		Right:            endpointFromForm(r, "right"),
		RelationshipType: formString(r.PostForm, "relationship_type"),
		Description:      formString(r.PostForm, "description"),
	})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	redirect(w, r, "/ui/studio?tab="+tabRelations)
}

// RelationshipDelete removes a column relationship.
func (h *Handler) RelationshipDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Studio.DeleteRelationship(r.Context(), pathParam(r, "relationshipID")); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	redirect(w, r, "/ui/studio?tab="+tabRelations)
}
