package http

import (
	"net/http"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
)

type PlanResponse struct {
	Plan domain.ServicePlanDetail `json:"plan"`
}

type PlansResponse struct {
	Plans []domain.ServicePlan `json:"plans"`
}

type ItemResponse struct {
	Item domain.ServiceItem `json:"item"`
}

type ItemsResponse struct {
	Items []domain.ServiceItem `json:"items"`
}

type AssignmentResponse struct {
	Assignment domain.ServiceAssignment `json:"assignment"`
}

type TemplateResponse struct {
	Template domain.ServiceTemplate `json:"template"`
}

type TemplatesResponse struct {
	Templates []domain.ServiceTemplate `json:"templates"`
}

type ApplyTemplateRequest struct {
	TemplateID string `json:"templateId"`
}

type SaveTemplateRequest struct {
	Name string `json:"name"`
}

// PlansHandler serves service plans, their running order and team, and the
// templates plans are built from.
type PlansHandler struct {
	PlanService     *service.PlanService
	TemplateService *service.TemplateService
}

// HandleList godoc
//
//	@Summary	List service plans
//	@Tags		Plans
//	@Produce	json
//	@Param		limit	query		int	false	"Page size"
//	@Param		offset	query		int	false	"Offset"
//	@Success	200		{object}	PlansResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans [get].
func (h *PlansHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := pageFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	plans, err := h.PlanService.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, PlansResponse{Plans: plans})
}

// HandleGet godoc
//
//	@Summary	Get a service plan
//	@Tags		Plans
//	@Produce	json
//	@Param		id	path		string	true	"Plan id"
//	@Success	200	{object}	PlanResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id} [get].
func (h *PlansHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.PlanService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, PlanResponse{Plan: p})
}

// HandleCreate godoc
//
//	@Summary		Create a service plan
//	@Description	With templateId the plan starts with the template's items.
//	@Tags			Plans
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.PlanInput	true	"Plan"
//	@Success		201		{object}	PlanResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse	"permission denied or plan limit reached"
//	@Security		SessionCookie
//	@Router			/api/v1/plans [post].
func (h *PlansHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.PlanInput
	if !decode(w, r, &in) {
		return
	}

	p, err := h.PlanService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, PlanResponse{Plan: p})
}

// HandleUpdate godoc
//
//	@Summary	Update a service plan
//	@Tags		Plans
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Plan id"
//	@Param		request	body		service.PlanInput	true	"Plan"
//	@Success	200		{object}	PlanResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id} [patch].
func (h *PlansHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.PlanInput
	if !decode(w, r, &in) {
		return
	}

	if _, err := h.PlanService.Update(r.Context(), r.PathValue("id"), in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.PlanService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, PlanResponse{Plan: p})
}

// HandleDelete godoc
//
//	@Summary	Delete a service plan
//	@Tags		Plans
//	@Param		id	path	string	true	"Plan id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id} [delete].
func (h *PlansHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.PlanService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddItem godoc
//
//	@Summary	Append an item to the running order
//	@Tags		Plans
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Plan id"
//	@Param		request	body		service.ItemInput	true	"Item"
//	@Success	201		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id}/items [post].
func (h *PlansHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var in service.ItemInput
	if !decode(w, r, &in) {
		return
	}

	it, err := h.PlanService.AddItem(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, ItemResponse{Item: it})
}

// HandleUpdateItem godoc
//
//	@Summary	Update an item
//	@Tags		Plans
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Plan id"
//	@Param		itemId	path		string				true	"Item id"
//	@Param		request	body		service.ItemInput	true	"Item"
//	@Success	200		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id}/items/{itemId} [patch].
func (h *PlansHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var in service.ItemInput
	if !decode(w, r, &in) {
		return
	}

	it, err := h.PlanService.UpdateItem(r.Context(), r.PathValue("id"), r.PathValue("itemId"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ItemResponse{Item: it})
}

// HandleDeleteItem godoc
//
//	@Summary	Remove an item
//	@Tags		Plans
//	@Param		id		path	string	true	"Plan id"
//	@Param		itemId	path	string	true	"Item id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id}/items/{itemId} [delete].
func (h *PlansHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.PlanService.DeleteItem(r.Context(), r.PathValue("id"), r.PathValue("itemId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorder godoc
//
//	@Summary		Move an item in the running order
//	@Description	newIndex is clamped to the list. Positions come back contiguous from 0.
//	@Tags			Plans
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Plan id"
//	@Param			request	body		service.ReorderRequest	true	"Item and its new index"
//	@Success		200		{object}	ItemsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/plans/{id}/items/reorder [post].
func (h *PlansHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req service.ReorderRequest
	if !decode(w, r, &req) {
		return
	}

	items, err := h.PlanService.Reorder(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

// HandleApplyTemplate godoc
//
//	@Summary	Append a template's items to a plan
//	@Tags		Plans
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Plan id"
//	@Param		request	body		ApplyTemplateRequest	true	"Template"
//	@Success	200		{object}	ItemsResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id}/apply-template [post].
func (h *PlansHandler) HandleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var req ApplyTemplateRequest
	if !decode(w, r, &req) {
		return
	}

	items, err := h.PlanService.ApplyTemplate(r.Context(), r.PathValue("id"), req.TemplateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

// HandleSaveAsTemplate godoc
//
//	@Summary	Save a plan's running order as a template
//	@Tags		Plans
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Plan id"
//	@Param		request	body		SaveTemplateRequest	true	"Template name"
//	@Success	201		{object}	TemplateResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id}/save-as-template [post].
func (h *PlansHandler) HandleSaveAsTemplate(w http.ResponseWriter, r *http.Request) {
	var req SaveTemplateRequest
	if !decode(w, r, &req) {
		return
	}

	t, err := h.TemplateService.SaveFromPlan(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, TemplateResponse{Template: t})
}

// HandleAssign godoc
//
//	@Summary	Assign a person to serve in a plan
//	@Tags		Plans
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Plan id"
//	@Param		request	body		service.AssignInput	true	"Assignment"
//	@Success	201		{object}	AssignmentResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id}/assignments [post].
func (h *PlansHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var in service.AssignInput
	if !decode(w, r, &in) {
		return
	}

	as, err := h.PlanService.Assign(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, AssignmentResponse{Assignment: as})
}

// HandleUpdateAssignment godoc
//
//	@Summary	Confirm or decline an assignment
//	@Tags		Plans
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string							true	"Plan id"
//	@Param		assignmentId	path		string							true	"Assignment id"
//	@Param		request			body		service.AssignmentStatusInput	true	"Status"
//	@Success	200				{object}	AssignmentResponse
//	@Failure	400				{object}	ErrorResponse
//	@Failure	404				{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id}/assignments/{assignmentId} [patch].
func (h *PlansHandler) HandleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var in service.AssignmentStatusInput
	if !decode(w, r, &in) {
		return
	}

	as, err := h.PlanService.UpdateAssignment(r.Context(), r.PathValue("id"), r.PathValue("assignmentId"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, AssignmentResponse{Assignment: as})
}

// HandleUnassign godoc
//
//	@Summary	Remove an assignment
//	@Tags		Plans
//	@Param		id				path	string	true	"Plan id"
//	@Param		assignmentId	path	string	true	"Assignment id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/plans/{id}/assignments/{assignmentId} [delete].
func (h *PlansHandler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	if err := h.PlanService.Unassign(r.Context(), r.PathValue("id"), r.PathValue("assignmentId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListTemplates godoc
//
//	@Summary	List templates
//	@Tags		Templates
//	@Produce	json
//	@Success	200	{object}	TemplatesResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/templates [get].
func (h *PlansHandler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.TemplateService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, TemplatesResponse{Templates: templates})
}

// HandleGetTemplate godoc
//
//	@Summary	Get a template
//	@Tags		Templates
//	@Produce	json
//	@Param		id	path		string	true	"Template id"
//	@Success	200	{object}	TemplateResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/templates/{id} [get].
func (h *PlansHandler) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.TemplateService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, TemplateResponse{Template: t})
}

// HandleCreateTemplate godoc
//
//	@Summary	Create a template
//	@Tags		Templates
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.TemplateInput	true	"Template"
//	@Success	201		{object}	TemplateResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/templates [post].
func (h *PlansHandler) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var in service.TemplateInput
	if !decode(w, r, &in) {
		return
	}

	t, err := h.TemplateService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, TemplateResponse{Template: t})
}

// HandleUpdateTemplate godoc
//
//	@Summary	Update a template
//	@Tags		Templates
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Template id"
//	@Param		request	body		service.TemplateInput	true	"Template"
//	@Success	200		{object}	TemplateResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/templates/{id} [patch].
func (h *PlansHandler) HandleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var in service.TemplateInput
	if !decode(w, r, &in) {
		return
	}

	t, err := h.TemplateService.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, TemplateResponse{Template: t})
}

// HandleDeleteTemplate godoc
//
//	@Summary	Delete a template
//	@Tags		Templates
//	@Param		id	path	string	true	"Template id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/templates/{id} [delete].
func (h *PlansHandler) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.TemplateService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
