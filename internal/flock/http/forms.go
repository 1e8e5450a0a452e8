package http

import (
	"net/http"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
)

type FormResponse struct {
	Form domain.Form `json:"form"`
}

type FormsResponse struct {
	Forms []domain.Form `json:"forms"`
}

type SubmissionResponse struct {
	Submission domain.FormSubmission `json:"submission"`
}

type SubmissionsResponse struct {
	Submissions []domain.FormSubmission `json:"submissions"`
}

type WorkflowResponse struct {
	Workflow domain.Workflow `json:"workflow"`
}

type WorkflowsResponse struct {
	Workflows []domain.Workflow `json:"workflows"`
}

type FormsHandler struct {
	FormService     *service.FormService
	WorkflowService *service.WorkflowService
}

// HandleList godoc
//
//	@Summary	List forms
//	@Tags		Forms
//	@Produce	json
//	@Success	200	{object}	FormsResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/forms [get].
func (h *FormsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	forms, err := h.FormService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, FormsResponse{Forms: forms})
}

// HandleGet godoc
//
//	@Summary	Get a form
//	@Tags		Forms
//	@Produce	json
//	@Param		id	path		string	true	"Form id"
//	@Success	200	{object}	FormResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/forms/{id} [get].
func (h *FormsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	f, err := h.FormService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, FormResponse{Form: f})
}

// HandleCreate godoc
//
//	@Summary	Create a form
//	@Tags		Forms
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.FormInput	true	"Form"
//	@Success	201		{object}	FormResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/forms [post].
func (h *FormsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.FormInput
	if !decode(w, r, &in) {
		return
	}

	f, err := h.FormService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, FormResponse{Form: f})
}

// HandleUpdate godoc
//
//	@Summary	Update a form
//	@Tags		Forms
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Form id"
//	@Param		request	body		service.FormInput	true	"Form"
//	@Success	200		{object}	FormResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/forms/{id} [patch].
func (h *FormsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.FormInput
	if !decode(w, r, &in) {
		return
	}

	f, err := h.FormService.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, FormResponse{Form: f})
}

// HandleDelete godoc
//
//	@Summary	Delete a form and its submissions
//	@Tags		Forms
//	@Param		id	path	string	true	"Form id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/forms/{id} [delete].
func (h *FormsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.FormService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmit godoc
//
//	@Summary		Submit a form
//	@Description	Values are checked against the form's field types. Unpublished forms are not found.
//	@Tags			Forms
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Form id"
//	@Param			request	body		service.SubmitRequest	true	"Answers keyed by field key"
//	@Success		201		{object}	SubmissionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/forms/{id}/submissions [post].
func (h *FormsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if !decode(w, r, &req) {
		return
	}

	sub, err := h.FormService.Submit(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, SubmissionResponse{Submission: sub})
}

// HandleSubmissions godoc
//
//	@Summary	List a form's submissions
//	@Tags		Forms
//	@Produce	json
//	@Param		id	path		string	true	"Form id"
//	@Success	200	{object}	SubmissionsResponse
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/forms/{id}/submissions [get].
func (h *FormsHandler) HandleSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.FormService.Submissions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, SubmissionsResponse{Submissions: subs})
}

// HandleListWorkflows godoc
//
//	@Summary	List workflows
//	@Tags		Workflows
//	@Produce	json
//	@Success	200	{object}	WorkflowsResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/workflows [get].
func (h *FormsHandler) HandleListWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.WorkflowService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, WorkflowsResponse{Workflows: workflows})
}

// HandleGetWorkflow godoc
//
//	@Summary	Get a workflow
//	@Tags		Workflows
//	@Produce	json
//	@Param		id	path		string	true	"Workflow id"
//	@Success	200	{object}	WorkflowResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/workflows/{id} [get].
func (h *FormsHandler) HandleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	wf, err := h.WorkflowService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, WorkflowResponse{Workflow: wf})
}

// HandleCreateWorkflow godoc
//
//	@Summary		Create a workflow
//	@Description	Steps are add_tag, add_note and add_to_group. Every referenced tag and group must exist.
//	@Tags			Workflows
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.WorkflowInput	true	"Workflow"
//	@Success		201		{object}	WorkflowResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/workflows [post].
func (h *FormsHandler) HandleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var in service.WorkflowInput
	if !decode(w, r, &in) {
		return
	}

	wf, err := h.WorkflowService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, WorkflowResponse{Workflow: wf})
}

// HandleUpdateWorkflow godoc
//
//	@Summary	Update a workflow
//	@Tags		Workflows
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Workflow id"
//	@Param		request	body		service.WorkflowInput	true	"Workflow"
//	@Success	200		{object}	WorkflowResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/workflows/{id} [patch].
func (h *FormsHandler) HandleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	var in service.WorkflowInput
	if !decode(w, r, &in) {
		return
	}

	wf, err := h.WorkflowService.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, WorkflowResponse{Workflow: wf})
}

// HandleDeleteWorkflow godoc
//
//	@Summary	Delete a workflow
//	@Tags		Workflows
//	@Param		id	path	string	true	"Workflow id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/workflows/{id} [delete].
func (h *FormsHandler) HandleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	if err := h.WorkflowService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRunWorkflow godoc
//
//	@Summary	Run a workflow for one person
//	@Tags		Workflows
//	@Accept		json
//	@Param		id		path	string						true	"Workflow id"
//	@Param		request	body	service.RunWorkflowRequest	true	"Person"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/workflows/{id}/run [post].
func (h *FormsHandler) HandleRunWorkflow(w http.ResponseWriter, r *http.Request) {
	var req service.RunWorkflowRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.WorkflowService.Run(r.Context(), r.PathValue("id"), req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
