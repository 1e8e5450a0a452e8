package http

import (
	"net/http"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
)

type UsersResponse struct {
	Users []domain.User `json:"users"`
}

type InviteResponse struct {
	Invite service.CreatedInvite `json:"invite"`
}

type InvitesResponse struct {
	Invites []domain.Invite `json:"invites"`
}

type OrganizationResponse struct {
	Organization domain.Organization `json:"organization"`
}

type AuditResponse struct {
	AuditLogs []domain.AuditLog `json:"auditLogs"`
}

// AdminHandler serves user, invite, organization and audit administration.
// Every route requires users:manage, org:manage or audit:read; the services
// enforce that.
type AdminHandler struct {
	UserService   *service.UserService
	InviteService *service.InviteService
	OrgService    *service.OrgService
	AuditService  *service.AuditService
}

// HandleListUsers godoc
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	UsersResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// HandleUpdateRole godoc
//
//	@Summary		Change a user's role
//	@Description	Nobody changes their own role, and the last active admin cannot be demoted.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User id"
//	@Param			request	body		service.UpdateRoleRequest	true	"Role"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/users/{id}/role [patch].
func (h *AdminHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateRoleRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateRole(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: u})
}

// HandleUpdateStatus godoc
//
//	@Summary		Activate or deactivate a user
//	@Description	Deactivation signs the user out everywhere.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User id"
//	@Param			request	body		service.UpdateStatusRequest	true	"Status"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/users/{id}/status [patch].
func (h *AdminHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateStatusRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateStatus(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: u})
}

// HandleListInvites godoc
//
//	@Summary	List invites
//	@Tags		Invites
//	@Produce	json
//	@Success	200	{object}	InvitesResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/invites [get].
func (h *AdminHandler) HandleListInvites(w http.ResponseWriter, r *http.Request) {
	invites, err := h.InviteService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, InvitesResponse{Invites: invites})
}

// HandleCreateInvite godoc
//
//	@Summary		Invite someone
//	@Description	Emails a single use registration link. The code is also returned so it can be shared by hand.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.CreateInviteRequest	true	"Invite"
//	@Success		201		{object}	InviteResponse
//	@Failure		400		{object}	ErrorResponse	"validation failed or the email is taken"
//	@Failure		403		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/invites [post].
func (h *AdminHandler) HandleCreateInvite(w http.ResponseWriter, r *http.Request) {
	var req service.CreateInviteRequest
	if !decode(w, r, &req) {
		return
	}

	inv, err := h.InviteService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, InviteResponse{Invite: inv})
}

// HandleRevokeInvite godoc
//
//	@Summary	Revoke a pending invite
//	@Tags		Invites
//	@Param		id	path	string	true	"Invite id"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse	"already accepted"
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/invites/{id} [delete].
func (h *AdminHandler) HandleRevokeInvite(w http.ResponseWriter, r *http.Request) {
	if err := h.InviteService.Revoke(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetOrganization godoc
//
//	@Summary	Current organization
//	@Tags		Organization
//	@Produce	json
//	@Success	200	{object}	OrganizationResponse
//	@Failure	401	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/organization [get].
func (h *AdminHandler) HandleGetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.OrgService.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, OrganizationResponse{Organization: org})
}

// HandleUpdateOrganization godoc
//
//	@Summary	Rename the organization
//	@Tags		Organization
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.UpdateOrgRequest	true	"Organization"
//	@Success	200		{object}	OrganizationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/organization [patch].
func (h *AdminHandler) HandleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateOrgRequest
	if !decode(w, r, &req) {
		return
	}

	org, err := h.OrgService.Update(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, OrganizationResponse{Organization: org})
}

// HandleListAudit godoc
//
//	@Summary	Audit log
//	@Tags		Audit
//	@Produce	json
//	@Param		entityType	query		string	false	"Entity type, e.g. person"
//	@Param		entityId	query		string	false	"Entity id"
//	@Param		actorId		query		string	false	"Acting user id"
//	@Param		limit		query		int		false	"Page size"
//	@Param		offset		query		int		false	"Offset"
//	@Success	200			{object}	AuditResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	403			{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/audit [get].
func (h *AdminHandler) HandleListAudit(w http.ResponseWriter, r *http.Request) {
	page, err := pageFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	logs, err := h.AuditService.List(r.Context(), domain.AuditFilter{
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
		ActorID:    q.Get("actorId"),
		Page:       page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, AuditResponse{AuditLogs: logs})
}
