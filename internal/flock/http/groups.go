package http

import (
	"net/http"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
)

type GroupResponse struct {
	Group service.GroupDetail `json:"group"`
}

type GroupsResponse struct {
	Groups []domain.Group `json:"groups"`
}

type MemberResponse struct {
	Member domain.GroupMembership `json:"member"`
}

type AttendanceResponse struct {
	Attendance []domain.Attendance `json:"attendance"`
}

type TagResponse struct {
	Tag domain.Tag `json:"tag"`
}

type TagsResponse struct {
	Tags []domain.Tag `json:"tags"`
}

type GroupsHandler struct {
	GroupService *service.GroupService
}

// HandleList godoc
//
//	@Summary	List groups
//	@Tags		Groups
//	@Produce	json
//	@Param		limit	query		int	false	"Page size"
//	@Param		offset	query		int	false	"Offset"
//	@Success	200		{object}	GroupsResponse
//	@Security	SessionCookie
//	@Router		/api/v1/groups [get].
func (h *GroupsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := pageFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	groups, err := h.GroupService.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, GroupsResponse{Groups: groups})
}

// HandleGet godoc
//
//	@Summary	Get a group with its members
//	@Tags		Groups
//	@Produce	json
//	@Param		id	path		string	true	"Group id"
//	@Success	200	{object}	GroupResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/groups/{id} [get].
func (h *GroupsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	g, err := h.GroupService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, GroupResponse{Group: g})
}

// HandleCreate godoc
//
//	@Summary	Create a group
//	@Tags		Groups
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.GroupInput	true	"Group"
//	@Success	201		{object}	GroupResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse	"permission denied or plan limit reached"
//	@Security	SessionCookie
//	@Router		/api/v1/groups [post].
func (h *GroupsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.GroupInput
	if !decode(w, r, &in) {
		return
	}

	g, err := h.GroupService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, GroupResponse{Group: service.GroupDetail{Group: g, Members: []domain.GroupMembership{}}})
}

// HandleUpdate godoc
//
//	@Summary	Update a group
//	@Tags		Groups
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Group id"
//	@Param		request	body		service.GroupInput	true	"Group"
//	@Success	200		{object}	GroupResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/groups/{id} [patch].
func (h *GroupsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.GroupInput
	if !decode(w, r, &in) {
		return
	}

	if _, err := h.GroupService.Update(r.Context(), r.PathValue("id"), in); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := h.GroupService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, GroupResponse{Group: g})
}

// HandleDelete godoc
//
//	@Summary	Delete a group
//	@Tags		Groups
//	@Param		id	path	string	true	"Group id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/groups/{id} [delete].
func (h *GroupsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.GroupService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddMember godoc
//
//	@Summary		Add a person to a group
//	@Description	Adding an existing member updates their role.
//	@Tags			Groups
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Group id"
//	@Param			request	body		service.MemberInput	true	"Member"
//	@Success		200		{object}	MemberResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/groups/{id}/members [post].
func (h *GroupsHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	var in service.MemberInput
	if !decode(w, r, &in) {
		return
	}

	m, err := h.GroupService.AddMember(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MemberResponse{Member: m})
}

// HandleRemoveMember godoc
//
//	@Summary	Remove a person from a group
//	@Tags		Groups
//	@Param		id			path	string	true	"Group id"
//	@Param		personId	path	string	true	"Person id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/groups/{id}/members/{personId} [delete].
func (h *GroupsHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := h.GroupService.RemoveMember(r.Context(), r.PathValue("id"), r.PathValue("personId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRecordAttendance godoc
//
//	@Summary		Record attendance for a meeting
//	@Description	Every person must be a member of the group. Recording the same date again overwrites.
//	@Tags			Groups
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Group id"
//	@Param			request	body		service.AttendanceInput	true	"Attendance"
//	@Success		200		{object}	AttendanceResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/groups/{id}/attendance [post].
func (h *GroupsHandler) HandleRecordAttendance(w http.ResponseWriter, r *http.Request) {
	var in service.AttendanceInput
	if !decode(w, r, &in) {
		return
	}

	records, err := h.GroupService.RecordAttendance(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, AttendanceResponse{Attendance: records})
}

// HandleAttendance godoc
//
//	@Summary	Attendance for a meeting date
//	@Tags		Groups
//	@Produce	json
//	@Param		id		path		string	true	"Group id"
//	@Param		date	query		string	true	"Meeting date, YYYY-MM-DD"
//	@Success	200		{object}	AttendanceResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/groups/{id}/attendance [get].
func (h *GroupsHandler) HandleAttendance(w http.ResponseWriter, r *http.Request) {
	records, err := h.GroupService.Attendance(r.Context(), r.PathValue("id"), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, AttendanceResponse{Attendance: records})
}

type TagsHandler struct {
	TagService *service.TagService
}

// HandleList godoc
//
//	@Summary	List tags
//	@Tags		Tags
//	@Produce	json
//	@Success	200	{object}	TagsResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/tags [get].
func (h *TagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, TagsResponse{Tags: tags})
}

// HandleCreate godoc
//
//	@Summary	Create a tag
//	@Tags		Tags
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.TagInput	true	"Tag"
//	@Success	201		{object}	TagResponse
//	@Failure	400		{object}	ErrorResponse	"validation failed or name taken"
//	@Failure	403		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/tags [post].
func (h *TagsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.TagInput
	if !decode(w, r, &in) {
		return
	}

	t, err := h.TagService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, TagResponse{Tag: t})
}

// HandleUpdate godoc
//
//	@Summary	Update a tag
//	@Tags		Tags
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Tag id"
//	@Param		request	body		service.TagInput	true	"Tag"
//	@Success	200		{object}	TagResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/tags/{id} [patch].
func (h *TagsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.TagInput
	if !decode(w, r, &in) {
		return
	}

	t, err := h.TagService.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, TagResponse{Tag: t})
}

// HandleDelete godoc
//
//	@Summary	Delete a tag
//	@Tags		Tags
//	@Param		id	path	string	true	"Tag id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/tags/{id} [delete].
func (h *TagsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TagService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
