package http

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// MaxImportBytes caps CSV uploads.
const MaxImportBytes = 5 << 20

type PersonResponse struct {
	Person domain.PersonDetail `json:"person"`
}

type PeopleResponse struct {
	People []domain.Person `json:"people"`
	Total  int             `json:"total"`
}

type NoteResponse struct {
	Note domain.PersonNote `json:"note"`
}

type NotesResponse struct {
	Notes []domain.PersonNote `json:"notes"`
}

type MergeResponse struct {
	Merge service.MergeResult `json:"merge"`
}

type ImportResponse struct {
	Import service.ImportReport `json:"import"`
}

type FieldResponse struct {
	Field domain.CustomField `json:"field"`
}

type FieldsResponse struct {
	Fields []domain.CustomField `json:"fields"`
}

type PeopleHandler struct {
	PeopleService *service.PeopleService
	FieldService  *service.FieldService
}

// HandleList godoc
//
//	@Summary	List people
//	@Tags		People
//	@Produce	json
//	@Param		q		query		string	false	"Name or email contains"
//	@Param		status	query		string	false	"active, inactive, visitor or member"
//	@Param		tagId	query		string	false	"Only people with this tag"
//	@Param		limit	query		int		false	"Page size"
//	@Param		offset	query		int		false	"Offset"
//	@Success	200		{object}	PeopleResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people [get].
func (h *PeopleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := pageFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	people, total, err := h.PeopleService.List(r.Context(), domain.PersonFilter{
		Query:  strings.TrimSpace(q.Get("q")),
		Status: domain.PersonStatus(q.Get("status")),
		TagID:  q.Get("tagId"),
		Page:   page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, PeopleResponse{People: people, Total: total})
}

// HandleGet godoc
//
//	@Summary	Get a person
//	@Tags		People
//	@Produce	json
//	@Param		id	path		string	true	"Person id"
//	@Success	200	{object}	PersonResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/{id} [get].
func (h *PeopleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.PeopleService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, PersonResponse{Person: p})
}

// HandleCreate godoc
//
//	@Summary		Create a person
//	@Description	Refused with 403 once the organization reaches its people limit. Active person_created workflows run in the same transaction.
//	@Tags			People
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.PersonInput	true	"Person"
//	@Success		201		{object}	PersonResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse	"permission denied or plan limit reached"
//	@Security		SessionCookie
//	@Router			/api/v1/people [post].
func (h *PeopleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.PersonInput
	if !decode(w, r, &in) {
		return
	}

	p, err := h.PeopleService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, PersonResponse{Person: p})
}

// HandleUpdate godoc
//
//	@Summary	Update a person
//	@Tags		People
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Person id"
//	@Param		request	body		service.PersonInput	true	"Person"
//	@Success	200		{object}	PersonResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/{id} [patch].
func (h *PeopleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.PersonInput
	if !decode(w, r, &in) {
		return
	}

	p, err := h.PeopleService.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, PersonResponse{Person: p})
}

// HandleDelete godoc
//
//	@Summary	Delete a person
//	@Tags		People
//	@Param		id	path	string	true	"Person id"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/{id} [delete].
func (h *PeopleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.PeopleService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMerge godoc
//
//	@Summary		Merge two people
//	@Description	Moves everything attached to the source onto the target, fills the target's empty fields, then deletes the source.
//	@Tags			People
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.MergeRequest	true	"Source and target"
//	@Success		200		{object}	MergeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/people/merge [post].
func (h *PeopleHandler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	var req service.MergeRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.PeopleService.Merge(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MergeResponse{Merge: res})
}

// HandleImport godoc
//
//	@Summary		Import people from CSV
//	@Description	Accepts the file as a multipart "file" field or as a text/csv body. Invalid rows are skipped and reported by row number.
//	@Tags			People
//	@Accept			text/csv
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	false	"CSV file"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/people/import [post].
func (h *PeopleHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportBytes)

	var src io.Reader = r.Body
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, &service.ValidationError{Fields: map[string]string{"file": "is required"}})
			return
		}
		defer file.Close()
		src = file
	}

	rep, err := h.PeopleService.Import(r.Context(), src)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ImportResponse{Import: rep})
}

// HandleExport godoc
//
//	@Summary	Export people as CSV
//	@Tags		People
//	@Produce	text/csv
//	@Success	200	{file}		file
//	@Failure	403	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/export [get].
func (h *PeopleHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	// buffered so a failure halfway through can still become a JSON error
	var buf bytes.Buffer
	if err := h.PeopleService.Export(r.Context(), &buf); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="people.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slogx.FromContext(r.Context()).Warn("export write failed", "error", err)
	}
}

// HandleNotes godoc
//
//	@Summary	List a person's notes
//	@Tags		People
//	@Produce	json
//	@Param		id	path		string	true	"Person id"
//	@Success	200	{object}	NotesResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/{id}/notes [get].
func (h *PeopleHandler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.PeopleService.Notes(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, NotesResponse{Notes: notes})
}

// HandleAddNote godoc
//
//	@Summary	Add a note to a person
//	@Tags		People
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Person id"
//	@Param		request	body		service.NoteInput	true	"Note"
//	@Success	201		{object}	NoteResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/{id}/notes [post].
func (h *PeopleHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	var in service.NoteInput
	if !decode(w, r, &in) {
		return
	}

	n, err := h.PeopleService.AddNote(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, NoteResponse{Note: n})
}

// HandleDeleteNote godoc
//
//	@Summary	Delete a note
//	@Tags		People
//	@Param		id		path	string	true	"Person id"
//	@Param		noteId	path	string	true	"Note id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/{id}/notes/{noteId} [delete].
func (h *PeopleHandler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.PeopleService.DeleteNote(r.Context(), r.PathValue("id"), r.PathValue("noteId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddTag godoc
//
//	@Summary	Tag a person
//	@Tags		People
//	@Param		id		path	string	true	"Person id"
//	@Param		tagId	path	string	true	"Tag id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/{id}/tags/{tagId} [put].
func (h *PeopleHandler) HandleAddTag(w http.ResponseWriter, r *http.Request) {
	if err := h.PeopleService.AddTag(r.Context(), r.PathValue("id"), r.PathValue("tagId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveTag godoc
//
//	@Summary	Untag a person
//	@Tags		People
//	@Param		id		path	string	true	"Person id"
//	@Param		tagId	path	string	true	"Tag id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/people/{id}/tags/{tagId} [delete].
func (h *PeopleHandler) HandleRemoveTag(w http.ResponseWriter, r *http.Request) {
	if err := h.PeopleService.RemoveTag(r.Context(), r.PathValue("id"), r.PathValue("tagId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetFieldValue godoc
//
//	@Summary		Set a custom field value
//	@Description	An empty value clears the field.
//	@Tags			People
//	@Accept			json
//	@Param			id		path	string					true	"Person id"
//	@Param			fieldId	path	string					true	"Field id"
//	@Param			request	body	service.FieldValueInput	true	"Value"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/people/{id}/fields/{fieldId} [put].
func (h *PeopleHandler) HandleSetFieldValue(w http.ResponseWriter, r *http.Request) {
	var in service.FieldValueInput
	if !decode(w, r, &in) {
		return
	}

	if err := h.PeopleService.SetFieldValue(r.Context(), r.PathValue("id"), r.PathValue("fieldId"), in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListFields godoc
//
//	@Summary	List custom field definitions
//	@Tags		Fields
//	@Produce	json
//	@Success	200	{object}	FieldsResponse
//	@Security	SessionCookie
//	@Router		/api/v1/fields [get].
func (h *PeopleHandler) HandleListFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.FieldService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, FieldsResponse{Fields: fields})
}

// HandleCreateField godoc
//
//	@Summary	Define a custom field
//	@Tags		Fields
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.FieldInput	true	"Field"
//	@Success	201		{object}	FieldResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/fields [post].
func (h *PeopleHandler) HandleCreateField(w http.ResponseWriter, r *http.Request) {
	var in service.FieldInput
	if !decode(w, r, &in) {
		return
	}

	f, err := h.FieldService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, FieldResponse{Field: f})
}

// HandleDeleteField godoc
//
//	@Summary	Delete a custom field and its values
//	@Tags		Fields
//	@Param		id	path	string	true	"Field id"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/fields/{id} [delete].
func (h *PeopleHandler) HandleDeleteField(w http.ResponseWriter, r *http.Request) {
	if err := h.FieldService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
