package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
)

type SongResponse struct {
	Song domain.Song `json:"song"`
}

type SongsResponse struct {
	Songs []domain.Song `json:"songs"`
}

type SongsHandler struct {
	SongService *service.SongService
}

// HandleList godoc
//
//	@Summary	List songs
//	@Tags		Songs
//	@Produce	json
//	@Param		q		query		string	false	"Title or artist contains"
//	@Param		limit	query		int		false	"Page size"
//	@Param		offset	query		int		false	"Offset"
//	@Success	200		{object}	SongsResponse
//	@Security	SessionCookie
//	@Router		/api/v1/songs [get].
func (h *SongsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := pageFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	songs, err := h.SongService.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, SongsResponse{Songs: songs})
}

// HandleGet godoc
//
//	@Summary	Get a song
//	@Tags		Songs
//	@Produce	json
//	@Param		id	path		string	true	"Song id"
//	@Success	200	{object}	SongResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/songs/{id} [get].
func (h *SongsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.SongService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, SongResponse{Song: s})
}

// HandleCreate godoc
//
//	@Summary	Add a song
//	@Tags		Songs
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.SongInput	true	"Song"
//	@Success	201		{object}	SongResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/songs [post].
func (h *SongsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.SongInput
	if !decode(w, r, &in) {
		return
	}

	s, err := h.SongService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, SongResponse{Song: s})
}

// HandleUpdate godoc
//
//	@Summary	Update a song
//	@Tags		Songs
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Song id"
//	@Param		request	body		service.SongInput	true	"Song"
//	@Success	200		{object}	SongResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/songs/{id} [patch].
func (h *SongsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.SongInput
	if !decode(w, r, &in) {
		return
	}

	s, err := h.SongService.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, SongResponse{Song: s})
}

// HandleDelete godoc
//
//	@Summary	Delete a song
//	@Tags		Songs
//	@Param		id	path	string	true	"Song id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/songs/{id} [delete].
func (h *SongsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.SongService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
