package flocksdk

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// ============================================================================
// People
// ============================================================================

func (s *Session) CreatePerson(ctx context.Context, in PersonInput) (*Person, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/v1/people", in)
	if err != nil {
		return nil, err
	}

	var out struct {
		Person Person `json:"person"`
	}
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Person, nil
}

func (s *Session) GetPerson(ctx context.Context, id string) (*Person, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/people/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Person Person `json:"person"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Person, nil
}

// UpdatePerson replaces the person's writable fields.
func (s *Session) UpdatePerson(ctx context.Context, id string, in PersonInput) (*Person, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPatch, "/api/v1/people/"+url.PathEscape(id), in)
	if err != nil {
		return nil, err
	}

	var out struct {
		Person Person `json:"person"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Person, nil
}

func (s *Session) DeletePerson(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/people/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// ListPeople returns one page of people and the total matching q.
func (s *Session) ListPeople(ctx context.Context, q PeopleQuery) (*PeopleList, error) {
	v := url.Values{}
	if q.Query != "" {
		v.Set("q", q.Query)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.TagID != "" {
		v.Set("tagId", q.TagID)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}

	path := "/api/v1/people"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out PeopleList
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// MergePeople folds source into target and deletes source.
func (s *Session) MergePeople(ctx context.Context, sourceID, targetID string) (*MergeResult, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/v1/people/merge", map[string]string{
		"sourceId": sourceID,
		"targetId": targetID,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Merge MergeResult `json:"merge"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Merge, nil
}

// ImportPeople uploads a CSV file. Rows that fail are reported, not fatal.
func (s *Session) ImportPeople(ctx context.Context, csv io.Reader) (*ImportReport, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "people.csv")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, csv); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/people/import", &body, map[string]string{
		"Content-Type": mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Import ImportReport `json:"import"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Import, nil
}

// ExportPeople writes every person in the organization to w as CSV.
func (s *Session) ExportPeople(ctx context.Context, w io.Writer) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/people/export", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return unexpected(resp, body)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

// ============================================================================
// Tags and groups
// ============================================================================

func (s *Session) CreateTag(ctx context.Context, name, color string) (*Tag, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/v1/tags", map[string]string{
		"name":  name,
		"color": color,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Tag Tag `json:"tag"`
	}
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Tag, nil
}

func (s *Session) TagPerson(ctx context.Context, personID, tagID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut,
		"/api/v1/people/"+url.PathEscape(personID)+"/tags/"+url.PathEscape(tagID), nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

func (s *Session) CreateGroup(ctx context.Context, in GroupInput) (*Group, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/v1/groups", in)
	if err != nil {
		return nil, err
	}

	var out struct {
		Group Group `json:"group"`
	}
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Group, nil
}

// AddGroupMember adds a person to a group. role is "leader" or "member".
func (s *Session) AddGroupMember(ctx context.Context, groupID, personID, role string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/v1/groups/"+url.PathEscape(groupID)+"/members", map[string]string{
		"personId": personID,
		"role":     role,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}
