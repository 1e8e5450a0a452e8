package flocksdk

import (
	"context"
	"net/http"
	"net/url"
)

// Administration - needs an admin session

func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Users []User `json:"users"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// CreateInvite invites an email into the organization. The code in the
// result is what the invitee registers with.
func (s *Session) CreateInvite(ctx context.Context, req CreateInviteRequest) (*CreatedInvite, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/v1/invites", req)
	if err != nil {
		return nil, err
	}

	var out struct {
		Invite CreatedInvite `json:"invite"`
	}
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Invite, nil
}

func (s *Session) RevokeInvite(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/invites/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

func (s *Session) Organization(ctx context.Context) (*Organization, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/organization", nil, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Organization Organization `json:"organization"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Organization, nil
}
