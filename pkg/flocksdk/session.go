package flocksdk

import (
	"context"
	"net/http"
	"sync"
)

// Session is a signed in user. It is safe for concurrent use.
type Session struct {
	client *SDKClient

	mu    sync.RWMutex
	token string
	user  User // as of sign in
}

// Token returns the opaque session token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the account as it was when the session was created.
// Use Me for the current state.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Logout ends the session on the server. The Session is unusable after.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	if err := checkStatus(resp, http.StatusNoContent); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

// Me returns the signed in user.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		User User `json:"user"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = out.User
	s.mu.Unlock()
	return &out.User, nil
}

// Sessions lists the user's live sessions; Current marks this one.
func (s *Session) Sessions(ctx context.Context) ([]SessionInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/auth/sessions", nil, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Sessions []SessionInfo `json:"sessions"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

// RevokeSession signs out one of the user's other sessions.
func (s *Session) RevokeSession(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/auth/sessions/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// ChangePassword sets a new password. Every other session is signed out.
func (s *Session) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/v1/auth/password", req)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
