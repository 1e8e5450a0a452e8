package flocksdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SessionCookie is the cookie the server keeps the session token in.
const SessionCookie = "flock_session"

// SDKClient is a client for the flock API. It provides the unauthenticated
// operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the server at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account. Without an invite code it bootstraps the
// first organization, which only works on an empty server.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", req)
	if err != nil {
		return nil, err
	}
	return c.sessionFrom(resp, http.StatusCreated)
}

// Login signs in with email and password, plus a TOTP or backup code when
// the account has two-factor authentication enabled.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", req)
	if err != nil {
		return nil, err
	}
	return c.sessionFrom(resp, http.StatusOK)
}

// NewSessionFromToken resumes a session from a token kept elsewhere.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// RequestPasswordReset mails a reset link if the email belongs to an active
// account. It succeeds either way.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/password-reset/request", map[string]string{"email": email})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusAccepted)
}

// ResetPassword sets a new password with a mailed reset token. Every session
// of the account is signed out.
func (c *SDKClient) ResetPassword(ctx context.Context, token, password string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/password-reset", map[string]string{
		"token":    token,
		"password": password,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// VerifyEmail confirms an email address with a mailed token.
func (c *SDKClient) VerifyEmail(ctx context.Context, token string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/verify-email", map[string]string{"token": token})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service and its dependencies are ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// sessionFrom turns a login or register response into a Session.
func (c *SDKClient) sessionFrom(resp *http.Response, expectedStatus int) (*Session, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := decodeJSON(resp, &out, expectedStatus); err != nil {
		return nil, err
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookie && ck.Value != "" {
			return &Session{client: c, token: ck.Value, user: out.User}, nil
		}
	}
	return nil, errNoSessionCookie
}
