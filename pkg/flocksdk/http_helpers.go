package flocksdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the SDKClient's HTTP client.
// This is for unauthenticated requests (no session cookie).
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doJSON sends in as a JSON body without a session.
func (c *SDKClient) doJSON(ctx context.Context, method, path string, in any) (*http.Response, error) {
	body, err := encodeBody(in)
	if err != nil {
		return nil, err
	}
	return c.doRequest(ctx, method, path, body, jsonHeaders(in))
}

// doAuthRequest performs a request carrying the session cookie.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: s.Token()})
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doAuthJSON sends in as a JSON body within the session. A nil in sends no
// body.
func (s *Session) doAuthJSON(ctx context.Context, method, path string, in any) (*http.Response, error) {
	body, err := encodeBody(in)
	if err != nil {
		return nil, err
	}
	return s.doAuthRequest(ctx, method, path, body, jsonHeaders(in))
}

func encodeBody(in any) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(raw), nil
}

func jsonHeaders(in any) map[string]string {
	if in == nil {
		return nil
	}
	return map[string]string{"Content-Type": "application/json"}
}

// decodeJSON decodes a JSON response into the target interface.
// Returns an *APIError if the status is not expectedStatus.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	// Read body once for both error parsing and success decoding
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return unexpected(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatus drains the body and returns an *APIError unless the status
// is expectedStatus.
func checkStatus(resp *http.Response, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		return unexpected(resp, bodyBytes)
	}
	return nil
}

func unexpected(resp *http.Response, body []byte) error {
	if err := parseErrorResponse(resp, body); err != nil {
		return err
	}
	return &APIError{StatusCode: resp.StatusCode, Message: "unexpected status " + resp.Status}
}
