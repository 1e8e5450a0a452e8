package flocksdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var errNoSessionCookie = errors.New("flocksdk: server did not set a session cookie")

// APIError is any non-2xx response from the server.
type APIError struct {
	StatusCode  int
	Message     string
	Fields      map[string]string // per field validation messages
	MFARequired bool              // login needs a TOTP or backup code
	RetryAfter  time.Duration     // set on 429
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("flock: %d: %s", e.StatusCode, e.Message)
	}

	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+" "+v)
	}
	return fmt.Sprintf("flock: %d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, ", "))
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether the resource does not exist in the caller's
// organization.
func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

// IsUnauthorized reports whether the session is missing or expired.
func IsUnauthorized(err error) bool { return statusOf(err) == http.StatusUnauthorized }

// IsForbidden reports a missing permission or a reached plan limit.
func IsForbidden(err error) bool { return statusOf(err) == http.StatusForbidden }

// IsPlanLimit reports whether a create was refused by the organization's plan.
func IsPlanLimit(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode == http.StatusForbidden &&
		strings.HasPrefix(apiErr.Message, "Plan limit reached")
}

// IsRateLimited reports a 429.
func IsRateLimited(err error) bool { return statusOf(err) == http.StatusTooManyRequests }

// parseErrorResponse turns a failed response into an *APIError. It returns
// nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		apiErr.RetryAfter = time.Duration(secs) * time.Second
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
		apiErr.Fields = errResp.Fields
		apiErr.MFARequired = errResp.MFARequired
		return apiErr
	}

	// Fallback: proxies and the csrf layer answer in plain text
	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
