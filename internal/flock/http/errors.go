package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error       string            `json:"error"`
	Fields      map[string]string `json:"fields,omitempty"`
	MFARequired bool              `json:"mfaRequired,omitempty"`
}

// writeError maps a service error onto a status code and a message that is
// safe to show. Anything unrecognised is logged and reported as a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve  *service.ValidationError
		ple *service.PlanLimitError
		ce  *service.ConflictError
		rle *service.RateLimitError
	)

	switch {
	case errors.As(err, &ve):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: ve.Fields})
	case errors.Is(err, service.ErrValidation):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed"})
	case errors.Is(err, httpx.ErrMalformedBody):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})

	case errors.Is(err, service.ErrMFARequired):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Two-factor code required", MFARequired: true})
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})

	case errors.As(err, &ple):
		httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{Error: ple.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{Error: "Forbidden"})

	case errors.Is(err, service.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})

	case errors.As(err, &ce):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: ce.Message})
	case errors.Is(err, service.ErrConflict):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Conflict"})
	case errors.Is(err, service.ErrInvalidInvite):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired invite"})
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired token"})
	case errors.Is(err, service.ErrInvalidTOTPCode):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid two-factor code"})
	case errors.Is(err, service.ErrMFANotEnrolled), errors.Is(err, service.ErrMFANotEnabled), errors.Is(err, service.ErrMFAAlreadyEnabled):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.As(err, &rle):
		httpx.SetRetryAfter(w, rle.RetryAfter)
		httpx.WriteJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "Too many requests. Please try again later."})

	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
