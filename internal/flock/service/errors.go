package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
)

// Error kinds surfaced to callers. The HTTP layer maps each to a status code
// with errors.Is, so typed errors below unwrap to one of these.
var (
	ErrUnauthorized     = errors.New("authentication required")
	ErrPermissionDenied = errors.New("you do not have permission to do that")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrPlanLimit        = errors.New("plan limit reached")
	ErrConflict         = errors.New("conflict")
	ErrRateLimited      = errors.New("too many requests")
	ErrInvalidInvite    = errors.New("invalid or expired invite")
	ErrInvalidToken     = errors.New("invalid or expired token")
)

// ValidationError carries per field messages keyed by the JSON field path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// invalid builds a single field validation error.
func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// PlanLimitError reports which limit a create would have exceeded.
type PlanLimitError struct {
	Resource domain.LimitedResource
	Limit    int
}

func (e *PlanLimitError) Error() string {
	return fmt.Sprintf("Plan limit reached: your plan allows %d %s. Upgrade to add more.", e.Limit, resourceLabel(e.Resource))
}

func (e *PlanLimitError) Unwrap() error { return ErrPlanLimit }

func resourceLabel(r domain.LimitedResource) string {
	switch r {
	case domain.ResourceServicePlans:
		return "service plans"
	default:
		return string(r)
	}
}

// ConflictError is a state conflict with a message meant for the user.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return ErrConflict }

func conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// RateLimitError is returned when a limiter refused the attempt.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// notFound folds the store's not found into the service one and leaves other
// errors alone.
func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
