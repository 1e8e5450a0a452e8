package service

import (
	"context"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
)

type AuditService struct {
	Deps
}

// List returns audit rows newest first.
func (s *AuditService) List(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLog, error) {
	a, err := authorize(ctx, domain.PermAuditRead)
	if err != nil {
		return nil, err
	}
	f.Page = f.Page.Normalize()
	return s.Store.Audit().List(ctx, a.scope, f)
}
