package service

import (
	"context"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
)

type TemplateService struct {
	Deps
}

type TemplateInput struct {
	Name  string                `json:"name" validate:"required,max=120"`
	Items []domain.TemplateItem `json:"items" validate:"max=100,dive"`
}

func (s *TemplateService) List(ctx context.Context) ([]domain.ServiceTemplate, error) {
	a, err := authorize(ctx, domain.PermTemplatesRead)
	if err != nil {
		return nil, err
	}
	return s.Store.Templates().List(ctx, a.scope)
}

func (s *TemplateService) Get(ctx context.Context, id string) (domain.ServiceTemplate, error) {
	a, err := authorize(ctx, domain.PermTemplatesRead)
	if err != nil {
		return domain.ServiceTemplate{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.ServiceTemplate{}, err
	}
	t, err := s.Store.Templates().Get(ctx, a.scope, id)
	return t, notFound(err)
}

func (s *TemplateService) Create(ctx context.Context, in TemplateInput) (domain.ServiceTemplate, error) {
	a, err := authorize(ctx, domain.PermTemplatesWrite)
	if err != nil {
		return domain.ServiceTemplate{}, err
	}
	if err := check(in); err != nil {
		return domain.ServiceTemplate{}, err
	}

	now := s.now()
	t := domain.ServiceTemplate{
		ID:        idx.New().String(),
		OrgID:     a.scope.OrgID(),
		Name:      in.Name,
		Items:     in.Items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Templates().Create(ctx, a.scope, t); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityTemplate, t.ID, t)
	})
	return t, err
}

// SaveFromPlan captures a plan's current running order as a new template.
func (s *TemplateService) SaveFromPlan(ctx context.Context, planID, name string) (domain.ServiceTemplate, error) {
	a, err := authorize(ctx, domain.PermTemplatesWrite)
	if err != nil {
		return domain.ServiceTemplate{}, err
	}
	if name == "" {
		return domain.ServiceTemplate{}, invalid("name", "is required")
	}
	if planID, err = parseID(planID); err != nil {
		return domain.ServiceTemplate{}, err
	}

	now := s.now()
	t := domain.ServiceTemplate{
		ID:        idx.New().String(),
		OrgID:     a.scope.OrgID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.ServicePlans().Get(ctx, a.scope, planID); err != nil {
			return notFound(err)
		}
		items, err := tx.ServicePlans().Items(ctx, a.scope, planID)
		if err != nil {
			return err
		}
		t.Items = make(domain.TemplateItems, len(items))
		for i, it := range items {
			t.Items[i] = domain.TemplateItem{
				Kind:            it.Kind,
				Title:           it.Title,
				DurationSeconds: it.DurationSeconds,
				Notes:           it.Notes,
			}
		}
		if err := tx.Templates().Create(ctx, a.scope, t); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityTemplate, t.ID, t)
	})
	return t, err
}

func (s *TemplateService) Update(ctx context.Context, id string, in TemplateInput) (domain.ServiceTemplate, error) {
	a, err := authorize(ctx, domain.PermTemplatesWrite)
	if err != nil {
		return domain.ServiceTemplate{}, err
	}
	if err := check(in); err != nil {
		return domain.ServiceTemplate{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.ServiceTemplate{}, err
	}

	var out domain.ServiceTemplate
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.Templates().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		t := old
		t.Name = in.Name
		t.Items = in.Items
		t.UpdatedAt = s.now()
		if err := tx.Templates().Update(ctx, a.scope, t); err != nil {
			return notFound(err)
		}
		out = t
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityTemplate, id, domain.Diff{Old: old, New: t})
	})
	return out, err
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermTemplatesWrite)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Templates().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.Templates().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityTemplate, id, t)
	})
}
