package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
)

type TagService struct {
	Deps
}

type TagInput struct {
	Name  string `json:"name" validate:"required,max=60"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	a, err := authorize(ctx, domain.PermTagsRead)
	if err != nil {
		return nil, err
	}
	return s.Store.Tags().List(ctx, a.scope)
}

// Create adds a tag. Names are unique per organization, ignoring case.
func (s *TagService) Create(ctx context.Context, in TagInput) (domain.Tag, error) {
	a, err := authorize(ctx, domain.PermTagsWrite)
	if err != nil {
		return domain.Tag{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return domain.Tag{}, err
	}

	t := domain.Tag{
		ID:        idx.New().String(),
		OrgID:     a.scope.OrgID(),
		Name:      in.Name,
		Color:     in.Color,
		CreatedAt: s.now(),
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tags().Create(ctx, a.scope, t); err != nil {
			return tagConflict(err, t.Name)
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityTag, t.ID, t)
	})
	return t, err
}

func (s *TagService) Update(ctx context.Context, id string, in TagInput) (domain.Tag, error) {
	a, err := authorize(ctx, domain.PermTagsWrite)
	if err != nil {
		return domain.Tag{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return domain.Tag{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.Tag{}, err
	}

	var out domain.Tag
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.Tags().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		t := old
		t.Name = in.Name
		t.Color = in.Color
		if err := tx.Tags().Update(ctx, a.scope, t); err != nil {
			return tagConflict(notFound(err), t.Name)
		}
		out = t
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityTag, id, domain.Diff{Old: old, New: t})
	})
	return out, err
}

// Delete removes a tag and, through the foreign key, every use of it.
func (s *TagService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermTagsWrite)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Tags().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.Tags().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityTag, id, t)
	})
}

// ensureTag returns the tag called name, creating it when missing.
func ensureTag(ctx context.Context, tx store.Tx, d Deps, a actor, name string) (domain.Tag, error) {
	t, err := tx.Tags().GetByName(ctx, a.scope, name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Tag{}, err
	}

	t = domain.Tag{ID: idx.New().String(), OrgID: a.scope.OrgID(), Name: name, CreatedAt: d.now()}
	if err := tx.Tags().Create(ctx, a.scope, t); err != nil {
		return domain.Tag{}, err
	}
	return t, d.audit(ctx, tx, a, domain.AuditCreated, domain.EntityTag, t.ID, t)
}

func tagConflict(err error, name string) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return conflict("A tag named %q already exists.", name)
	}
	return err
}
