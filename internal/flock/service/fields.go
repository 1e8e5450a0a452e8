package service

import (
	"context"
	"errors"
	"slices"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
)

// FieldService manages the custom field definitions people can carry.
type FieldService struct {
	Deps
}

type FieldInput struct {
	Name    string           `json:"name" validate:"required,max=60"`
	Type    domain.FieldType `json:"type" validate:"required,oneof=text number date select"`
	Options []string         `json:"options" validate:"required_if=Type select,max=50,unique,dive,required,max=100"`
}

func (s *FieldService) List(ctx context.Context) ([]domain.CustomField, error) {
	a, err := authorize(ctx, domain.PermPeopleRead)
	if err != nil {
		return nil, err
	}
	return s.Store.CustomFields().List(ctx, a.scope)
}

func (s *FieldService) Create(ctx context.Context, in FieldInput) (domain.CustomField, error) {
	a, err := authorize(ctx, domain.PermOrgManage)
	if err != nil {
		return domain.CustomField{}, err
	}
	if err := check(in); err != nil {
		return domain.CustomField{}, err
	}

	f := domain.CustomField{
		ID:        idx.New().String(),
		OrgID:     a.scope.OrgID(),
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: s.now(),
	}
	// options only mean something for select fields
	if in.Type == domain.FieldSelect {
		f.Options = slices.Clone(in.Options)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.CustomFields().Create(ctx, a.scope, f); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return conflict("A field named %q already exists.", in.Name)
			}
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityCustomField, f.ID, f)
	})
	if err != nil {
		return domain.CustomField{}, err
	}
	return f, nil
}

// Delete removes a field definition together with every stored value.
func (s *FieldService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermOrgManage)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		f, err := tx.CustomFields().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.CustomFields().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityCustomField, id, f)
	})
}
