package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
)

type FormService struct {
	Deps
}

type FormInput struct {
	Name        string             `json:"name" validate:"required,max=120"`
	Description string             `json:"description" validate:"max=2000"`
	Fields      []domain.FormField `json:"fields" validate:"required,min=1,max=50,dive"`
	Published   bool               `json:"published"`
}

type SubmitRequest struct {
	PersonID string            `json:"personId,omitempty"`
	Data     map[string]string `json:"data" validate:"max=50"`
}

// checkFields catches what struct tags cannot: duplicate keys and select
// fields without options.
func (in FormInput) checkFields() error {
	fields := map[string]string{}
	seen := map[string]bool{}
	for i, f := range in.Fields {
		if seen[f.Key] {
			fields[fieldIndex("fields", i, "key")] = "must be unique within the form"
		}
		seen[f.Key] = true
		if f.Type == domain.FieldSelect && len(f.Options) == 0 {
			fields[fieldIndex("fields", i, "options")] = "is required for select fields"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *FormService) List(ctx context.Context) ([]domain.Form, error) {
	a, err := authorize(ctx, domain.PermFormsRead)
	if err != nil {
		return nil, err
	}
	return s.Store.Forms().List(ctx, a.scope)
}

func (s *FormService) Get(ctx context.Context, id string) (domain.Form, error) {
	a, err := authorize(ctx, domain.PermFormsRead)
	if err != nil {
		return domain.Form{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.Form{}, err
	}
	f, err := s.Store.Forms().Get(ctx, a.scope, id)
	return f, notFound(err)
}

func (s *FormService) Create(ctx context.Context, in FormInput) (domain.Form, error) {
	a, err := authorize(ctx, domain.PermFormsWrite)
	if err != nil {
		return domain.Form{}, err
	}
	if err := check(in); err != nil {
		return domain.Form{}, err
	}
	if err := in.checkFields(); err != nil {
		return domain.Form{}, err
	}

	now := s.now()
	f := domain.Form{
		ID:          idx.New().String(),
		OrgID:       a.scope.OrgID(),
		Name:        in.Name,
		Description: in.Description,
		Fields:      in.Fields,
		Published:   in.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Forms().Create(ctx, a.scope, f); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityForm, f.ID, f)
	})
	return f, err
}

func (s *FormService) Update(ctx context.Context, id string, in FormInput) (domain.Form, error) {
	a, err := authorize(ctx, domain.PermFormsWrite)
	if err != nil {
		return domain.Form{}, err
	}
	if err := check(in); err != nil {
		return domain.Form{}, err
	}
	if err := in.checkFields(); err != nil {
		return domain.Form{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.Form{}, err
	}

	var out domain.Form
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.Forms().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		f := old
		f.Name = in.Name
		f.Description = in.Description
		f.Fields = in.Fields
		f.Published = in.Published
		f.UpdatedAt = s.now()
		if err := tx.Forms().Update(ctx, a.scope, f); err != nil {
			return notFound(err)
		}
		out = f
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityForm, id, domain.Diff{Old: old, New: f})
	})
	return out, err
}

func (s *FormService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermFormsWrite)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		f, err := tx.Forms().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.Forms().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityForm, id, f)
	})
}

// Submit records a response to a published form. Each value is checked
// against its field; keys the form does not define are rejected.
func (s *FormService) Submit(ctx context.Context, formID string, req SubmitRequest) (domain.FormSubmission, error) {
	a, err := authorize(ctx, domain.PermFormsSubmit)
	if err != nil {
		return domain.FormSubmission{}, err
	}
	if err := check(req); err != nil {
		return domain.FormSubmission{}, err
	}
	if formID, err = parseID(formID); err != nil {
		return domain.FormSubmission{}, err
	}

	sub := domain.FormSubmission{
		ID:          idx.New().String(),
		FormID:      formID,
		SubmittedBy: a.id(),
		Data:        domain.StringMap{},
		CreatedAt:   s.now(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		f, err := tx.Forms().Get(ctx, a.scope, formID)
		if err != nil {
			return notFound(err)
		}
		// unpublished forms are invisible to submitters
		if !f.Published {
			return ErrNotFound
		}

		if err := checkSubmission(f, req.Data); err != nil {
			return err
		}
		for _, field := range f.Fields {
			if v, ok := req.Data[field.Key]; ok && v != "" {
				sub.Data[field.Key] = v
			}
		}

		if req.PersonID != "" {
			personID, err := parseID(req.PersonID)
			if err != nil {
				return invalid("personId", "refers to an unknown person")
			}
			if _, err := tx.People().Get(ctx, a.scope, personID); err != nil {
				return invalid("personId", "refers to an unknown person")
			}
			sub.PersonID = &personID
		}

		if err := tx.Forms().CreateSubmission(ctx, a.scope, sub); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntitySubmission, sub.ID, sub)
	})
	return sub, err
}

func checkSubmission(f domain.Form, data map[string]string) error {
	fields := map[string]string{}
	known := make(map[string]bool, len(f.Fields))
	for _, field := range f.Fields {
		known[field.Key] = true
		if err := field.Check(data[field.Key]); err != nil {
			fields[fmt.Sprintf("data.%s", field.Key)] = err.Error()
		}
	}
	for k := range data {
		if !known[k] {
			fields[fmt.Sprintf("data.%s", k)] = "is not a field of this form"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submissions lists a form's responses. Reading them takes forms:write.
func (s *FormService) Submissions(ctx context.Context, formID string) ([]domain.FormSubmission, error) {
	a, err := authorize(ctx, domain.PermFormsWrite)
	if err != nil {
		return nil, err
	}
	if formID, err = parseID(formID); err != nil {
		return nil, err
	}
	if _, err := s.Store.Forms().Get(ctx, a.scope, formID); err != nil {
		return nil, notFound(err)
	}
	return s.Store.Forms().Submissions(ctx, a.scope, formID)
}
