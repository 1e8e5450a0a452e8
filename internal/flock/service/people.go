package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

type PeopleService struct {
	Deps
}

// PersonInput is the writable part of a person. A nil Contacts leaves the
// existing contact detail untouched on update.
type PersonInput struct {
	FirstName     string              `json:"firstName" validate:"required,max=100"`
	LastName      string              `json:"lastName" validate:"required,max=100"`
	PreferredName string              `json:"preferredName" validate:"omitempty,max=100"`
	Email         string              `json:"email" validate:"omitempty,email,max=254"`
	Phone         string              `json:"phone" validate:"omitempty,max=40"`
	BirthDate     string              `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender        string              `json:"gender" validate:"omitempty,max=40"`
	Status        domain.PersonStatus `json:"status" validate:"omitempty,oneof=active inactive visitor member"`
	Contacts      *domain.ContactSet  `json:"contacts" validate:"omitempty"`
}

func (in PersonInput) apply(p *domain.Person) {
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.LastName = strings.TrimSpace(in.LastName)
	p.PreferredName = in.PreferredName
	p.Email = domain.NormalizeEmail(in.Email)
	p.Phone = in.Phone
	p.BirthDate = in.BirthDate
	p.Gender = in.Gender
	if in.Status != "" {
		p.Status = in.Status
	}
	if p.Status == "" {
		p.Status = domain.PersonActive
	}
}

type NoteInput struct {
	Body string `json:"body" validate:"required,max=5000"`
}

type FieldValueInput struct {
	Value string `json:"value" validate:"max=1000"`
}

// List returns a page of people and the total matching the filter.
func (s *PeopleService) List(ctx context.Context, f domain.PersonFilter) ([]domain.Person, int, error) {
	a, err := authorize(ctx, domain.PermPeopleRead)
	if err != nil {
		return nil, 0, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, invalid("status", "must be one of: active inactive visitor member")
	}
	f.Page = f.Page.Normalize()
	return s.Store.People().List(ctx, a.scope, f)
}

func (s *PeopleService) Get(ctx context.Context, id string) (domain.PersonDetail, error) {
	a, err := authorize(ctx, domain.PermPeopleRead)
	if err != nil {
		return domain.PersonDetail{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.PersonDetail{}, err
	}
	d, err := s.Store.People().Detail(ctx, a.scope, id)
	return d, notFound(err)
}

// Create adds a person, counted against the plan, and runs the active
// person_created workflows in the same transaction.
func (s *PeopleService) Create(ctx context.Context, in PersonInput) (domain.PersonDetail, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorize
	a, err := authorize(ctx, domain.PermPeopleWrite)
	if err != nil {
		return domain.PersonDetail{}, err
	}

	// 2. Validate
	if err := check(in); err != nil {
		return domain.PersonDetail{}, err
	}

	now := s.now()
	p := domain.Person{ID: idx.New().String(), CreatedAt: now, UpdatedAt: now}
	in.apply(&p)

	// 3. Limit check, insert, audit and triggers in one transaction
	var out domain.PersonDetail
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.checkPlanLimit(ctx, tx, a.scope, domain.ResourcePeople); err != nil {
			return err
		}
		if err := tx.People().Create(ctx, a.scope, p); err != nil {
			return err
		}
		if in.Contacts != nil {
			if err := tx.People().ReplaceContacts(ctx, a.scope, p.ID, *in.Contacts); err != nil {
				return err
			}
		}
		if err := s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityPerson, p.ID, p); err != nil {
			return err
		}
		if err := s.trigger(ctx, tx, a, p.ID); err != nil {
			return err
		}

		out, err = tx.People().Detail(ctx, a.scope, p.ID)
		return err
	})
	if err != nil {
		return domain.PersonDetail{}, err
	}

	log.Info("person created", slog.String("person_id", p.ID))
	return out, nil
}

// trigger runs every active person_created workflow against personID.
func (s *PeopleService) trigger(ctx context.Context, tx store.Tx, a actor, personID string) error {
	flows, err := tx.Workflows().ListActive(ctx, a.scope, domain.TriggerPersonCreated)
	if err != nil {
		return err
	}
	for _, w := range flows {
		if err := runSteps(ctx, tx, s.Deps, a, w, personID); err != nil {
			return err
		}
	}
	return nil
}

func (s *PeopleService) Update(ctx context.Context, id string, in PersonInput) (domain.PersonDetail, error) {
	a, err := authorize(ctx, domain.PermPeopleWrite)
	if err != nil {
		return domain.PersonDetail{}, err
	}
	if err := check(in); err != nil {
		return domain.PersonDetail{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.PersonDetail{}, err
	}

	var out domain.PersonDetail
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.People().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}

		p := old
		in.apply(&p)
		p.UpdatedAt = s.now()
		if err := tx.People().Update(ctx, a.scope, p); err != nil {
			return notFound(err)
		}
		if in.Contacts != nil {
			if err := tx.People().ReplaceContacts(ctx, a.scope, id, *in.Contacts); err != nil {
				return err
			}
		}
		if err := s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityPerson, id, domain.Diff{Old: old, New: p}); err != nil {
			return err
		}

		out, err = tx.People().Detail(ctx, a.scope, id)
		return err
	})
	return out, err
}

func (s *PeopleService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermPeopleDelete)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.People().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.People().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityPerson, id, p)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("person deleted", slog.String("person_id", id))
	return nil
}

func (s *PeopleService) Notes(ctx context.Context, personID string) ([]domain.PersonNote, error) {
	a, err := authorize(ctx, domain.PermPeopleRead)
	if err != nil {
		return nil, err
	}
	if personID, err = parseID(personID); err != nil {
		return nil, err
	}
	if _, err := s.Store.People().Get(ctx, a.scope, personID); err != nil {
		return nil, notFound(err)
	}
	return s.Store.People().ListNotes(ctx, a.scope, personID)
}

func (s *PeopleService) AddNote(ctx context.Context, personID string, in NoteInput) (domain.PersonNote, error) {
	a, err := authorize(ctx, domain.PermPeopleWrite)
	if err != nil {
		return domain.PersonNote{}, err
	}
	if err := check(in); err != nil {
		return domain.PersonNote{}, err
	}
	if personID, err = parseID(personID); err != nil {
		return domain.PersonNote{}, err
	}

	n := domain.PersonNote{
		ID:        idx.New().String(),
		OrgID:     a.scope.OrgID(),
		PersonID:  personID,
		AuthorID:  a.id(),
		Body:      in.Body,
		CreatedAt: s.now(),
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.People().Get(ctx, a.scope, personID); err != nil {
			return notFound(err)
		}
		if err := tx.People().AddNote(ctx, a.scope, n); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityPersonNote, n.ID, n)
	})
	return n, err
}

func (s *PeopleService) DeleteNote(ctx context.Context, personID, noteID string) error {
	a, err := authorize(ctx, domain.PermPeopleWrite)
	if err != nil {
		return err
	}
	if personID, err = parseID(personID); err != nil {
		return err
	}
	if noteID, err = parseID(noteID); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.People().DeleteNote(ctx, a.scope, personID, noteID); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityPersonNote, noteID, map[string]string{"personId": personID})
	})
}

// AddTag tags a person. Tagging twice is not an error.
func (s *PeopleService) AddTag(ctx context.Context, personID, tagID string) error {
	return s.changeTag(ctx, personID, tagID, true)
}

func (s *PeopleService) RemoveTag(ctx context.Context, personID, tagID string) error {
	return s.changeTag(ctx, personID, tagID, false)
}

func (s *PeopleService) changeTag(ctx context.Context, personID, tagID string, add bool) error {
	a, err := authorize(ctx, domain.PermPeopleWrite)
	if err != nil {
		return err
	}
	if personID, err = parseID(personID); err != nil {
		return err
	}
	if tagID, err = parseID(tagID); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.People().Get(ctx, a.scope, personID)
		if err != nil {
			return notFound(err)
		}
		tag, err := tx.Tags().Get(ctx, a.scope, tagID)
		if err != nil {
			return notFound(err)
		}

		diff := domain.Diff{New: map[string]string{"tag": tag.Name}}
		if add {
			err = tx.People().AddTag(ctx, a.scope, personID, tagID, s.now())
		} else {
			err = tx.People().RemoveTag(ctx, a.scope, personID, tagID)
			diff = domain.Diff{Old: map[string]string{"tag": tag.Name}}
		}
		if err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityPerson, old.ID, diff)
	})
}

// SetFieldValue stores a custom field value after checking it against the
// field's type. An empty value clears it.
func (s *PeopleService) SetFieldValue(ctx context.Context, personID, fieldID string, in FieldValueInput) error {
	a, err := authorize(ctx, domain.PermPeopleWrite)
	if err != nil {
		return err
	}
	if err := check(in); err != nil {
		return err
	}
	if personID, err = parseID(personID); err != nil {
		return err
	}
	if fieldID, err = parseID(fieldID); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.People().Get(ctx, a.scope, personID); err != nil {
			return notFound(err)
		}
		field, err := tx.CustomFields().Get(ctx, a.scope, fieldID)
		if err != nil {
			return notFound(err)
		}

		def := domain.FormField{Type: field.Type, Options: field.Options}
		if err := def.Check(in.Value); err != nil {
			return invalid("value", err.Error())
		}

		if in.Value == "" {
			if err := tx.People().DeleteFieldValue(ctx, a.scope, personID, fieldID); err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		} else {
			v := domain.PersonFieldValue{PersonID: personID, FieldID: fieldID, Value: in.Value, UpdatedAt: s.now()}
			if err := tx.People().SetFieldValue(ctx, a.scope, v); err != nil {
				return err
			}
		}
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityPerson, personID, domain.Diff{
			New: map[string]string{field.Name: in.Value},
		})
	})
}
