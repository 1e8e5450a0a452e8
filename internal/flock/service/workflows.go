package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

type WorkflowService struct {
	Deps
}

type WorkflowInput struct {
	Name    string                 `json:"name" validate:"required,max=120"`
	Trigger domain.WorkflowTrigger `json:"trigger" validate:"required,oneof=manual person_created"`
	Active  bool                   `json:"active"`
	Steps   []domain.WorkflowStep  `json:"steps" validate:"required,min=1,max=20,dive"`
}

type RunWorkflowRequest struct {
	PersonID string `json:"personId" validate:"required"`
}

func (s *WorkflowService) List(ctx context.Context) ([]domain.Workflow, error) {
	a, err := authorize(ctx, domain.PermWorkflowsRead)
	if err != nil {
		return nil, err
	}
	return s.Store.Workflows().List(ctx, a.scope)
}

func (s *WorkflowService) Get(ctx context.Context, id string) (domain.Workflow, error) {
	a, err := authorize(ctx, domain.PermWorkflowsRead)
	if err != nil {
		return domain.Workflow{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.Workflow{}, err
	}
	w, err := s.Store.Workflows().Get(ctx, a.scope, id)
	return w, notFound(err)
}

func (s *WorkflowService) Create(ctx context.Context, in WorkflowInput) (domain.Workflow, error) {
	a, err := authorize(ctx, domain.PermWorkflowsWrite)
	if err != nil {
		return domain.Workflow{}, err
	}
	if err := check(in); err != nil {
		return domain.Workflow{}, err
	}

	now := s.now()
	w := domain.Workflow{
		ID:        idx.New().String(),
		OrgID:     a.scope.OrgID(),
		Name:      in.Name,
		Trigger:   in.Trigger,
		Active:    in.Active,
		Steps:     in.Steps,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := checkStepRefs(ctx, tx, a.scope, w.Steps); err != nil {
			return err
		}
		if err := tx.Workflows().Create(ctx, a.scope, w); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityWorkflow, w.ID, w)
	})
	return w, err
}

func (s *WorkflowService) Update(ctx context.Context, id string, in WorkflowInput) (domain.Workflow, error) {
	a, err := authorize(ctx, domain.PermWorkflowsWrite)
	if err != nil {
		return domain.Workflow{}, err
	}
	if err := check(in); err != nil {
		return domain.Workflow{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.Workflow{}, err
	}

	var out domain.Workflow
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.Workflows().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := checkStepRefs(ctx, tx, a.scope, in.Steps); err != nil {
			return err
		}

		w := old
		w.Name = in.Name
		w.Trigger = in.Trigger
		w.Active = in.Active
		w.Steps = in.Steps
		w.UpdatedAt = s.now()
		if err := tx.Workflows().Update(ctx, a.scope, w); err != nil {
			return notFound(err)
		}
		out = w
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityWorkflow, id, domain.Diff{Old: old, New: w})
	})
	return out, err
}

func (s *WorkflowService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermWorkflowsWrite)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		w, err := tx.Workflows().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.Workflows().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityWorkflow, id, w)
	})
}

// Run applies a workflow's steps to one person now, whatever its trigger.
func (s *WorkflowService) Run(ctx context.Context, id string, req RunWorkflowRequest) error {
	a, err := authorize(ctx, domain.PermWorkflowsRun)
	if err != nil {
		return err
	}
	if err := check(req); err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}
	personID, err := parseID(req.PersonID)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		w, err := tx.Workflows().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if _, err := tx.People().Get(ctx, a.scope, personID); err != nil {
			return notFound(err)
		}
		return runSteps(ctx, tx, s.Deps, a, w, personID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("workflow run",
		slog.String("workflow_id", id),
		slog.String("person_id", personID),
	)
	return nil
}

// runSteps applies w to personID inside tx. A step whose tag or group has
// since been deleted is skipped rather than failing the whole run.
func runSteps(ctx context.Context, tx store.Tx, d Deps, a actor, w domain.Workflow, personID string) error {
	log := slogx.FromContext(ctx).With(slog.String("workflow_id", w.ID))
	now := d.now()

	for i, step := range w.Steps {
		switch step.Action {
		case domain.StepAddTag:
			if _, err := tx.Tags().Get(ctx, a.scope, step.TagID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					log.Warn("workflow step skipped, tag missing", slog.Int("step", i))
					continue
				}
				return err
			}
			if err := tx.People().AddTag(ctx, a.scope, personID, step.TagID, now); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}

		case domain.StepAddNote:
			n := domain.PersonNote{
				ID:        idx.New().String(),
				PersonID:  personID,
				AuthorID:  a.id(),
				Body:      step.Note,
				CreatedAt: now,
			}
			if err := tx.People().AddNote(ctx, a.scope, n); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}

		case domain.StepAddToGroup:
			if _, err := tx.Groups().Get(ctx, a.scope, step.GroupID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					log.Warn("workflow step skipped, group missing", slog.Int("step", i))
					continue
				}
				return err
			}
			members, err := tx.Groups().Members(ctx, a.scope, step.GroupID)
			if err != nil {
				return err
			}
			if isMember(members, personID) {
				continue
			}
			m := domain.GroupMembership{GroupID: step.GroupID, PersonID: personID, Role: domain.GroupMember, JoinedAt: now}
			if err := tx.Groups().AddMember(ctx, a.scope, m); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}

	return d.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityPerson, personID, map[string]any{
		"workflowId": w.ID,
		"steps":      len(w.Steps),
	})
}

// checkStepRefs makes sure every tag and group a step names exists in scope.
func checkStepRefs(ctx context.Context, tx store.Tx, sc domain.Scope, steps []domain.WorkflowStep) error {
	for i, step := range steps {
		var err error
		switch step.Action {
		case domain.StepAddTag:
			_, err = tx.Tags().Get(ctx, sc, step.TagID)
		case domain.StepAddToGroup:
			_, err = tx.Groups().Get(ctx, sc, step.GroupID)
		}
		if errors.Is(err, store.ErrNotFound) {
			return invalid(fmt.Sprintf("steps[%d]", i), "refers to an unknown tag or group")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isMember(members []domain.GroupMembership, personID string) bool {
	for _, m := range members {
		if m.PersonID == personID {
			return true
		}
	}
	return false
}
