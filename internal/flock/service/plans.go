package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// PlanService manages service plans: their running order and the team
// assigned to them.
type PlanService struct {
	Deps
}

type PlanInput struct {
	Title  string            `json:"title" validate:"required,max=200"`
	Date   string            `json:"date" validate:"required,datetime=2006-01-02"`
	Status domain.PlanStatus `json:"status" validate:"omitempty,oneof=draft published completed"`
	Notes  string            `json:"notes" validate:"max=5000"`

	// TemplateID seeds the running order on create.
	TemplateID string `json:"templateId,omitempty"`
}

type ItemInput struct {
	Kind            domain.ItemKind `json:"kind" validate:"required,oneof=song reading header other"`
	Title           string          `json:"title" validate:"required,max=200"`
	SongID          *string         `json:"songId"`
	DurationSeconds int             `json:"durationSeconds" validate:"gte=0,lte=86400"`
	Notes           string          `json:"notes" validate:"max=2000"`
}

type ReorderRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	NewIndex int    `json:"newIndex"`
}

type AssignInput struct {
	PersonID string `json:"personId" validate:"required"`
	Role     string `json:"role" validate:"required,max=60"`
}

type AssignmentStatusInput struct {
	Status domain.AssignmentStatus `json:"status" validate:"required,oneof=pending confirmed declined"`
}

func (s *PlanService) List(ctx context.Context, p domain.Page) ([]domain.ServicePlan, error) {
	a, err := authorize(ctx, domain.PermServicesRead)
	if err != nil {
		return nil, err
	}
	return s.Store.ServicePlans().List(ctx, a.scope, p.Normalize())
}

func (s *PlanService) Get(ctx context.Context, id string) (domain.ServicePlanDetail, error) {
	a, err := authorize(ctx, domain.PermServicesRead)
	if err != nil {
		return domain.ServicePlanDetail{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.ServicePlanDetail{}, err
	}
	return planDetail(ctx, s.Store, a.scope, id)
}

// planDetail loads a plan with its items and assignments using repos from r,
// which may be a Tx.
func planDetail(ctx context.Context, r store.Store, sc domain.Scope, id string) (domain.ServicePlanDetail, error) {
	p, err := r.ServicePlans().Get(ctx, sc, id)
	if err != nil {
		return domain.ServicePlanDetail{}, notFound(err)
	}
	items, err := r.ServicePlans().Items(ctx, sc, id)
	if err != nil {
		return domain.ServicePlanDetail{}, err
	}
	team, err := r.ServicePlans().Assignments(ctx, sc, id)
	if err != nil {
		return domain.ServicePlanDetail{}, err
	}
	return domain.ServicePlanDetail{ServicePlan: p, Items: items, Assignments: team}, nil
}

// Create adds a plan, counted against the plan limit, optionally seeding its
// items from a template.
func (s *PlanService) Create(ctx context.Context, in PlanInput) (domain.ServicePlanDetail, error) {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return domain.ServicePlanDetail{}, err
	}
	if err := check(in); err != nil {
		return domain.ServicePlanDetail{}, err
	}

	var templateID string
	if in.TemplateID != "" {
		if templateID, err = parseID(in.TemplateID); err != nil {
			return domain.ServicePlanDetail{}, invalid("templateId", "refers to an unknown template")
		}
	}

	now := s.now()
	p := domain.ServicePlan{
		ID:        idx.New().String(),
		OrgID:     a.scope.OrgID(),
		Title:     in.Title,
		Date:      in.Date,
		Status:    in.Status,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Status == "" {
		p.Status = domain.PlanDraft
	}

	var out domain.ServicePlanDetail
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.checkPlanLimit(ctx, tx, a.scope, domain.ResourceServicePlans); err != nil {
			return err
		}
		if err := tx.ServicePlans().Create(ctx, a.scope, p); err != nil {
			return err
		}
		if err := s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityServicePlan, p.ID, p); err != nil {
			return err
		}

		if templateID != "" {
			t, err := tx.Templates().Get(ctx, a.scope, templateID)
			if errors.Is(err, store.ErrNotFound) {
				return invalid("templateId", "refers to an unknown template")
			}
			if err != nil {
				return err
			}
			if err := appendTemplate(ctx, tx, a.scope, p.ID, 0, t, now); err != nil {
				return err
			}
		}

		out, err = planDetail(ctx, tx, a.scope, p.ID)
		return err
	})
	if err != nil {
		return domain.ServicePlanDetail{}, err
	}

	slogx.FromContext(ctx).Info("service plan created", slog.String("plan_id", p.ID))
	return out, nil
}

func (s *PlanService) Update(ctx context.Context, id string, in PlanInput) (domain.ServicePlan, error) {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return domain.ServicePlan{}, err
	}
	if err := check(in); err != nil {
		return domain.ServicePlan{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.ServicePlan{}, err
	}

	var out domain.ServicePlan
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.ServicePlans().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		p := old
		p.Title = in.Title
		p.Date = in.Date
		p.Notes = in.Notes
		if in.Status != "" {
			p.Status = in.Status
		}
		p.UpdatedAt = s.now()
		if err := tx.ServicePlans().Update(ctx, a.scope, p); err != nil {
			return notFound(err)
		}
		out = p
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityServicePlan, id, domain.Diff{Old: old, New: p})
	})
	return out, err
}

func (s *PlanService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermServicesDelete)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.ServicePlans().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.ServicePlans().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityServicePlan, id, p)
	})
}

// AddItem appends an item to the end of the running order.
func (s *PlanService) AddItem(ctx context.Context, planID string, in ItemInput) (domain.ServiceItem, error) {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return domain.ServiceItem{}, err
	}
	if err := check(in); err != nil {
		return domain.ServiceItem{}, err
	}
	if planID, err = parseID(planID); err != nil {
		return domain.ServiceItem{}, err
	}

	now := s.now()
	it := domain.ServiceItem{
		ID:              idx.New().String(),
		PlanID:          planID,
		Kind:            in.Kind,
		Title:           in.Title,
		DurationSeconds: in.DurationSeconds,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.ServicePlans().Get(ctx, a.scope, planID); err != nil {
			return notFound(err)
		}
		songID, err := checkSong(ctx, tx, a.scope, in.SongID)
		if err != nil {
			return err
		}
		it.SongID = songID

		items, err := tx.ServicePlans().Items(ctx, a.scope, planID)
		if err != nil {
			return err
		}
		it.Position = len(items)

		if err := tx.ServicePlans().CreateItem(ctx, a.scope, it); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityServiceItem, it.ID, it)
	})
	return it, err
}

func (s *PlanService) UpdateItem(ctx context.Context, planID, itemID string, in ItemInput) (domain.ServiceItem, error) {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return domain.ServiceItem{}, err
	}
	if err := check(in); err != nil {
		return domain.ServiceItem{}, err
	}
	if planID, err = parseID(planID); err != nil {
		return domain.ServiceItem{}, err
	}
	if itemID, err = parseID(itemID); err != nil {
		return domain.ServiceItem{}, err
	}

	var out domain.ServiceItem
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.ServicePlans().GetItem(ctx, a.scope, planID, itemID)
		if err != nil {
			return notFound(err)
		}
		songID, err := checkSong(ctx, tx, a.scope, in.SongID)
		if err != nil {
			return err
		}

		it := old
		it.Kind = in.Kind
		it.Title = in.Title
		it.SongID = songID
		it.DurationSeconds = in.DurationSeconds
		it.Notes = in.Notes
		it.UpdatedAt = s.now()
		if err := tx.ServicePlans().UpdateItem(ctx, a.scope, it); err != nil {
			return notFound(err)
		}
		out = it
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityServiceItem, itemID, domain.Diff{Old: old, New: it})
	})
	return out, err
}

// DeleteItem removes an item and closes the gap it leaves.
func (s *PlanService) DeleteItem(ctx context.Context, planID, itemID string) error {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return err
	}
	if planID, err = parseID(planID); err != nil {
		return err
	}
	if itemID, err = parseID(itemID); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		it, err := tx.ServicePlans().GetItem(ctx, a.scope, planID, itemID)
		if err != nil {
			return notFound(err)
		}
		if err := tx.ServicePlans().DeleteItem(ctx, a.scope, planID, itemID); err != nil {
			return notFound(err)
		}

		items, err := tx.ServicePlans().Items(ctx, a.scope, planID)
		if err != nil {
			return err
		}
		if err := tx.ServicePlans().SetPositions(ctx, a.scope, planID, itemIDs(items), s.now()); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityServiceItem, itemID, it)
	})
}

// Reorder moves one item to newIndex, clamped to the running order, and
// rewrites every position so they run 0..N-1.
func (s *PlanService) Reorder(ctx context.Context, planID string, req ReorderRequest) ([]domain.ServiceItem, error) {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return nil, err
	}
	if err := check(req); err != nil {
		return nil, err
	}
	if planID, err = parseID(planID); err != nil {
		return nil, err
	}
	itemID, err := parseID(req.ItemID)
	if err != nil {
		return nil, err
	}

	var out []domain.ServiceItem
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.ServicePlans().Get(ctx, a.scope, planID); err != nil {
			return notFound(err)
		}
		items, err := tx.ServicePlans().Items(ctx, a.scope, planID)
		if err != nil {
			return err
		}

		ids := itemIDs(items)
		from := -1
		for i, id := range ids {
			if id == itemID {
				from = i
				break
			}
		}
		if from < 0 {
			return ErrNotFound
		}

		ids = moveID(ids, from, req.NewIndex)
		if err := tx.ServicePlans().SetPositions(ctx, a.scope, planID, ids, s.now()); err != nil {
			return err
		}
		if err := s.audit(ctx, tx, a, domain.AuditReordered, domain.EntityServicePlan, planID, domain.Diff{
			Old: itemIDs(items),
			New: ids,
		}); err != nil {
			return err
		}

		out, err = tx.ServicePlans().Items(ctx, a.scope, planID)
		return err
	})
	return out, err
}

// moveID removes ids[from] and inserts it at to, clamped to the valid range.
func moveID(ids []string, from, to int) []string {
	moved := ids[from]
	rest := make([]string, 0, len(ids))
	rest = append(rest, ids[:from]...)
	rest = append(rest, ids[from+1:]...)

	to = max(0, min(to, len(rest)))

	out := make([]string, 0, len(ids))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}

// ApplyTemplate appends a template's items after the plan's current ones.
func (s *PlanService) ApplyTemplate(ctx context.Context, planID, templateID string) ([]domain.ServiceItem, error) {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return nil, err
	}
	if planID, err = parseID(planID); err != nil {
		return nil, err
	}
	if templateID, err = parseID(templateID); err != nil {
		return nil, err
	}

	var out []domain.ServiceItem
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.ServicePlans().Get(ctx, a.scope, planID); err != nil {
			return notFound(err)
		}
		t, err := tx.Templates().Get(ctx, a.scope, templateID)
		if err != nil {
			return notFound(err)
		}
		items, err := tx.ServicePlans().Items(ctx, a.scope, planID)
		if err != nil {
			return err
		}

		if err := appendTemplate(ctx, tx, a.scope, planID, len(items), t, s.now()); err != nil {
			return err
		}
		if err := s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityServicePlan, planID, map[string]any{
			"templateId": t.ID,
			"items":      len(t.Items),
		}); err != nil {
			return err
		}

		out, err = tx.ServicePlans().Items(ctx, a.scope, planID)
		return err
	})
	return out, err
}

func appendTemplate(ctx context.Context, tx store.Tx, sc domain.Scope, planID string, start int, t domain.ServiceTemplate, now time.Time) error {
	for i, ti := range t.Items {
		it := domain.ServiceItem{
			ID:              idx.New().String(),
			PlanID:          planID,
			Kind:            ti.Kind,
			Title:           ti.Title,
			DurationSeconds: ti.DurationSeconds,
			Notes:           ti.Notes,
			Position:        start + i,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.ServicePlans().CreateItem(ctx, sc, it); err != nil {
			return err
		}
	}
	return nil
}

// Assign puts a person on the plan's team in a role.
func (s *PlanService) Assign(ctx context.Context, planID string, in AssignInput) (domain.ServiceAssignment, error) {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return domain.ServiceAssignment{}, err
	}
	if err := check(in); err != nil {
		return domain.ServiceAssignment{}, err
	}
	if planID, err = parseID(planID); err != nil {
		return domain.ServiceAssignment{}, err
	}
	personID, err := parseID(in.PersonID)
	if err != nil {
		return domain.ServiceAssignment{}, err
	}

	now := s.now()
	as := domain.ServiceAssignment{
		ID:        idx.New().String(),
		PlanID:    planID,
		PersonID:  personID,
		Role:      in.Role,
		Status:    domain.AssignmentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.ServicePlans().Get(ctx, a.scope, planID); err != nil {
			return notFound(err)
		}
		if _, err := tx.People().Get(ctx, a.scope, personID); err != nil {
			return notFound(err)
		}
		if err := tx.ServicePlans().Assign(ctx, a.scope, as); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return conflict("That person is already assigned as %s.", in.Role)
			}
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityAssignment, as.ID, as)
	})
	return as, err
}

func (s *PlanService) UpdateAssignment(ctx context.Context, planID, id string, in AssignmentStatusInput) (domain.ServiceAssignment, error) {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return domain.ServiceAssignment{}, err
	}
	if err := check(in); err != nil {
		return domain.ServiceAssignment{}, err
	}
	if planID, err = parseID(planID); err != nil {
		return domain.ServiceAssignment{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.ServiceAssignment{}, err
	}

	var out domain.ServiceAssignment
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.ServicePlans().GetAssignment(ctx, a.scope, planID, id)
		if err != nil {
			return notFound(err)
		}
		now := s.now()
		if err := tx.ServicePlans().UpdateAssignmentStatus(ctx, a.scope, id, in.Status, now); err != nil {
			return notFound(err)
		}
		out = old
		out.Status = in.Status
		out.UpdatedAt = now
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityAssignment, id, domain.Diff{
			Old: map[string]any{"status": old.Status},
			New: map[string]any{"status": in.Status},
		})
	})
	return out, err
}

func (s *PlanService) Unassign(ctx context.Context, planID, id string) error {
	a, err := authorize(ctx, domain.PermServicesWrite)
	if err != nil {
		return err
	}
	if planID, err = parseID(planID); err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		as, err := tx.ServicePlans().GetAssignment(ctx, a.scope, planID, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.ServicePlans().DeleteAssignment(ctx, a.scope, planID, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityAssignment, id, as)
	})
}

// checkSong resolves an optional song reference in scope.
func checkSong(ctx context.Context, tx store.Tx, sc domain.Scope, songID *string) (*string, error) {
	if songID == nil || *songID == "" {
		return nil, nil
	}
	id, err := parseID(*songID)
	if err != nil {
		return nil, invalid("songId", "refers to an unknown song")
	}
	if _, err := tx.Songs().Get(ctx, sc, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalid("songId", "refers to an unknown song")
		}
		return nil, err
	}
	return &id, nil
}

func itemIDs(items []domain.ServiceItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
