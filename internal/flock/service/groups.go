package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

type GroupService struct {
	Deps
}

type GroupInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	MeetingDay  string `json:"meetingDay" validate:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Location    string `json:"location" validate:"max=200"`
}

type MemberInput struct {
	PersonID string           `json:"personId" validate:"required"`
	Role     domain.GroupRole `json:"role" validate:"omitempty,oneof=leader member"`
}

type AttendanceInput struct {
	MeetingDate string             `json:"meetingDate" validate:"required,datetime=2006-01-02"`
	Records     []AttendanceRecord `json:"records" validate:"required,min=1,max=500,dive"`
}

type AttendanceRecord struct {
	PersonID string `json:"personId" validate:"required"`
	Present  bool   `json:"present"`
}

// GroupDetail is a group with its roster.
type GroupDetail struct {
	domain.Group
	Members []domain.GroupMembership `json:"members"`
}

func (s *GroupService) List(ctx context.Context, p domain.Page) ([]domain.Group, error) {
	a, err := authorize(ctx, domain.PermGroupsRead)
	if err != nil {
		return nil, err
	}
	return s.Store.Groups().List(ctx, a.scope, p.Normalize())
}

func (s *GroupService) Get(ctx context.Context, id string) (GroupDetail, error) {
	a, err := authorize(ctx, domain.PermGroupsRead)
	if err != nil {
		return GroupDetail{}, err
	}
	if id, err = parseID(id); err != nil {
		return GroupDetail{}, err
	}

	g, err := s.Store.Groups().Get(ctx, a.scope, id)
	if err != nil {
		return GroupDetail{}, notFound(err)
	}
	members, err := s.Store.Groups().Members(ctx, a.scope, id)
	if err != nil {
		return GroupDetail{}, err
	}
	return GroupDetail{Group: g, Members: members}, nil
}

// Create adds a group, counted against the plan.
func (s *GroupService) Create(ctx context.Context, in GroupInput) (domain.Group, error) {
	a, err := authorize(ctx, domain.PermGroupsWrite)
	if err != nil {
		return domain.Group{}, err
	}
	if err := check(in); err != nil {
		return domain.Group{}, err
	}

	now := s.now()
	g := domain.Group{
		ID:          idx.New().String(),
		OrgID:       a.scope.OrgID(),
		Name:        in.Name,
		Description: in.Description,
		MeetingDay:  in.MeetingDay,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.checkPlanLimit(ctx, tx, a.scope, domain.ResourceGroups); err != nil {
			return err
		}
		if err := tx.Groups().Create(ctx, a.scope, g); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityGroup, g.ID, g)
	})
	if err != nil {
		return domain.Group{}, err
	}

	slogx.FromContext(ctx).Info("group created", slog.String("group_id", g.ID))
	return g, nil
}

func (s *GroupService) Update(ctx context.Context, id string, in GroupInput) (domain.Group, error) {
	a, err := authorize(ctx, domain.PermGroupsWrite)
	if err != nil {
		return domain.Group{}, err
	}
	if err := check(in); err != nil {
		return domain.Group{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.Group{}, err
	}

	var out domain.Group
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.Groups().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		g := old
		g.Name = in.Name
		g.Description = in.Description
		g.MeetingDay = in.MeetingDay
		g.Location = in.Location
		g.UpdatedAt = s.now()
		if err := tx.Groups().Update(ctx, a.scope, g); err != nil {
			return notFound(err)
		}
		out = g
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityGroup, id, domain.Diff{Old: old, New: g})
	})
	return out, err
}

func (s *GroupService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermGroupsDelete)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		g, err := tx.Groups().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.Groups().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityGroup, id, g)
	})
}

// AddMember puts a person in a group or changes their role there.
func (s *GroupService) AddMember(ctx context.Context, groupID string, in MemberInput) (domain.GroupMembership, error) {
	a, err := authorize(ctx, domain.PermGroupsWrite)
	if err != nil {
		return domain.GroupMembership{}, err
	}
	if err := check(in); err != nil {
		return domain.GroupMembership{}, err
	}
	if groupID, err = parseID(groupID); err != nil {
		return domain.GroupMembership{}, err
	}
	personID, err := parseID(in.PersonID)
	if err != nil {
		return domain.GroupMembership{}, err
	}

	m := domain.GroupMembership{
		GroupID:  groupID,
		PersonID: personID,
		Role:     in.Role,
		JoinedAt: s.now(),
	}
	if m.Role == "" {
		m.Role = domain.GroupMember
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Groups().Get(ctx, a.scope, groupID); err != nil {
			return notFound(err)
		}
		if _, err := tx.People().Get(ctx, a.scope, personID); err != nil {
			return notFound(err)
		}
		if err := tx.Groups().AddMember(ctx, a.scope, m); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityGroup, groupID, domain.Diff{New: m})
	})
	return m, err
}

func (s *GroupService) RemoveMember(ctx context.Context, groupID, personID string) error {
	a, err := authorize(ctx, domain.PermGroupsWrite)
	if err != nil {
		return err
	}
	if groupID, err = parseID(groupID); err != nil {
		return err
	}
	if personID, err = parseID(personID); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Groups().RemoveMember(ctx, a.scope, groupID, personID); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityGroup, groupID, domain.Diff{
			Old: map[string]string{"personId": personID},
		})
	})
}

// RecordAttendance marks who was at one meeting. Only current members can
// be marked; recording twice overwrites.
func (s *GroupService) RecordAttendance(ctx context.Context, groupID string, in AttendanceInput) ([]domain.Attendance, error) {
	a, err := authorize(ctx, domain.PermGroupsWrite)
	if err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	if groupID, err = parseID(groupID); err != nil {
		return nil, err
	}

	var out []domain.Attendance
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Groups().Get(ctx, a.scope, groupID); err != nil {
			return notFound(err)
		}
		members, err := tx.Groups().Members(ctx, a.scope, groupID)
		if err != nil {
			return err
		}

		for i, rec := range in.Records {
			if !isMember(members, rec.PersonID) {
				return invalid(fieldIndex("records", i, "personId"), "is not a member of this group")
			}
			att := domain.Attendance{
				GroupID:     groupID,
				PersonID:    rec.PersonID,
				MeetingDate: in.MeetingDate,
				Present:     rec.Present,
			}
			if err := tx.Groups().RecordAttendance(ctx, a.scope, att); err != nil {
				return err
			}
		}
		if err := s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityGroup, groupID, map[string]any{
			"meetingDate": in.MeetingDate,
			"records":     len(in.Records),
		}); err != nil {
			return err
		}

		out, err = tx.Groups().Attendance(ctx, a.scope, groupID, in.MeetingDate)
		return err
	})
	return out, err
}

// Attendance lists recorded attendance, optionally for one meeting date.
func (s *GroupService) Attendance(ctx context.Context, groupID, meetingDate string) ([]domain.Attendance, error) {
	a, err := authorize(ctx, domain.PermGroupsRead)
	if err != nil {
		return nil, err
	}
	if groupID, err = parseID(groupID); err != nil {
		return nil, err
	}
	if _, err := s.Store.Groups().Get(ctx, a.scope, groupID); err != nil {
		return nil, notFound(err)
	}
	return s.Store.Groups().Attendance(ctx, a.scope, groupID, meetingDate)
}
