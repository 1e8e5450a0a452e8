package sqlite

import (
	"context"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type groupsRepo struct {
	db sqlx.ExtContext
}

func (r *groupsRepo) Create(ctx context.Context, s domain.Scope, g domain.Group) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	g.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO small_groups (id, org_id, name, description, meeting_day, location, created_at, updated_at)
		VALUES (:id, :org_id, :name, :description, :meeting_day, :location, :created_at, :updated_at)`, g)
	return mapConstraint(err)
}

func (r *groupsRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.Group, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Group{}, err
	}

	var g domain.Group
	err = sqlx.GetContext(ctx, r.db, &g, `SELECT * FROM small_groups WHERE id = ? AND org_id = ?`, id, orgID)
	return g, mapNotFound(err)
}

func (r *groupsRepo) List(ctx context.Context, s domain.Scope, p domain.Page) ([]domain.Group, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	p = p.Normalize()
	groups := []domain.Group{}
	err = sqlx.SelectContext(ctx, r.db, &groups,
		`SELECT * FROM small_groups WHERE org_id = ? ORDER BY name COLLATE NOCASE, id LIMIT ? OFFSET ?`,
		orgID, p.Limit, p.Offset)
	return groups, err
}

func (r *groupsRepo) Update(ctx context.Context, s domain.Scope, g domain.Group) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	g.OrgID = orgID

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE small_groups
		SET name = :name, description = :description, meeting_day = :meeting_day,
		    location = :location, updated_at = :updated_at
		WHERE id = :id AND org_id = :org_id`, g)
	return expectRow(res, err)
}

func (r *groupsRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM small_groups WHERE id = ? AND org_id = ?`, id, orgID))
}

func (r *groupsRepo) AddMember(ctx context.Context, s domain.Scope, m domain.GroupMembership) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO group_members (org_id, group_id, person_id, role, joined_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (group_id, person_id) DO UPDATE SET role = excluded.role`,
		orgID, m.GroupID, m.PersonID, m.Role, m.JoinedAt)
	return err
}

func (r *groupsRepo) RemoveMember(ctx context.Context, s domain.Scope, groupID, personID string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND person_id = ? AND org_id = ?`, groupID, personID, orgID))
}

func (r *groupsRepo) Members(ctx context.Context, s domain.Scope, groupID string) ([]domain.GroupMembership, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	members := []domain.GroupMembership{}
	err = sqlx.SelectContext(ctx, r.db, &members, `
		SELECT * FROM group_members WHERE group_id = ? AND org_id = ?
		ORDER BY CASE role WHEN 'leader' THEN 0 ELSE 1 END, joined_at`, groupID, orgID)
	return members, err
}

func (r *groupsRepo) RecordAttendance(ctx context.Context, s domain.Scope, a domain.Attendance) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO attendance (org_id, group_id, person_id, meeting_date, present) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (group_id, person_id, meeting_date) DO UPDATE SET present = excluded.present`,
		orgID, a.GroupID, a.PersonID, a.MeetingDate, a.Present)
	return err
}

func (r *groupsRepo) Attendance(ctx context.Context, s domain.Scope, groupID, meetingDate string) ([]domain.Attendance, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	query := `SELECT * FROM attendance WHERE group_id = ? AND org_id = ?`
	args := []any{groupID, orgID}
	if meetingDate != "" {
		query += ` AND meeting_date = ?`
		args = append(args, meetingDate)
	}
	query += ` ORDER BY meeting_date DESC, person_id`

	rows := []domain.Attendance{}
	err = sqlx.SelectContext(ctx, r.db, &rows, query, args...)
	return rows, err
}
