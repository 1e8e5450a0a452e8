package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type invitesRepo struct {
	db sqlx.ExtContext
}

func (r *invitesRepo) Create(ctx context.Context, s domain.Scope, inv domain.Invite) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	inv.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO invites (id, org_id, email, role, code_hash, invited_by, expires_at, accepted_at, created_at)
		VALUES (:id, :org_id, :email, :role, :code_hash, :invited_by, :expires_at, :accepted_at, :created_at)`, inv)
	return mapConstraint(err)
}

func (r *invitesRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.Invite, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Invite{}, err
	}

	var inv domain.Invite
	err = sqlx.GetContext(ctx, r.db, &inv, `SELECT * FROM invites WHERE id = ? AND org_id = ?`, id, orgID)
	return inv, mapNotFound(err)
}

func (r *invitesRepo) List(ctx context.Context, s domain.Scope) ([]domain.Invite, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	invites := []domain.Invite{}
	err = sqlx.SelectContext(ctx, r.db, &invites,
		`SELECT * FROM invites WHERE org_id = ? ORDER BY created_at DESC`, orgID)
	return invites, err
}

func (r *invitesRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM invites WHERE id = ? AND org_id = ?`, id, orgID))
}

func (r *invitesRepo) HasPending(ctx context.Context, s domain.Scope, email string, now time.Time) (bool, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return false, err
	}

	var n int
	err = sqlx.GetContext(ctx, r.db, &n, `
		SELECT COUNT(*) FROM invites
		WHERE org_id = ? AND email = ? AND accepted_at IS NULL AND expires_at > ?`,
		orgID, domain.NormalizeEmail(email), now)
	return n > 0, err
}

func (r *invitesRepo) MarkAccepted(ctx context.Context, s domain.Scope, id string, now time.Time) (bool, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return false, err
	}

	n, err := affected(r.db.ExecContext(ctx,
		`UPDATE invites SET accepted_at = ? WHERE id = ? AND org_id = ? AND accepted_at IS NULL`, now, id, orgID))
	return n == 1, err
}

func (r *invitesRepo) GetByCodeHash(ctx context.Context, hash string) (domain.Invite, error) {
	var inv domain.Invite
	err := sqlx.GetContext(ctx, r.db, &inv, `SELECT * FROM invites WHERE code_hash = ?`, hash)
	return inv, mapNotFound(err)
}

func (r *invitesRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	// accepted invites stay as a record of who let whom in
	return affected(r.db.ExecContext(ctx,
		`DELETE FROM invites WHERE accepted_at IS NULL AND expires_at <= ?`, now))
}
