package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type usersRepo struct {
	db sqlx.ExtContext
}

func (r *usersRepo) Create(ctx context.Context, s domain.Scope, u domain.User) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	u.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO users (id, org_id, email, name, role, password_hash, status, email_verified_at,
		                   mfa_secret, mfa_enabled_at, last_login_at, created_at, updated_at)
		VALUES (:id, :org_id, :email, :name, :role, :password_hash, :status, :email_verified_at,
		        :mfa_secret, :mfa_enabled_at, :last_login_at, :created_at, :updated_at)`, u)
	return mapConstraint(err)
}

func (r *usersRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.User, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.User{}, err
	}

	var u domain.User
	err = sqlx.GetContext(ctx, r.db, &u, `SELECT * FROM users WHERE id = ? AND org_id = ?`, id, orgID)
	return u, mapNotFound(err)
}

func (r *usersRepo) List(ctx context.Context, s domain.Scope) ([]domain.User, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	users := []domain.User{}
	err = sqlx.SelectContext(ctx, r.db, &users,
		`SELECT * FROM users WHERE org_id = ? AND status != 'deleted' ORDER BY name, email`, orgID)
	return users, err
}

func (r *usersRepo) CountActiveAdmins(ctx context.Context, s domain.Scope) (int, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return 0, err
	}

	var n int
	err = sqlx.GetContext(ctx, r.db, &n,
		`SELECT COUNT(*) FROM users WHERE org_id = ? AND role = 'admin' AND status = 'active'`, orgID)
	return n, err
}

func (r *usersRepo) UpdateRole(ctx context.Context, s domain.Scope, id string, role domain.Role, now time.Time) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ? AND org_id = ?`, role, now, id, orgID))
}

func (r *usersRepo) UpdateStatus(ctx context.Context, s domain.Scope, id string, status domain.UserStatus, now time.Time) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET status = ?, updated_at = ? WHERE id = ? AND org_id = ?`, status, now, id, orgID))
}

func (r *usersRepo) Anonymize(ctx context.Context, s domain.Scope, id string, now time.Time) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, name = '', password_hash = '', status = 'deleted',
		    mfa_secret = NULL, mfa_enabled_at = NULL, updated_at = ?
		WHERE id = ? AND org_id = ?`,
		domain.AnonymizedEmail(id), now, id, orgID))
}

func (r *usersRepo) GetByEmailInScope(ctx context.Context, s domain.Scope, email string) (domain.User, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.User{}, err
	}

	var u domain.User
	err = sqlx.GetContext(ctx, r.db, &u,
		`SELECT * FROM users WHERE email = ? AND org_id = ?`, domain.NormalizeEmail(email), orgID)
	return u, mapNotFound(err)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := sqlx.GetContext(ctx, r.db, &u, `SELECT * FROM users WHERE id = ?`, id)
	return u, mapNotFound(err)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := sqlx.GetContext(ctx, r.db, &u, `SELECT * FROM users WHERE email = ?`, domain.NormalizeEmail(email))
	return u, mapNotFound(err)
}

func (r *usersRepo) UpdateName(ctx context.Context, id, name string, now time.Time) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, updated_at = ? WHERE id = ?`, name, now, id))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, now, id))
}

func (r *usersRepo) SetLastLogin(ctx context.Context, id string, now time.Time) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ? WHERE id = ?`, now, id))
}

func (r *usersRepo) MarkEmailVerified(ctx context.Context, id string, now time.Time) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET email_verified_at = ?, updated_at = ? WHERE id = ?`, now, now, id))
}

func (r *usersRepo) SetMFASecret(ctx context.Context, id, secret string, now time.Time) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_secret = ?, mfa_enabled_at = NULL, updated_at = ? WHERE id = ?`, secret, now, id))
}

func (r *usersRepo) EnableMFA(ctx context.Context, id string, now time.Time) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_enabled_at = ?, updated_at = ? WHERE id = ? AND mfa_secret IS NOT NULL`, now, now, id))
}

func (r *usersRepo) DisableMFA(ctx context.Context, id string, now time.Time) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_secret = NULL, mfa_enabled_at = NULL, updated_at = ? WHERE id = ?`, now, id))
}
