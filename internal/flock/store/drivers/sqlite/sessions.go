package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type sessionsRepo struct {
	db sqlx.ExtContext
}

func (r *sessionsRepo) Create(ctx context.Context, sess domain.Session) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO sessions (id, user_id, org_id, expires_at, user_agent, ip_address, created_at)
		VALUES (:id, :user_id, :org_id, :expires_at, :user_agent, :ip_address, :created_at)`, sess)
	return mapConstraint(err)
}

func (r *sessionsRepo) Get(ctx context.Context, id string) (domain.Session, error) {
	var sess domain.Session
	err := sqlx.GetContext(ctx, r.db, &sess, `SELECT * FROM sessions WHERE id = ?`, id)
	return sess, mapNotFound(err)
}

func (r *sessionsRepo) ListForUser(ctx context.Context, userID string) ([]domain.Session, error) {
	sessions := []domain.Session{}
	err := sqlx.SelectContext(ctx, r.db, &sessions,
		`SELECT * FROM sessions WHERE user_id = ? ORDER BY created_at DESC`, userID)
	return sessions, err
}

func (r *sessionsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (r *sessionsRepo) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID))
}

func (r *sessionsRepo) DeleteForUserExcept(ctx context.Context, userID, keepID string) (int64, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ? AND id != ?`, userID, keepID))
}

func (r *sessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now))
}
