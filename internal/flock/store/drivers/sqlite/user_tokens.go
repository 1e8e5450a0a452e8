package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type userTokensRepo struct {
	db sqlx.ExtContext
}

func (r *userTokensRepo) Create(ctx context.Context, t domain.UserToken) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO user_tokens (id, kind, user_id, token_hash, expires_at, used_at, created_at)
		VALUES (:id, :kind, :user_id, :token_hash, :expires_at, :used_at, :created_at)`, t)
	return mapConstraint(err)
}

func (r *userTokensRepo) GetByHash(ctx context.Context, kind domain.TokenKind, hash string) (domain.UserToken, error) {
	var t domain.UserToken
	err := sqlx.GetContext(ctx, r.db, &t,
		`SELECT * FROM user_tokens WHERE kind = ? AND token_hash = ?`, kind, hash)
	return t, mapNotFound(err)
}

func (r *userTokensRepo) MarkUsed(ctx context.Context, id string, now time.Time) (bool, error) {
	n, err := affected(r.db.ExecContext(ctx,
		`UPDATE user_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL`, now, id))
	return n == 1, err
}

func (r *userTokensRepo) DeleteForUser(ctx context.Context, userID string, kind domain.TokenKind) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_tokens WHERE user_id = ? AND kind = ?`, userID, kind)
	return err
}

func (r *userTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return affected(r.db.ExecContext(ctx,
		`DELETE FROM user_tokens WHERE expires_at <= ? OR used_at IS NOT NULL`, now))
}
