package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type backupCodesRepo struct {
	db sqlx.ExtContext
}

func (r *backupCodesRepo) Replace(ctx context.Context, userID string, hashes []string, now time.Time) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM backup_codes WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, h := range hashes {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO backup_codes (user_id, code_hash, created_at) VALUES (?, ?, ?)`, userID, h, now); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *backupCodesRepo) Consume(ctx context.Context, userID, hash string) (bool, error) {
	n, err := affected(r.db.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE user_id = ? AND code_hash = ?`, userID, hash))
	return n == 1, err
}

func (r *backupCodesRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM backup_codes WHERE user_id = ?`, userID)
	return n, err
}

func (r *backupCodesRepo) DeleteForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM backup_codes WHERE user_id = ?`, userID)
	return err
}
