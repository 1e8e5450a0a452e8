package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type songsRepo struct {
	db sqlx.ExtContext
}

func (r *songsRepo) Create(ctx context.Context, s domain.Scope, song domain.Song) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	song.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO songs (id, org_id, title, artist, ccli_number, default_key, tempo, lyrics, created_at, updated_at)
		VALUES (:id, :org_id, :title, :artist, :ccli_number, :default_key, :tempo, :lyrics, :created_at, :updated_at)`, song)
	return mapConstraint(err)
}

func (r *songsRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.Song, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Song{}, err
	}

	var song domain.Song
	err = sqlx.GetContext(ctx, r.db, &song, `SELECT * FROM songs WHERE id = ? AND org_id = ?`, id, orgID)
	return song, mapNotFound(err)
}

func (r *songsRepo) List(ctx context.Context, s domain.Scope, query string, p domain.Page) ([]domain.Song, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	stmt := `SELECT * FROM songs WHERE org_id = ?`
	args := []any{orgID}
	if q := strings.TrimSpace(query); q != "" {
		stmt += ` AND (title LIKE ? ESCAPE '\' OR artist LIKE ? ESCAPE '\' OR ccli_number = ?)`
		args = append(args, likePattern(q), likePattern(q), q)
	}
	p = p.Normalize()
	stmt += ` ORDER BY title COLLATE NOCASE, id LIMIT ? OFFSET ?`
	args = append(args, p.Limit, p.Offset)

	songs := []domain.Song{}
	err = sqlx.SelectContext(ctx, r.db, &songs, stmt, args...)
	return songs, err
}

func (r *songsRepo) Update(ctx context.Context, s domain.Scope, song domain.Song) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	song.OrgID = orgID

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE songs
		SET title = :title, artist = :artist, ccli_number = :ccli_number, default_key = :default_key,
		    tempo = :tempo, lyrics = :lyrics, updated_at = :updated_at
		WHERE id = :id AND org_id = :org_id`, song)
	return expectRow(res, err)
}

func (r *songsRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ? AND org_id = ?`, id, orgID))
}
