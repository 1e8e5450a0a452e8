package service

import (
	"context"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
)

type SongService struct {
	Deps
}

type SongInput struct {
	Title      string `json:"title" validate:"required,max=200"`
	Artist     string `json:"artist" validate:"max=200"`
	CCLINumber string `json:"ccliNumber" validate:"omitempty,numeric,max=20"`
	DefaultKey string `json:"defaultKey" validate:"max=8"`
	Tempo      int    `json:"tempo" validate:"gte=0,lte=400"`
	Lyrics     string `json:"lyrics" validate:"max=20000"`
}

func (in SongInput) apply(s *domain.Song) {
	s.Title = in.Title
	s.Artist = in.Artist
	s.CCLINumber = in.CCLINumber
	s.DefaultKey = in.DefaultKey
	s.Tempo = in.Tempo
	s.Lyrics = in.Lyrics
}

// List searches title and artist, or matches a CCLI number exactly.
func (s *SongService) List(ctx context.Context, query string, p domain.Page) ([]domain.Song, error) {
	a, err := authorize(ctx, domain.PermSongsRead)
	if err != nil {
		return nil, err
	}
	return s.Store.Songs().List(ctx, a.scope, query, p.Normalize())
}

func (s *SongService) Get(ctx context.Context, id string) (domain.Song, error) {
	a, err := authorize(ctx, domain.PermSongsRead)
	if err != nil {
		return domain.Song{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.Song{}, err
	}
	song, err := s.Store.Songs().Get(ctx, a.scope, id)
	return song, notFound(err)
}

func (s *SongService) Create(ctx context.Context, in SongInput) (domain.Song, error) {
	a, err := authorize(ctx, domain.PermSongsWrite)
	if err != nil {
		return domain.Song{}, err
	}
	if err := check(in); err != nil {
		return domain.Song{}, err
	}

	now := s.now()
	song := domain.Song{ID: idx.New().String(), OrgID: a.scope.OrgID(), CreatedAt: now, UpdatedAt: now}
	in.apply(&song)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Songs().Create(ctx, a.scope, song); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntitySong, song.ID, song)
	})
	return song, err
}

func (s *SongService) Update(ctx context.Context, id string, in SongInput) (domain.Song, error) {
	a, err := authorize(ctx, domain.PermSongsWrite)
	if err != nil {
		return domain.Song{}, err
	}
	if err := check(in); err != nil {
		return domain.Song{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.Song{}, err
	}

	var out domain.Song
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.Songs().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		song := old
		in.apply(&song)
		song.UpdatedAt = s.now()
		if err := tx.Songs().Update(ctx, a.scope, song); err != nil {
			return notFound(err)
		}
		out = song
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntitySong, id, domain.Diff{Old: old, New: song})
	})
	return out, err
}

// Delete removes a song; plan items that used it keep their title.
func (s *SongService) Delete(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermSongsDelete)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		song, err := tx.Songs().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if err := tx.Songs().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntitySong, id, song)
	})
}
