package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
)

func TestSongLibrary(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	leader := h.user(org, domain.RoleLeader, "lee@grace.test")
	viewer := h.user(org, domain.RoleViewer, "vi@grace.test")
	songs := &SongService{Deps: h.deps()}

	amazing, err := songs.Create(as(leader), SongInput{Title: "Amazing Grace", Artist: "John Newton", CCLINumber: "4755360", DefaultKey: "G", Tempo: 72})
	require.NoError(t, err)
	_, err = songs.Create(as(leader), SongInput{Title: "Cornerstone", Artist: "Hillsong", DefaultKey: "C"})
	require.NoError(t, err)

	t.Run("search by title, artist or ccli", func(t *testing.T) {
		got, err := songs.List(as(viewer), "grace", domain.Page{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, amazing.ID, got[0].ID)

		got, err = songs.List(as(viewer), "hillsong", domain.Page{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Cornerstone", got[0].Title)

		got, err = songs.List(as(viewer), "4755360", domain.Page{})
		require.NoError(t, err)
		require.Len(t, got, 1)

		all, err := songs.List(as(viewer), "", domain.Page{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := songs.Create(as(leader), SongInput{Title: "", CCLINumber: "abc"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "title")
		assert.Contains(t, verr.Fields, "ccliNumber")
	})

	t.Run("viewers only read", func(t *testing.T) {
		_, err := songs.Create(as(viewer), SongInput{Title: "Be Thou My Vision"})
		require.ErrorIs(t, err, ErrPermissionDenied)
		require.ErrorIs(t, songs.Delete(as(viewer), amazing.ID), ErrPermissionDenied)
	})

	t.Run("update and delete", func(t *testing.T) {
		updated, err := songs.Update(as(leader), amazing.ID, SongInput{Title: "Amazing Grace (My Chains Are Gone)", DefaultKey: "F", Tempo: 68})
		require.NoError(t, err)
		assert.Equal(t, "F", updated.DefaultKey)

		got, err := songs.Get(as(viewer), amazing.ID)
		require.NoError(t, err)
		assert.Equal(t, updated.Title, got.Title)

		require.NoError(t, songs.Delete(as(leader), amazing.ID))
		_, err = songs.Get(as(viewer), amazing.ID)
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, songs.Delete(as(leader), amazing.ID), ErrNotFound)
	})

	t.Run("other organizations see nothing", func(t *testing.T) {
		other := h.org("Open Door", domain.PlanLimits{})
		outsider := h.user(other, domain.RoleAdmin, "out@door.test")

		got, err := songs.List(as(outsider), "", domain.Page{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	actions := map[domain.AuditAction]int{}
	for _, row := range h.auditRows(org) {
		if row.EntityType == domain.EntitySong {
			actions[row.Action]++
		}
	}
	assert.Equal(t, map[domain.AuditAction]int{
		domain.AuditCreated: 2,
		domain.AuditUpdated: 1,
		domain.AuditDeleted: 1,
	}, actions)
}
