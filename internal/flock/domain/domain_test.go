package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInviteState(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := Invite{ExpiresAt: now.Add(time.Hour)}

	require.Equal(t, InvitePending, inv.State(now))
	require.Equal(t, InviteExpired, inv.State(now.Add(time.Hour)))

	accepted := now.Add(-time.Minute)
	inv.AcceptedAt = &accepted
	require.Equal(t, InviteAccepted, inv.State(now.Add(2*time.Hour)))
}

func TestFormFieldCheck(t *testing.T) {
	tests := []struct {
		field FormField
		value string
		ok    bool
	}{
		{FormField{Type: FieldText}, "", true},
		{FormField{Type: FieldText, Required: true}, "", false},
		{FormField{Type: FieldNumber}, "12.5", true},
		{FormField{Type: FieldNumber}, "twelve", false},
		{FormField{Type: FieldDate}, "2025-02-30", false},
		{FormField{Type: FieldDate}, "2025-02-28", true},
		{FormField{Type: FieldSelect, Options: []string{"S", "M", "L"}}, "M", true},
		{FormField{Type: FieldSelect, Options: []string{"S", "M", "L"}}, "XL", false},
	}

	for _, tt := range tests {
		err := tt.field.Check(tt.value)
		if tt.ok {
			require.NoError(t, err, "%+v %q", tt.field, tt.value)
		} else {
			require.Error(t, err, "%+v %q", tt.field, tt.value)
		}
	}
}

func TestJSONColumns(t *testing.T) {
	v, err := TemplateItems(nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)

	items := TemplateItems{{Kind: ItemSong, Title: "Opening", DurationSeconds: 240}}
	v, err = items.Value()
	require.NoError(t, err)

	var back TemplateItems
	require.NoError(t, back.Scan(v))
	require.Equal(t, items, back)

	var m StringMap
	require.NoError(t, m.Scan([]byte(`{"size":"M"}`)))
	require.Equal(t, "M", m["size"])

	var s StringSlice
	require.Error(t, s.Scan(42))
}

func TestPageNormalize(t *testing.T) {
	require.Equal(t, Page{Limit: DefaultPageSize}, Page{}.Normalize())
	require.Equal(t, Page{Limit: MaxPageSize, Offset: 0}, Page{Limit: 10_000, Offset: -5}.Normalize())
}

func TestTokenTTL(t *testing.T) {
	require.Equal(t, time.Hour, TokenPasswordReset.TTL())
	require.Equal(t, 24*time.Hour, TokenEmailVerification.TTL())
}
