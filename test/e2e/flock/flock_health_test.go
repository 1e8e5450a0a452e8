package flock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/flock/pkg/flocksdk"
)

func TestHealthEndpoints(t *testing.T) {
	client := flocksdk.NewSDKClient(setupFlockContainer(t, nil))

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "e2e", live.Version)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks["database"])
}
