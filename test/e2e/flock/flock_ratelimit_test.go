package flock_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/flock/pkg/flocksdk"
)

// TestRateLimitLogin verifies the default login limit of 5 attempts per
// address and email.
func TestRateLimitLogin(t *testing.T) {
	client := flocksdk.NewSDKClient(setupFlockContainer(t, nil))
	ctx := t.Context()
	bootstrapAdmin(t, client)

	wrong := flocksdk.LoginRequest{Email: adminEmail, Password: "not the password"}
	for i := range 5 {
		_, err := client.Login(ctx, wrong)
		requireStatus(t, err, http.StatusUnauthorized)
		require.False(t, flocksdk.IsRateLimited(err), "attempt %d should not be limited", i+1)
	}

	// the correct password is refused too once the window is spent
	_, err := client.Login(ctx, flocksdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	requireStatus(t, err, http.StatusTooManyRequests)

	var apiErr *flocksdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Positive(t, apiErr.RetryAfter)
}

// TestRateLimitConfiguredFromEnvironment lowers the login limit and checks
// that another address-email pair keeps its own window.
func TestRateLimitConfiguredFromEnvironment(t *testing.T) {
	client := flocksdk.NewSDKClient(setupFlockContainer(t, map[string]string{
		"FLOCK_LOGIN_ATTEMPTS": "1",
		"FLOCK_LOGIN_WINDOW":   "10m",
	}))
	ctx := t.Context()
	bootstrapAdmin(t, client)

	_, err := client.Login(ctx, flocksdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)

	_, err = client.Login(ctx, flocksdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.True(t, flocksdk.IsRateLimited(err), "second login should be limited, got %v", err)

	_, err = client.Login(ctx, flocksdk.LoginRequest{Email: "nobody@grace.test", Password: adminPassword})
	requireStatus(t, err, http.StatusUnauthorized)
}

// TestRateLimitPasswordReset verifies the strict limit on the public
// password reset endpoint.
func TestRateLimitPasswordReset(t *testing.T) {
	client := flocksdk.NewSDKClient(setupFlockContainer(t, nil))
	ctx := t.Context()

	for i := range 5 {
		require.NoError(t, client.RequestPasswordReset(ctx, adminEmail), "request %d", i+1)
	}

	err := client.RequestPasswordReset(ctx, adminEmail)
	require.True(t, flocksdk.IsRateLimited(err), "sixth request should be limited, got %v", err)
}
