package flock_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/flock/pkg/flocksdk"
)

/*
 * Container setup and shared helpers for the flock end-to-end tests. The
 * image is built once in TestMain and every test gets its own container,
 * so rate limit windows and databases never leak between tests.
 */

const (
	testImageName = "flock-e2e-test:latest"

	adminName     = "Pastor Jo"
	adminEmail    = "jo@grace.test"
	adminPassword = "correct horse battery"
	orgName       = "Grace Chapel"
)

func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building flock Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up flock Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"--build-arg", "VERSION=e2e",
		"-f", "../../../cmd/flock/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupFlockContainer starts flock with the default configuration plus env
// and returns the base URL. The container is terminated on test cleanup.
func setupFlockContainer(t *testing.T, env map[string]string) string {
	t.Helper()
	ctx := context.Background()

	containerEnv := map[string]string{
		"FLOCK_ENV":  "dev",
		"LOG_LEVEL":  "info",
		"LOG_FORMAT": "json",
	}
	maps.Copy(containerEnv, env)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          containerEnv,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// bootstrapAdmin registers the first organization and its admin.
func bootstrapAdmin(t *testing.T, client *flocksdk.SDKClient) *flocksdk.Session {
	t.Helper()

	session, err := client.Register(t.Context(), flocksdk.RegisterRequest{
		OrgName:  orgName,
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
	})
	require.NoError(t, err, "bootstrap registration should succeed")
	require.NotEmpty(t, session.Token())
	require.Equal(t, "admin", session.User().Role)
	return session
}

// requireStatus asserts err is an APIError with the given status code.
func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var apiErr *flocksdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected *flocksdk.APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Message)
}
