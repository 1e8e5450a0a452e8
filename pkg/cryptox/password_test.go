package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")

			require.True(t, VerifyPassword(hash, tt.password))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPassword("samepassword")
	require.NoError(t, err)
	hash2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.True(t, VerifyPassword(hash1, "samepassword"))
	require.True(t, VerifyPassword(hash2, "samepassword"))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		"correct-passwor",
		strings.Repeat("x", 10000),
	} {
		require.False(t, VerifyPassword(hash, wrong), "%q should not verify", wrong)
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"zero cost", "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing version", "$argon2id$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"plain text", "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				require.False(t, VerifyPassword(tt.hash, "test-password"))
			})
		})
	}
}

func TestBurnVerify(t *testing.T) {
	require.False(t, BurnVerify("flock-dummy-password")) // even the dummy's own password
}

func TestLoadPepper(t *testing.T) {
	t.Cleanup(func() {
		pepperMu.Lock()
		pepper = ""
		pepperMu.Unlock()
	})

	file := filepath.Join(t.TempDir(), "keys", "pepper")

	// First call generates and persists
	require.NoError(t, LoadPepper(file))
	first := Pepper()
	require.NotEmpty(t, first)

	info, err := os.Stat(file)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Second call reads the same value back
	require.NoError(t, LoadPepper(file))
	require.Equal(t, first, Pepper())

	// Hashes made with a pepper don't verify without it
	hash, err := HashPassword("peppered")
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "peppered"))

	pepperMu.Lock()
	pepper = "something-else"
	pepperMu.Unlock()
	require.False(t, VerifyPassword(hash, "peppered"))
}

func TestLoadPepper_EmptyFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(file, []byte("  \n"), 0o600))
	require.Error(t, LoadPepper(file))
}
