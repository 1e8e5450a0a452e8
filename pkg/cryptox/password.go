package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. Changing them only affects new hashes, the
// parameters of old hashes are read back out of the PHC string.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

// dummyHash is verified against when a login names an unknown account so the
// response time does not reveal whether the email exists.
var dummyHash = mustHash("flock-dummy-password")

// HashPassword returns a PHC-format Argon2id hash of password with a random
// salt and the install pepper mixed in.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	sum := argon2.IDKey([]byte(password+Pepper()), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// VerifyPassword reports whether password matches encodedHash. A malformed or
// empty hash never matches; it does not error or panic.
func VerifyPassword(encodedHash, password string) bool {
	mem, iters, par, salt, want, ok := parsePHC(encodedHash)
	if !ok {
		return false
	}

	got := argon2.IDKey([]byte(password+Pepper()), salt, iters, mem, par, uint32(len(want))) // #nosec G115
	return subtle.ConstantTimeCompare(got, want) == 1
}

// BurnVerify spends the same time as a real verification and always reports
// false. Use it when there is no stored hash to check against.
func BurnVerify(password string) bool {
	_ = VerifyPassword(dummyHash, password)
	return false
}

// parsePHC splits "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash".
func parsePHC(encoded string) (mem, iters uint32, par uint8, salt, sum []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, false
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return 0, 0, 0, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return 0, 0, 0, nil, nil, false
	}
	if mem == 0 || iters == 0 || par == 0 {
		return 0, 0, 0, nil, nil, false
	}

	var err error
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(salt) == 0 {
		return 0, 0, 0, nil, nil, false
	}
	if sum, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(sum) == 0 {
		return 0, 0, 0, nil, nil, false
	}
	return mem, iters, par, salt, sum, true
}

func mustHash(password string) string {
	h, err := HashPassword(password)
	if err != nil {
		panic(fmt.Sprintf("cryptox: %v", err))
	}
	return h
}
