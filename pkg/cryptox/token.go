package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// Token sizes in bytes before encoding.
const (
	TokenSize128 = 16
	TokenSize256 = 32
)

// codeAlphabet drops characters that are easy to misread when typed from a
// printed sheet of backup codes.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateToken returns size random bytes encoded as base64url without
// padding. Session cookies, invite codes and reset links all use this.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateCode returns a human friendly code of n characters split into
// groups of five, e.g. "K7QPX-M2TZR".
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", n)
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	var sb strings.Builder
	for i, b := range buf {
		if i > 0 && i%5 == 0 {
			sb.WriteByte('-')
		}
		// 256 is a multiple of 32 so the modulo is unbiased
		sb.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return sb.String(), nil
}

// NormalizeCode upper-cases a user typed code and strips separators so
// "k7qpx m2tzr" and "K7QPX-M2TZR" fingerprint the same.
func NormalizeCode(code string) string {
	code = strings.ToUpper(code)
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, code)
}

// FingerprintToken is the deterministic SHA-256 (base64url) of a token. Only
// fingerprints are stored, so a database leak does not hand out live tokens.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
