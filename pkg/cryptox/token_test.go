package cryptox

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		token, err := GenerateToken(size)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		require.Len(t, raw, size)

		token2, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, token, token2, "tokens should be unique")
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := GenerateToken(size)
		require.Error(t, err)
	}
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(10)
	require.NoError(t, err)
	require.Len(t, code, 11) // ten chars and one dash
	require.Equal(t, byte('-'), code[5])

	for _, r := range strings.ReplaceAll(code, "-", "") {
		require.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q", r)
	}

	_, err = GenerateCode(0)
	require.Error(t, err)
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "K7QPXM2TZR", NormalizeCode("k7qpx-m2tzr"))
	require.Equal(t, "K7QPXM2TZR", NormalizeCode("K7QPX M2TZR"))
	require.Equal(t, FingerprintToken(NormalizeCode("abcde-fghij")), FingerprintToken(NormalizeCode("ABCDEFGHIJ")))
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("some-token")
	require.Len(t, fp, 43) // sha256 in unpadded base64url
	require.Equal(t, fp, FingerprintToken("some-token"))
	require.NotEqual(t, fp, FingerprintToken("some-token2"))
}
