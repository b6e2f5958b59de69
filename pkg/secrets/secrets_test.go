package secrets

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "legalcheck/pkg/domain-errors"
)

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	require.NoError(t, err)
	b, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	require.NoError(t, VerifyPassword("correct horse", hash))

	err = VerifyPassword("wrong horse", hash)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHashPasswordRejects(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		_, err := HashPassword("short", bcrypt.MinCost)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
	t.Run("too long for bcrypt", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("x", 80), bcrypt.MinCost)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	err := VerifyPassword("whatever1", "not-a-hash")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
