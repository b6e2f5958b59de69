package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "legalcheck/internal/jwt_token"
	"legalcheck/internal/platform/config"
)

func TestAccessTokenValidatesWithDevKey(t *testing.T) {
	var out bytes.Buffer
	userID := "550e8400-e29b-41d4-a716-446655440000"
	require.NoError(t, run([]string{"access", "-user-id", userID, "-json"}, &out))

	var got tokenOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "dev", got.Usage["signing_key"])

	svc := jwttoken.NewJWTService(config.DevSigningKey, defaultIssuer, defaultAudience, time.Minute)
	claims, err := svc.ValidateToken(got.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out))
	assert.Error(t, run([]string{"nope"}, &out))
	assert.Error(t, run([]string{"access", "-user-id", "not-a-uuid"}, &out))
	assert.NoError(t, run([]string{"help"}, &out))
}

func TestKeyCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"key"}, &out))
	assert.Len(t, bytes.TrimSpace(out.Bytes()), 43)
}
