package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunline-energie/offer-api/internal/config"
)

func testTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager(&config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 3600})

	token, expiresAt, err := m.Issue("admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	principal, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Subject)
	assert.Equal(t, "admin", principal.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := testTokenManager("secret-a", time.Hour)
	verifier := testTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue("admin", "admin")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := testTokenManager("test-secret", -time.Minute)

	token, _, err := m.Issue("admin", "admin")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := testTokenManager("test-secret", time.Hour)

	for _, input := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := m.Validate(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

func TestPrincipalContextRoundTrip(t *testing.T) {
	p := &Principal{Subject: "api-key", Role: "admin"}

	ctx := WithPrincipal(context.Background(), p)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
