package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyAdmin(t *testing.T) {
	mgr := NewManager("test-secret", 24*time.Hour)

	tok, err := mgr.Issue("admin@plantstore.local", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := mgr.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@plantstore.local", claims.Subject)
	assert.Equal(t, "admin@plantstore.local", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.True(t, claims.IsAdmin)
}

func TestIssueUserIsNotAdmin(t *testing.T) {
	mgr := NewManager("test-secret", 24*time.Hour)

	tok, err := mgr.Issue("ada@example.com", "user")
	require.NoError(t, err)

	claims, err := mgr.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
	assert.False(t, claims.IsAdmin)
}

func TestVerifyExpired(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)

	tok, err := mgr.Issue("ada@example.com", "user")
	require.NoError(t, err)

	_, err = mgr.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	tok, err := issuer.Issue("ada@example.com", "user")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	_, err := mgr.Verify("definitely.not.a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpirySpansConfiguredTTL(t *testing.T) {
	mgr := NewManager("test-secret", 24*time.Hour)

	tok, err := mgr.Issue("ada@example.com", "user")
	require.NoError(t, err)

	claims, err := mgr.Verify(tok)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 24*time.Hour, ttl)
}
