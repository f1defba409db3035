package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RazanRezq/munjiz/internal/services"
)

func testIdentity() *services.Identity {
	return &services.Identity{
		ID:       "user-123",
		Email:    "user@example.com",
		Name:     "Test User",
		Verified: true,
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "munjiz"})
	require.NoError(t, err)

	token, err := svc.IssueSessionToken(testIdentity())
	require.NoError(t, err)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
	require.Equal(t, "munjiz", claims.Issuer)
}

func TestJWTRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", TTL: time.Minute, Clock: clock})
	require.NoError(t, err)

	token, err := svc.IssueSessionToken(testIdentity())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = svc.ValidateSessionToken(token)
	require.Error(t, err)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "secret-a"})
	require.NoError(t, err)
	verifier, err := NewJWTService(JWTConfig{Secret: "secret-b"})
	require.NoError(t, err)

	token, err := issuer.IssueSessionToken(testIdentity())
	require.NoError(t, err)

	_, err = verifier.ValidateSessionToken(token)
	require.Error(t, err)
}

func TestJWTRejectsWrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	verifier, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "munjiz"})
	require.NoError(t, err)

	token, err := issuer.IssueSessionToken(testIdentity())
	require.NoError(t, err)

	_, err = verifier.ValidateSessionToken(token)
	require.Error(t, err)
}

func TestJWTRejectsNilIdentity(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = svc.IssueSessionToken(nil)
	require.Error(t, err)
	_, err = svc.IssueSessionToken(&services.Identity{})
	require.Error(t, err)
}
