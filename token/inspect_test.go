package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stoneridge/go-marketplace-client/token"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestExpiresAtReadsClaimWithoutVerification(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{"sub": "jane", "exp": exp.Unix()})

	got, ok := token.ExpiresAt(raw)
	require.True(t, ok)
	require.True(t, got.Equal(exp))
}

func TestExpiresAtAbsentClaim(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "jane"})

	_, ok := token.ExpiresAt(raw)
	require.False(t, ok)
}

func TestExpiresAtOpaqueToken(t *testing.T) {
	_, ok := token.ExpiresAt("not-a-jwt")
	require.False(t, ok)
}

func TestExpired(t *testing.T) {
	restore := token.NowTimeFunc
	defer func() { token.NowTimeFunc = restore }()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return now }

	past := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})
	future := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Minute).Unix()})
	noClaim := signedToken(t, jwt.MapClaims{"sub": "jane"})

	require.True(t, token.Expired(past))
	require.False(t, token.Expired(future))

	// Tokens the client cannot read are left for the server to judge.
	require.False(t, token.Expired(noClaim))
	require.False(t, token.Expired("opaque-session-id"))
	require.False(t, token.Expired(""))
}

func TestPairValid(t *testing.T) {
	require.False(t, token.Pair{}.Valid())
	require.False(t, token.Pair{RefreshToken: "r"}.Valid())
	require.True(t, token.Pair{AccessToken: "a"}.Valid())
}
