package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// ExpiresAt reads the expiry claim from an access token without
// verifying its signature. Verification is the server's job; the
// client only peeks at the claim to decide whether a refresh is worth
// attempting before an expensive call such as a file upload.
func ExpiresAt(rawToken string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(rawToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired returns true only when the token carries a parseable expiry
// claim that is in the past. Opaque or malformed tokens are never
// reported expired; the server remains the authority on those.
func Expired(rawToken string) bool {
	exp, ok := ExpiresAt(rawToken)
	if !ok {
		return false
	}
	return NowTimeFunc().After(exp)
}
