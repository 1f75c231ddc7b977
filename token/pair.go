package token

// Pair holds the bearer credentials issued at login. The access token
// is required on every authenticated call; the refresh token is only
// presented to the refresh endpoint to mint a new access token.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Valid reports whether the pair can authenticate a session. Only the
// access token is mandatory; a missing refresh token just means the
// session cannot be silently renewed.
func (p Pair) Valid() bool {
	return p.AccessToken != ""
}
