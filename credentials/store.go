package credentials

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/token"
	"github.com/stoneridge/go-marketplace-client/users"
)

// Store owns the persisted bytes of the current session: the token
// pair, the serialized principal, and the one-shot flash message. The
// durable backend survives a restart (a file on disk, a browser's
// localStorage); the session backend lives only as long as the process
// (sessionStorage), which is what makes the flash slot one-shot across
// a forced re-login.
type Store struct {
	durable Backend
	session Backend
	keys    Keys
}

// NewStore builds a Store over injected backends. Both backends are
// required so the Store never falls back to hidden process-wide state.
func NewStore(durable, session Backend, keys Keys) (*Store, error) {
	if durable == nil {
		return nil, errors.New("[NewStore] durable backend is required")
	}
	if session == nil {
		return nil, errors.New("[NewStore] session backend is required")
	}
	if keys.AccessToken == "" || keys.Principal == "" {
		return nil, errors.New("[NewStore] key namespace is incomplete")
	}
	return &Store{durable: durable, session: session, keys: keys}, nil
}

// Save persists the token pair and principal. The access token is
// required; a missing refresh token is not an error and leaves any
// previously stored refresh token in place, mirroring how the login
// views only wrote the refresh token when the server returned one.
func (s *Store) Save(tokens token.Pair, principal *users.User) {
	if !tokens.Valid() || principal == nil {
		return
	}
	raw, err := json.Marshal(principal)
	if err != nil {
		return
	}
	s.durable.Set(s.keys.AccessToken, tokens.AccessToken)
	if tokens.RefreshToken != "" {
		s.durable.Set(s.keys.RefreshToken, tokens.RefreshToken)
	}
	s.durable.Set(s.keys.Principal, string(raw))
}

// Load returns the stored token pair and principal. A session counts
// as present only when both the access token and a deserializable
// principal exist; a corrupted principal self-heals by clearing the
// authenticated entries so the next Load starts clean.
func (s *Store) Load() (token.Pair, *users.User, bool) {
	access, ok := s.durable.Get(s.keys.AccessToken)
	if !ok || access == "" {
		return token.Pair{}, nil, false
	}
	raw, ok := s.durable.Get(s.keys.Principal)
	if !ok || raw == "" {
		return token.Pair{}, nil, false
	}
	var principal users.User
	if err := json.Unmarshal([]byte(raw), &principal); err != nil {
		s.durable.Delete(s.keys.AccessToken)
		s.durable.Delete(s.keys.Principal)
		return token.Pair{}, nil, false
	}
	refresh, _ := s.durable.Get(s.keys.RefreshToken)
	return token.Pair{AccessToken: access, RefreshToken: refresh}, &principal, true
}

// AccessToken reads the current access token directly from storage so
// every outgoing request sees writes made by other tabs or a refresh.
func (s *Store) AccessToken() (string, bool) {
	v, ok := s.durable.Get(s.keys.AccessToken)
	return v, ok && v != ""
}

// RefreshToken reads the stored refresh token, if any.
func (s *Store) RefreshToken() (string, bool) {
	if s.keys.RefreshToken == "" {
		return "", false
	}
	v, ok := s.durable.Get(s.keys.RefreshToken)
	return v, ok && v != ""
}

// SetAccessToken rotates only the access token, as the refresh
// endpoint does; principal and refresh token are untouched.
func (s *Store) SetAccessToken(accessToken string) {
	if accessToken == "" {
		return
	}
	s.durable.Set(s.keys.AccessToken, accessToken)
}

// SetPrincipal replaces the cached principal after a profile update.
func (s *Store) SetPrincipal(principal *users.User) {
	if principal == nil {
		return
	}
	raw, err := json.Marshal(principal)
	if err != nil {
		return
	}
	s.durable.Set(s.keys.Principal, string(raw))
}

// Clear removes the access token, refresh token, and principal. Safe
// to call when already empty.
func (s *Store) Clear() {
	s.durable.Delete(s.keys.AccessToken)
	if s.keys.RefreshToken != "" {
		s.durable.Delete(s.keys.RefreshToken)
	}
	s.durable.Delete(s.keys.Principal)
}

// ClearAccess removes the access token and principal but deliberately
// leaves the refresh token behind, which is what lets the marketplace
// app re-login silently after a 401.
func (s *Store) ClearAccess() {
	s.durable.Delete(s.keys.AccessToken)
	s.durable.Delete(s.keys.Principal)
}

// SetFlash stores the single pending flash message. Apps without a
// flash slot drop the message.
func (s *Store) SetFlash(message string) {
	if s.keys.Flash == "" || message == "" {
		return
	}
	s.session.Set(s.keys.Flash, message)
}

// ConsumeFlash returns the pending flash message and removes it, so a
// second call in a row reports absence.
func (s *Store) ConsumeFlash() (string, bool) {
	if s.keys.Flash == "" {
		return "", false
	}
	msg, ok := s.session.Get(s.keys.Flash)
	if !ok || msg == "" {
		return "", false
	}
	s.session.Delete(s.keys.Flash)
	return msg, true
}
