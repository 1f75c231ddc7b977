package admin

import (
	"context"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/gateway"
	"github.com/stoneridge/go-marketplace-client/marketplace"
	"github.com/stoneridge/go-marketplace-client/session"
	"github.com/stoneridge/go-marketplace-client/token"
	"github.com/stoneridge/go-marketplace-client/users"
)

// AuthService is the admin console's login surface. It shares the
// request/response shapes with the marketplace app but goes through
// /auth/admin-login and the AdminGate.
type AuthService struct {
	gw      *gateway.Client
	session *session.Controller
}

// Login authenticates against the admin endpoint. Valid credentials
// with a non-administrator role fail the gate locally: nothing is
// persisted and the returned message tells the user to contact an
// admin rather than retry their password.
func (s *AuthService) Login(ctx context.Context, req marketplace.LoginRequest) (*users.User, error) {
	generation := s.session.BeginLogin()

	var out marketplace.LoginResponse
	if err := s.gw.Post(ctx, "/auth/admin-login", req, &out); err != nil {
		return nil, errors.Wrap(err, "[admin.AuthService.Login]")
	}
	if err := s.session.CompleteLogin(generation, out.User, token.Pair{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout ends the admin session.
func (s *AuthService) Logout(ctx context.Context) {
	s.session.Logout(ctx)
}

func (s *AuthService) notifyLogout(ctx context.Context) error {
	return s.gw.Post(ctx, "/auth/logout", nil, nil)
}
