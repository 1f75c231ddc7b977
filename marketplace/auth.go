package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/gateway"
	xerrors "github.com/stoneridge/go-marketplace-client/internal/errors"
	"github.com/stoneridge/go-marketplace-client/session"
	"github.com/stoneridge/go-marketplace-client/token"
	"github.com/stoneridge/go-marketplace-client/users"
)

// refreshTokenHeader carries the refresh token on the refresh call;
// the endpoint takes it in a dedicated header, not the body.
const refreshTokenHeader = "Refresh-Token"

// AuthService covers the /auth endpoint group and drives the session
// controller through login and logout.
type AuthService struct {
	gw      *gateway.Client
	session *session.Controller
}

// Register creates a new account; the user still needs to verify
// their email before logging in.
func (s *AuthService) Register(ctx context.Context, req RegistrationRequest) (*RegistrationResponse, error) {
	var out RegistrationResponse
	if err := s.gw.Post(ctx, "/auth/register", req, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.Register]")
	}
	return &out, nil
}

// Login authenticates and, on success, persists the session and moves
// the controller to Authenticated. The attempt is tagged with a
// generation so a slow response that has been superseded by a newer
// attempt is discarded rather than adopted.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*users.User, error) {
	generation := s.session.BeginLogin()

	var out LoginResponse
	if err := s.gw.Post(ctx, "/auth/login", req, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.Login]")
	}
	if err := s.session.CompleteLogin(generation, out.User, token.Pair{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout ends the session: best-effort server notification, then an
// unconditional local wipe.
func (s *AuthService) Logout(ctx context.Context) {
	s.session.Logout(ctx)
}

// notifyLogout is the remote half of Logout, injected into the
// session controller so the controller stays free of HTTP concerns.
func (s *AuthService) notifyLogout(ctx context.Context) error {
	return s.gw.Post(ctx, "/auth/logout", nil, nil)
}

// LogoutAll revokes every session server-side, then clears locally.
func (s *AuthService) LogoutAll(ctx context.Context) error {
	err := s.gw.Post(ctx, "/auth/logout-all", nil, nil)
	s.session.Logout(ctx)
	if err != nil {
		return errors.Wrap(err, "[AuthService.LogoutAll]")
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new access token
// and rotates it into the store. Only the access token changes.
func (s *AuthService) Refresh(ctx context.Context) (string, error) {
	refresh, ok := s.gw.Store().RefreshToken()
	if !ok {
		return "", xerrors.ErrNoRefreshToken
	}

	var out RefreshTokenResponse
	err := s.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh-token",
		Header: http.Header{refreshTokenHeader: []string{refresh}},
	}, &out)
	if err != nil {
		return "", errors.Wrap(err, "[AuthService.Refresh]")
	}
	if out.AccessToken == "" {
		return "", xerrors.ErrInvalidLoginResponse
	}
	s.gw.Store().SetAccessToken(out.AccessToken)
	return out.AccessToken, nil
}

// VerifyEmail redeems the token from the verification email.
func (s *AuthService) VerifyEmail(ctx context.Context, verificationToken string) (*VerificationResponse, error) {
	q := url.Values{"token": []string{verificationToken}}
	var out VerificationResponse
	if err := s.gw.Get(ctx, "/auth/verify-email", q, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.VerifyEmail]")
	}
	return &out, nil
}

// ResendVerification asks for a fresh verification email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	err := s.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/resend-verification",
		Query:  url.Values{"email": []string{email}},
	}, nil)
	return errors.Wrap(err, "[AuthService.ResendVerification]")
}

// TrustedDevices lists the devices the server will skip MFA-style
// checks for.
func (s *AuthService) TrustedDevices(ctx context.Context) ([]TrustedDevice, error) {
	var out []TrustedDevice
	if err := s.gw.Get(ctx, "/auth/trusted-devices", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.TrustedDevices]")
	}
	return out, nil
}

// RevokeDevice removes a trusted device.
func (s *AuthService) RevokeDevice(ctx context.Context, deviceID int64) error {
	err := s.gw.Delete(ctx, fmt.Sprintf("/auth/trusted-devices/%d", deviceID), nil)
	return errors.Wrap(err, "[AuthService.RevokeDevice]")
}

// DeleteAccount removes the account and ends the session locally.
func (s *AuthService) DeleteAccount(ctx context.Context) error {
	if err := s.gw.Delete(ctx, "/auth/account", nil); err != nil {
		return errors.Wrap(err, "[AuthService.DeleteAccount]")
	}
	s.session.Logout(ctx)
	return nil
}

// ForgotPassword triggers the reset email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	err := s.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/forgot-password",
		Query:  url.Values{"email": []string{email}},
	}, nil)
	return errors.Wrap(err, "[AuthService.ForgotPassword]")
}

// ResetPassword redeems a reset token for a new password.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	err := s.gw.Post(ctx, "/auth/reset-password", ResetPasswordRequest{
		Token:       resetToken,
		NewPassword: newPassword,
	}, nil)
	return errors.Wrap(err, "[AuthService.ResetPassword]")
}

// UpdateProfile saves profile changes and adopts the returned
// principal as the current cached user.
func (s *AuthService) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*users.User, error) {
	var out users.User
	if err := s.gw.Put(ctx, "/auth/profile", req, &out); err != nil {
		return nil, errors.Wrap(err, "[AuthService.UpdateProfile]")
	}
	s.session.AdoptUser(&out)
	return &out, nil
}
