package errors

import (
	"errors"
	"fmt"
)

// Common error types for the marketplace client
var (
	// Session errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrSessionAbsent   = errors.New("no stored session")
	ErrStaleLogin      = errors.New("stale login result")

	// Login errors
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInsufficientRole     = errors.New("insufficient role")
	ErrInvalidLoginResponse = errors.New("invalid login response")

	// Token errors
	ErrNoAccessToken  = errors.New("no access token")
	ErrNoRefreshToken = errors.New("no refresh token")

	// Transport errors
	ErrDecode   = errors.New("response decode failed")
	ErrNotFound = errors.New("not found")

	// General errors
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
