package session

import (
	xerrors "github.com/stoneridge/go-marketplace-client/internal/errors"
	"github.com/stoneridge/go-marketplace-client/users"
)

// AdminOnlyMessage tells a correctly-authenticated non-admin what to
// do next; deliberately distinct from a bad-credentials or server 403
// message because the remediation differs.
const AdminOnlyMessage = "Only administrators can access this portal. Use the main marketplace to log in as a user."

// Gate decides whether a principal may establish a session. Admission
// runs before anything is persisted: a rejected principal's tokens are
// never written, so there is nothing to revoke afterwards.
type Gate interface {
	Admit(principal *users.User) error
}

// OpenGate admits every principal; the marketplace app's gate.
type OpenGate struct{}

var _ Gate = OpenGate{}

func (OpenGate) Admit(*users.User) error {
	return nil
}

// AdminGate admits only administrators; the admin console's gate.
type AdminGate struct{}

var _ Gate = AdminGate{}

func (AdminGate) Admit(principal *users.User) error {
	if principal == nil || !principal.IsAdmin() {
		return xerrors.Wrapf(xerrors.ErrInsufficientRole, "%s", AdminOnlyMessage)
	}
	return nil
}
