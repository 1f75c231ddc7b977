package gateway

import (
	"net/http"

	"github.com/stoneridge/go-marketplace-client/credentials"
)

// AdminAccessDeniedMessage is the flash shown on the admin login view
// after a forced logout caused by a 403.
const AdminAccessDeniedMessage = "Access denied. Your account may not have admin privileges."

// InvalidationReason classifies why a session was forcibly torn down.
type InvalidationReason string

const (
	ReasonUnauthenticated InvalidationReason = "unauthenticated" // 401
	ReasonForbidden       InvalidationReason = "forbidden"       // 403, admin app only
)

// SessionInvalidated is emitted when a response status forced the
// gateway to wipe credentials. The top-level view layer subscribes and
// resets its own navigation; the transport never touches rendering.
type SessionInvalidated struct {
	Reason InvalidationReason
	Status int
	Path   string
}

// InvalidationHandler receives SessionInvalidated events.
type InvalidationHandler func(SessionInvalidated)

// Policy is an app's rule set for session-invalidating statuses. The
// two apps intentionally differ, so the rules are injected rather than
// baked into the client.
type Policy interface {
	// Intercept applies the app's rules for status against the store
	// and reports whether the session was invalidated, and why.
	Intercept(status int, store *credentials.Store) (InvalidationReason, bool)
}

// MarketplacePolicy: a 401 drops the access token and principal but
// keeps the refresh token so the upload path can re-login silently. A
// 403 is an ordinary business error ("not your listing") and passes
// through untouched.
type MarketplacePolicy struct{}

var _ Policy = MarketplacePolicy{}

func (MarketplacePolicy) Intercept(status int, store *credentials.Store) (InvalidationReason, bool) {
	if status == http.StatusUnauthorized {
		store.ClearAccess()
		return ReasonUnauthenticated, true
	}
	return "", false
}

// AdminPolicy: both 401 and 403 wipe the full session; a 403
// additionally leaves a one-shot flash for the login view, since for
// an admin console "forbidden" means the account itself is unfit.
type AdminPolicy struct {
	// FlashMessage overrides AdminAccessDeniedMessage when non-empty.
	FlashMessage string
}

var _ Policy = AdminPolicy{}

func (p AdminPolicy) Intercept(status int, store *credentials.Store) (InvalidationReason, bool) {
	switch status {
	case http.StatusUnauthorized:
		store.Clear()
		return ReasonUnauthenticated, true
	case http.StatusForbidden:
		store.Clear()
		msg := p.FlashMessage
		if msg == "" {
			msg = AdminAccessDeniedMessage
		}
		store.SetFlash(msg)
		return ReasonForbidden, true
	}
	return "", false
}
