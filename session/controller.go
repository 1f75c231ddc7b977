package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stoneridge/go-marketplace-client/credentials"
	xerrors "github.com/stoneridge/go-marketplace-client/internal/errors"
	"github.com/stoneridge/go-marketplace-client/token"
	"github.com/stoneridge/go-marketplace-client/users"
)

// State is the controller's lifecycle position. Construction runs
// Initializing synchronously, so callers only ever observe the two
// settled states.
type State string

const (
	StateInitializing    State = "initializing"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// RemoteLogout notifies the server that the session is ending. It is
// best-effort; logout never gets stuck on a failed network call.
type RemoteLogout func(ctx context.Context) error

// Controller derives the app's in-memory auth state from the
// credential store and owns the login/logout transitions. The stored
// bytes remain the source of truth; the in-memory principal is a
// rendering cache.
type Controller struct {
	store        *credentials.Store
	gate         Gate
	remoteLogout RemoteLogout
	log          zerolog.Logger

	lock       sync.Mutex
	state      State
	current    *users.User
	generation uint64
}

// Option modifies a Controller at construction time.
type Option func(*Controller)

// WithRemoteLogout sets the best-effort server notification used by
// Logout.
func WithRemoteLogout(fn RemoteLogout) Option {
	return func(c *Controller) {
		c.remoteLogout = fn
	}
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController builds a Controller and synchronously rehydrates it
// from the store, so the caller never renders protected content before
// the saved session has been considered. No network call is made: a
// valid stored pair transitions straight to Authenticated.
func NewController(store *credentials.Store, gate Gate, options ...Option) (*Controller, error) {
	if store == nil {
		return nil, errors.New("[NewController] credential store is required")
	}
	if gate == nil {
		return nil, errors.New("[NewController] gate is required")
	}

	c := &Controller{
		store: store,
		gate:  gate,
		log:   zerolog.Nop(),
		state: StateInitializing,
	}
	for _, opt := range options {
		opt(c)
	}

	c.rehydrate()
	return c, nil
}

// rehydrate loads the saved session, re-running the gate so a stored
// principal that no longer passes (e.g. a USER record left in the
// admin namespace) is discarded rather than admitted.
func (c *Controller) rehydrate() {
	pair, principal, ok := c.store.Load()
	if !ok || !pair.Valid() {
		c.state = StateUnauthenticated
		return
	}
	if err := c.gate.Admit(principal); err != nil {
		c.log.Warn().Err(err).Msg("stored principal rejected at startup")
		c.store.Clear()
		c.state = StateUnauthenticated
		return
	}
	c.current = principal
	c.state = StateAuthenticated
	c.log.Debug().Str("user", principal.Username).Msg("session rehydrated")
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

// Authenticated reports whether a session is established.
func (c *Controller) Authenticated() bool {
	return c.State() == StateAuthenticated
}

// CurrentUser returns the in-memory principal, nil when logged out.
func (c *Controller) CurrentUser() *users.User {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.current
}

// BeginLogin allocates a generation for a login attempt. Only the
// newest generation may complete; a response from a superseded attempt
// is discarded instead of overwriting fresher state.
func (c *Controller) BeginLogin() uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.generation++
	return c.generation
}

// CompleteLogin validates and adopts a login result for the given
// generation. The gate runs before anything is persisted; on any
// failure the store is left untouched and the state does not change.
func (c *Controller) CompleteLogin(generation uint64, principal *users.User, tokens token.Pair) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if generation != c.generation {
		return xerrors.Wrapf(xerrors.ErrStaleLogin, "generation %d superseded by %d", generation, c.generation)
	}
	if principal == nil || !tokens.Valid() {
		return xerrors.ErrInvalidLoginResponse
	}
	if err := c.gate.Admit(principal); err != nil {
		return err
	}

	c.store.Save(tokens, principal)
	c.current = principal
	c.state = StateAuthenticated
	c.log.Info().Str("user", principal.Username).Msg("logged in")
	return nil
}

// Login is the single-shot form of BeginLogin/CompleteLogin for
// callers that already hold the login result.
func (c *Controller) Login(principal *users.User, tokens token.Pair) error {
	return c.CompleteLogin(c.BeginLogin(), principal, tokens)
}

// AdoptUser replaces the in-memory and stored principal after a
// profile update, without touching tokens.
func (c *Controller) AdoptUser(principal *users.User) {
	if principal == nil {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.state != StateAuthenticated {
		return
	}
	c.store.SetPrincipal(principal)
	c.current = principal
}

// Logout tears the session down. The server is notified best-effort
// first; local state is cleared unconditionally afterwards.
func (c *Controller) Logout(ctx context.Context) {
	if c.remoteLogout != nil {
		if err := c.remoteLogout(ctx); err != nil {
			c.log.Warn().Err(err).Msg("remote logout failed, clearing locally anyway")
		}
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.store.Clear()
	c.current = nil
	c.state = StateUnauthenticated
	c.generation++ // any in-flight login attempt is now stale
	c.log.Info().Msg("logged out")
}

// Invalidate drops the in-memory session after the gateway has already
// wiped the store; the view layer calls it from its invalidation
// handler.
func (c *Controller) Invalidate() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.current = nil
	c.state = StateUnauthenticated
	c.generation++
}
