package admin

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stoneridge/go-marketplace-client/credentials"
	"github.com/stoneridge/go-marketplace-client/gateway"
	"github.com/stoneridge/go-marketplace-client/session"
)

// Client is the admin console's view of the API. It differs from the
// marketplace client in two ways: the AdminPolicy wipes the whole
// session on 401 and 403 (leaving a flash on 403), and the AdminGate
// rejects non-administrator principals before anything is persisted.
type Client struct {
	gw      *gateway.Client
	Session *session.Controller

	Auth  *AuthService
	Admin *AdminService
}

// Options configures optional collaborators.
type Options struct {
	Logger        zerolog.Logger
	OnInvalidated gateway.InvalidationHandler
	GatewayOpts   []gateway.Option
}

// New wires an admin client against baseURL. The store should be
// namespaced with credentials.AdminKeys so a marketplace session in
// the same storage is never touched.
func New(baseURL string, store *credentials.Store, opts Options) (*Client, error) {
	gwOpts := append([]gateway.Option{
		gateway.WithLogger(opts.Logger),
		gateway.WithInvalidationHandler(opts.OnInvalidated),
	}, opts.GatewayOpts...)

	gw, err := gateway.New(baseURL, store, gateway.AdminPolicy{}, gwOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "[admin.New] gateway")
	}

	auth := &AuthService{gw: gw}
	ctrl, err := session.NewController(store, session.AdminGate{},
		session.WithLogger(opts.Logger),
		session.WithRemoteLogout(auth.notifyLogout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[admin.New] session controller")
	}
	auth.session = ctrl

	return &Client{
		gw:      gw,
		Session: ctrl,
		Auth:    auth,
		Admin:   &AdminService{gw: gw},
	}, nil
}

// PendingFlash returns the one-shot message a forced 403 logout left
// behind, consuming it. The login view reads it exactly once.
func (c *Client) PendingFlash() (string, bool) {
	return c.gw.Store().ConsumeFlash()
}
