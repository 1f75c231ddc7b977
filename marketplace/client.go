package marketplace

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stoneridge/go-marketplace-client/credentials"
	"github.com/stoneridge/go-marketplace-client/gateway"
	"github.com/stoneridge/go-marketplace-client/session"
)

// Client is the buyer/seller application's view of the API: a gateway
// configured with the marketplace invalidation policy, a session
// controller with an open gate, and one service per endpoint group.
type Client struct {
	gw      *gateway.Client
	Session *session.Controller

	Auth         *AuthService
	Products     *ProductService
	Categories   *CategoryService
	Chats        *ChatService
	Negotiations *NegotiationService
	Files        *FileService
}

// Options configures optional collaborators shared by the gateway and
// the session controller.
type Options struct {
	Logger        zerolog.Logger
	OnInvalidated gateway.InvalidationHandler
	GatewayOpts   []gateway.Option
}

// New wires a marketplace client against baseURL using the given
// credential store. The store should be namespaced with
// credentials.MarketplaceKeys.
func New(baseURL string, store *credentials.Store, opts Options) (*Client, error) {
	gwOpts := append([]gateway.Option{
		gateway.WithLogger(opts.Logger),
		gateway.WithInvalidationHandler(opts.OnInvalidated),
	}, opts.GatewayOpts...)

	gw, err := gateway.New(baseURL, store, gateway.MarketplacePolicy{}, gwOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "[marketplace.New] gateway")
	}

	auth := &AuthService{gw: gw}
	ctrl, err := session.NewController(store, session.OpenGate{},
		session.WithLogger(opts.Logger),
		session.WithRemoteLogout(auth.notifyLogout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[marketplace.New] session controller")
	}
	auth.session = ctrl

	c := &Client{
		gw:           gw,
		Session:      ctrl,
		Auth:         auth,
		Products:     &ProductService{gw: gw},
		Categories:   &CategoryService{gw: gw},
		Chats:        &ChatService{gw: gw},
		Negotiations: &NegotiationService{gw: gw},
	}
	c.Files = &FileService{gw: gw, auth: auth}
	return c, nil
}

// Gateway exposes the underlying gateway for callers that need raw
// access (the CLI's debug command).
func (c *Client) Gateway() *gateway.Client {
	return c.gw
}
