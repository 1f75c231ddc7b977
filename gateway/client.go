package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stoneridge/go-marketplace-client/credentials"
	xerrors "github.com/stoneridge/go-marketplace-client/internal/errors"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
)

// maxBodyBytes caps how much of a response the gateway will buffer.
const maxBodyBytes = 8 << 20

// Client is the single HTTP configuration every API call goes
// through: it injects the bearer token read fresh from the credential
// store, stamps a request ID, applies the app's 401/403 interception
// policy, and decodes the response envelope once at this boundary.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	store         *credentials.Store
	policy        Policy
	onInvalidated InvalidationHandler
	log           zerolog.Logger
}

// Option modifies a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger; the default is a no-op logger so the
// SDK stays silent unless the host app opts in.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithInvalidationHandler subscribes the view layer to forced-logout
// events.
func WithInvalidationHandler(h InvalidationHandler) Option {
	return func(c *Client) {
		c.onInvalidated = h
	}
}

// New builds a Client. The store and policy are required; the gateway
// is useless without a credential source and an interception rule set.
func New(baseURL string, store *credentials.Store, policy Policy, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[gateway.New] baseURL is required")
	}
	if store == nil {
		return nil, errors.New("[gateway.New] credential store is required")
	}
	if policy == nil {
		return nil, errors.New("[gateway.New] policy is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		store:      store,
		policy:     policy,
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Store exposes the credential store the gateway reads from.
func (c *Client) Store() *credentials.Store {
	return c.store
}

// Request describes one API call. Body is JSON-marshaled unless Reader
// is set, in which case Reader is sent raw with ContentType (multipart
// uploads).
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        any
	Reader      io.Reader
	ContentType string
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Do executes req against the API. Every response runs through the
// invalidation policy before the caller sees it; an intercepted 401 or
// 403 still rejects the caller's request, but by then the stored
// session is gone and the invalidation event has fired.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug().Str("method", req.Method).Str("path", req.Path).Err(err).Msg("transport failure")
		return errors.Wrapf(err, "[Client.Do] %s %s", req.Method, req.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrapf(err, "[Client.Do] %s %s: reading body", req.Method, req.Path)
	}

	c.log.Debug().Str("method", req.Method).Str("path", req.Path).Int("status", resp.StatusCode).Msg("api call")

	if reason, invalidated := c.policy.Intercept(resp.StatusCode, c.store); invalidated {
		c.log.Info().Str("path", req.Path).Int("status", resp.StatusCode).Str("reason", string(reason)).Msg("session invalidated")
		if c.onInvalidated != nil {
			c.onInvalidated(SessionInvalidated{Reason: reason, Status: resp.StatusCode, Path: req.Path})
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.apiError(req.Path, resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := decodeBody(body, out); err != nil {
		return errors.Wrapf(err, "[Client.Do] %s %s", req.Method, req.Path)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.Reader != nil:
		body = req.Reader
		contentType = req.ContentType
	case req.Body != nil:
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "[Client.buildRequest] %s %s: marshal body", req.Method, req.Path)
		}
		body = bytes.NewReader(raw)
		contentType = contentTypeJSON
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.buildRequest] %s %s", req.Method, req.Path)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set(headerRequestID, uuid.New().String())

	// The token is read from storage on every call, not from memory,
	// so a rotation in another tab is picked up immediately.
	if access, ok := c.store.AccessToken(); ok {
		httpReq.Header.Set(headerAuthorization, "Bearer "+access)
	}
	return httpReq, nil
}

func (c *Client) apiError(path string, status int, body []byte) error {
	apiErr := &APIError{
		Status:  status,
		Path:    path,
		Message: serverMessage(body),
	}
	switch status {
	case http.StatusUnauthorized:
		apiErr.err = xerrors.ErrUnauthenticated
	case http.StatusForbidden:
		apiErr.err = xerrors.ErrForbidden
	case http.StatusNotFound:
		apiErr.err = xerrors.ErrNotFound
	}
	return apiErr
}
