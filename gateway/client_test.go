package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stoneridge/go-marketplace-client/credentials"
	"github.com/stoneridge/go-marketplace-client/credentials/backendmem"
	"github.com/stoneridge/go-marketplace-client/gateway"
	xerrors "github.com/stoneridge/go-marketplace-client/internal/errors"
	"github.com/stoneridge/go-marketplace-client/token"
	"github.com/stoneridge/go-marketplace-client/users"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	store  *credentials.Store
	client *gateway.Client
	server *httptest.Server
	events []gateway.SessionInvalidated
}

func newFixture(t *testing.T, policy gateway.Policy, keys credentials.Keys, handler http.HandlerFunc) *testFixture {
	t.Helper()

	f := &testFixture{}
	f.server = httptest.NewServer(handler)
	t.Cleanup(f.server.Close)

	store, err := credentials.NewStore(backendmem.New(), backendmem.New(), keys)
	require.NoError(t, err)
	f.store = store

	client, err := gateway.New(f.server.URL, store, policy,
		gateway.WithInvalidationHandler(func(ev gateway.SessionInvalidated) {
			f.events = append(f.events, ev)
		}),
	)
	require.NoError(t, err)
	f.client = client
	return f
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()
	f.store.Save(token.Pair{AccessToken: "access-1", RefreshToken: "refresh-1"}, &users.User{ID: 1, Username: "jane", Role: users.RoleAdmin})
}

func TestNewRequiresCollaborators(t *testing.T) {
	store, err := credentials.NewStore(backendmem.New(), backendmem.New(), credentials.MarketplaceKeys())
	require.NoError(t, err)

	_, err = gateway.New("", store, gateway.MarketplacePolicy{})
	require.Error(t, err)

	_, err = gateway.New("http://localhost", nil, gateway.MarketplacePolicy{})
	require.Error(t, err)

	_, err = gateway.New("http://localhost", store, nil)
	require.Error(t, err)
}

func TestBearerTokenReadFreshPerRequest(t *testing.T) {
	var seen []string
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, f.client.Get(context.Background(), "/ping", nil, nil))

	f.login(t)
	require.NoError(t, f.client.Get(context.Background(), "/ping", nil, nil))

	f.store.SetAccessToken("access-2")
	require.NoError(t, f.client.Get(context.Background(), "/ping", nil, nil))

	require.Equal(t, []string{"", "Bearer access-1", "Bearer access-2"}, seen)
}

func TestRequestIDStampedPerRequest(t *testing.T) {
	var seen []string
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-Request-ID"))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, f.client.Get(context.Background(), "/ping", nil, nil))
	require.NoError(t, f.client.Get(context.Background(), "/ping", nil, nil))

	require.Len(t, seen, 2)
	require.NotEmpty(t, seen[0])
	require.NotEmpty(t, seen[1])
	require.NotEqual(t, seen[0], seen[1])
}

func TestDecodeUnwrapsEnvelope(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"id":42,"title":"Lamp"}}`))
	})

	var out struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, f.client.Get(context.Background(), "/products/42", nil, &out))
	require.Equal(t, int64(42), out.ID)
	require.Equal(t, "Lamp", out.Title)
}

func TestDecodeAcceptsBarePayload(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
	})

	var out []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, f.client.Get(context.Background(), "/categories", nil, &out))
	require.Len(t, out, 2)
	require.Equal(t, int64(2), out[1].ID)
}

func TestDecodeToleratesEmptyBody(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var out struct{ ID int64 }
	require.NoError(t, f.client.Get(context.Background(), "/empty", nil, &out))
	require.Zero(t, out.ID)
}

func TestMarketplace401KeepsRefreshToken(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	f.login(t)

	err := f.client.Get(context.Background(), "/products/mine", nil, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, xerrors.ErrUnauthenticated)
	require.Equal(t, http.StatusUnauthorized, gateway.StatusOf(err))

	_, _, ok := f.store.Load()
	require.False(t, ok)

	refresh, ok := f.store.RefreshToken()
	require.True(t, ok)
	require.Equal(t, "refresh-1", refresh)

	require.Len(t, f.events, 1)
	require.Equal(t, gateway.ReasonUnauthenticated, f.events[0].Reason)
	require.Equal(t, "/products/mine", f.events[0].Path)
}

func TestMarketplace403PassesThrough(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"You can only edit your own listings"}`))
	})
	f.login(t)

	err := f.client.Put(context.Background(), "/products/9", nil, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, xerrors.ErrForbidden)
	require.Equal(t, "You can only edit your own listings", gateway.UserMessage(err))

	// The session is untouched and no invalidation event fired.
	pair, principal, ok := f.store.Load()
	require.True(t, ok)
	require.Equal(t, "access-1", pair.AccessToken)
	require.Equal(t, "jane", principal.Username)
	require.Empty(t, f.events)
}

func TestAdmin401ClearsWholeSession(t *testing.T) {
	f := newFixture(t, gateway.AdminPolicy{}, credentials.AdminKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	f.login(t)

	err := f.client.Get(context.Background(), "/admin/users", nil, nil)
	require.ErrorIs(t, err, xerrors.ErrUnauthenticated)

	_, _, ok := f.store.Load()
	require.False(t, ok)
	_, ok = f.store.RefreshToken()
	require.False(t, ok)

	// A 401 never sets a flash; only a 403 explains itself.
	_, ok = f.store.ConsumeFlash()
	require.False(t, ok)

	require.Len(t, f.events, 1)
	require.Equal(t, gateway.ReasonUnauthenticated, f.events[0].Reason)
}

func TestAdmin403ClearsSessionAndLeavesFlash(t *testing.T) {
	f := newFixture(t, gateway.AdminPolicy{}, credentials.AdminKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	f.login(t)

	err := f.client.Get(context.Background(), "/admin/dashboard", nil, nil)
	require.ErrorIs(t, err, xerrors.ErrForbidden)

	_, _, ok := f.store.Load()
	require.False(t, ok)
	_, ok = f.store.RefreshToken()
	require.False(t, ok)

	msg, ok := f.store.ConsumeFlash()
	require.True(t, ok)
	require.Equal(t, gateway.AdminAccessDeniedMessage, msg)

	_, ok = f.store.ConsumeFlash()
	require.False(t, ok)

	require.Len(t, f.events, 1)
	require.Equal(t, gateway.ReasonForbidden, f.events[0].Reason)
}

func TestUserMessagePrefersServerMessage(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Price must be positive"}`))
	})

	err := f.client.Post(context.Background(), "/products", nil, nil)
	require.Error(t, err)
	require.Equal(t, "Price must be positive", gateway.UserMessage(err))
}

func TestUserMessageFallsBackWhenServerSilent(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := f.client.Get(context.Background(), "/products", nil, nil)
	require.Error(t, err)
	require.Equal(t, "Something went wrong. Please try again.", gateway.UserMessage(err))
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := f.client.Get(context.Background(), "/products/999", nil, nil)
	require.ErrorIs(t, err, xerrors.ErrNotFound)
	require.Empty(t, f.events)
}

func TestTransportFailureHasNoStatus(t *testing.T) {
	f := newFixture(t, gateway.MarketplacePolicy{}, credentials.MarketplaceKeys(), func(w http.ResponseWriter, r *http.Request) {})
	f.server.Close()

	err := f.client.Get(context.Background(), "/ping", nil, nil)
	require.Error(t, err)
	require.Zero(t, gateway.StatusOf(err))
	require.Equal(t, "Something went wrong. Please try again.", gateway.UserMessage(err))
}
