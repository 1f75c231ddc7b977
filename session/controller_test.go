package session_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/credentials"
	"github.com/stoneridge/go-marketplace-client/credentials/backendmem"
	xerrors "github.com/stoneridge/go-marketplace-client/internal/errors"
	"github.com/stoneridge/go-marketplace-client/session"
	"github.com/stoneridge/go-marketplace-client/token"
	"github.com/stoneridge/go-marketplace-client/users"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, keys credentials.Keys) *credentials.Store {
	t.Helper()
	store, err := credentials.NewStore(backendmem.New(), backendmem.New(), keys)
	require.NoError(t, err)
	return store
}

func adminUser() *users.User {
	return &users.User{ID: 1, Username: "root", Role: users.RoleAdmin}
}

func regularUser() *users.User {
	return &users.User{ID: 2, Username: "jane", Role: users.RoleUser}
}

func TestNewControllerRequiresCollaborators(t *testing.T) {
	_, err := session.NewController(nil, session.OpenGate{})
	require.Error(t, err)

	_, err = session.NewController(newStore(t, credentials.MarketplaceKeys()), nil)
	require.Error(t, err)
}

func TestFreshStoreStartsUnauthenticated(t *testing.T) {
	ctrl, err := session.NewController(newStore(t, credentials.MarketplaceKeys()), session.OpenGate{})
	require.NoError(t, err)

	require.Equal(t, session.StateUnauthenticated, ctrl.State())
	require.False(t, ctrl.Authenticated())
	require.Nil(t, ctrl.CurrentUser())
}

func TestRehydratesSavedSessionWithoutNetwork(t *testing.T) {
	store := newStore(t, credentials.MarketplaceKeys())
	store.Save(token.Pair{AccessToken: "a1", RefreshToken: "r1"}, regularUser())

	// No remote logout, no HTTP client anywhere: construction alone
	// must settle the state from storage.
	ctrl, err := session.NewController(store, session.OpenGate{})
	require.NoError(t, err)

	require.True(t, ctrl.Authenticated())
	require.Equal(t, "jane", ctrl.CurrentUser().Username)
}

func TestRehydrateReRunsGate(t *testing.T) {
	store := newStore(t, credentials.AdminKeys())
	store.Save(token.Pair{AccessToken: "a1"}, regularUser())

	ctrl, err := session.NewController(store, session.AdminGate{})
	require.NoError(t, err)

	require.False(t, ctrl.Authenticated())
	_, _, ok := store.Load()
	require.False(t, ok)
}

func TestLoginPersistsAndTransitions(t *testing.T) {
	store := newStore(t, credentials.MarketplaceKeys())
	ctrl, err := session.NewController(store, session.OpenGate{})
	require.NoError(t, err)

	require.NoError(t, ctrl.Login(regularUser(), token.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	require.True(t, ctrl.Authenticated())
	pair, principal, ok := store.Load()
	require.True(t, ok)
	require.Equal(t, "a1", pair.AccessToken)
	require.Equal(t, "jane", principal.Username)
}

func TestGateRejectionPersistsNothing(t *testing.T) {
	store := newStore(t, credentials.AdminKeys())
	ctrl, err := session.NewController(store, session.AdminGate{})
	require.NoError(t, err)

	err = ctrl.Login(regularUser(), token.Pair{AccessToken: "a1"})
	require.ErrorIs(t, err, xerrors.ErrInsufficientRole)
	require.Contains(t, err.Error(), session.AdminOnlyMessage)

	require.False(t, ctrl.Authenticated())
	_, _, ok := store.Load()
	require.False(t, ok)
	_, ok = store.AccessToken()
	require.False(t, ok)
}

func TestInvalidLoginResponseRejected(t *testing.T) {
	ctrl, err := session.NewController(newStore(t, credentials.MarketplaceKeys()), session.OpenGate{})
	require.NoError(t, err)

	require.ErrorIs(t, ctrl.Login(nil, token.Pair{AccessToken: "a1"}), xerrors.ErrInvalidLoginResponse)
	require.ErrorIs(t, ctrl.Login(regularUser(), token.Pair{}), xerrors.ErrInvalidLoginResponse)
	require.False(t, ctrl.Authenticated())
}

func TestStaleLoginGenerationDiscarded(t *testing.T) {
	store := newStore(t, credentials.MarketplaceKeys())
	ctrl, err := session.NewController(store, session.OpenGate{})
	require.NoError(t, err)

	slow := ctrl.BeginLogin()
	fast := ctrl.BeginLogin()

	require.NoError(t, ctrl.CompleteLogin(fast, regularUser(), token.Pair{AccessToken: "fast"}))

	err = ctrl.CompleteLogin(slow, adminUser(), token.Pair{AccessToken: "slow"})
	require.ErrorIs(t, err, xerrors.ErrStaleLogin)

	// The newer attempt's session is still in place.
	pair, principal, ok := store.Load()
	require.True(t, ok)
	require.Equal(t, "fast", pair.AccessToken)
	require.Equal(t, "jane", principal.Username)
}

func TestLogoutSupersedesInFlightLogin(t *testing.T) {
	ctrl, err := session.NewController(newStore(t, credentials.MarketplaceKeys()), session.OpenGate{})
	require.NoError(t, err)

	pending := ctrl.BeginLogin()
	ctrl.Logout(context.Background())

	err = ctrl.CompleteLogin(pending, regularUser(), token.Pair{AccessToken: "late"})
	require.ErrorIs(t, err, xerrors.ErrStaleLogin)
	require.False(t, ctrl.Authenticated())
}

func TestLogoutClearsEvenWhenRemoteFails(t *testing.T) {
	store := newStore(t, credentials.MarketplaceKeys())
	remoteCalls := 0
	ctrl, err := session.NewController(store, session.OpenGate{},
		session.WithRemoteLogout(func(ctx context.Context) error {
			remoteCalls++
			return errors.New("server unreachable")
		}),
	)
	require.NoError(t, err)
	require.NoError(t, ctrl.Login(regularUser(), token.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	ctrl.Logout(context.Background())

	require.Equal(t, 1, remoteCalls)
	require.False(t, ctrl.Authenticated())
	require.Nil(t, ctrl.CurrentUser())
	_, _, ok := store.Load()
	require.False(t, ok)
	_, ok = store.RefreshToken()
	require.False(t, ok)
}

func TestAdoptUserUpdatesPrincipalOnly(t *testing.T) {
	store := newStore(t, credentials.MarketplaceKeys())
	ctrl, err := session.NewController(store, session.OpenGate{})
	require.NoError(t, err)
	require.NoError(t, ctrl.Login(regularUser(), token.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	updated := regularUser()
	updated.DisplayName = "Jane D."
	ctrl.AdoptUser(updated)

	require.Equal(t, "Jane D.", ctrl.CurrentUser().DisplayName)
	pair, principal, ok := store.Load()
	require.True(t, ok)
	require.Equal(t, "a1", pair.AccessToken)
	require.Equal(t, "r1", pair.RefreshToken)
	require.Equal(t, "Jane D.", principal.DisplayName)
}

func TestAdoptUserIgnoredWhenLoggedOut(t *testing.T) {
	store := newStore(t, credentials.MarketplaceKeys())
	ctrl, err := session.NewController(store, session.OpenGate{})
	require.NoError(t, err)

	ctrl.AdoptUser(regularUser())

	require.Nil(t, ctrl.CurrentUser())
	_, _, ok := store.Load()
	require.False(t, ok)
}

func TestInvalidateDropsInMemoryState(t *testing.T) {
	store := newStore(t, credentials.MarketplaceKeys())
	ctrl, err := session.NewController(store, session.OpenGate{})
	require.NoError(t, err)
	require.NoError(t, ctrl.Login(regularUser(), token.Pair{AccessToken: "a1"}))

	// The gateway has already wiped the store by the time the view
	// layer reacts.
	store.ClearAccess()
	ctrl.Invalidate()

	require.False(t, ctrl.Authenticated())
	require.Nil(t, ctrl.CurrentUser())
}
