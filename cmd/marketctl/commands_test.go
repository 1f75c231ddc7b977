package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stoneridge/go-marketplace-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand(config.New(), zerolog.Nop())

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"login", "whoami", "logout", "products", "categories", "admin"} {
		require.True(t, names[want], "missing command %q", want)
	}

	adminCmd, _, err := root.Find([]string{"admin", "dashboard"})
	require.NoError(t, err)
	require.Equal(t, "dashboard", adminCmd.Name())
}

func TestLoginRequiresCredentialFlags(t *testing.T) {
	root := newRootCommand(config.New(), zerolog.Nop())
	root.SetArgs([]string{"login"})

	require.Error(t, root.Execute())
}
