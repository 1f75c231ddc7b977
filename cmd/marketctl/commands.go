package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stoneridge/go-marketplace-client/admin"
	"github.com/stoneridge/go-marketplace-client/credentials"
	"github.com/stoneridge/go-marketplace-client/credentials/backendfile"
	"github.com/stoneridge/go-marketplace-client/credentials/backendmem"
	"github.com/stoneridge/go-marketplace-client/gateway"
	"github.com/stoneridge/go-marketplace-client/internal/config"
	"github.com/stoneridge/go-marketplace-client/marketplace"
)

func newRootCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "StoneRidge Marketplace command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(c, log),
		newWhoamiCommand(c, log),
		newLogoutCommand(c, log),
		newProductsCommand(c, log),
		newCategoriesCommand(c, log),
		newAdminCommand(c, log),
	)
	return root
}

// newMarketplaceClient assembles the buyer/seller client over a
// file-backed durable store in the configured data folder.
func newMarketplaceClient(c config.Config, log zerolog.Logger) (*marketplace.Client, error) {
	store, err := credentials.NewStore(
		backendfile.Open(c.GetDataFolder()),
		backendmem.New(),
		credentials.MarketplaceKeys(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "credential store")
	}
	return marketplace.New(c.GetBaseURL(), store, marketplace.Options{
		Logger: log,
		OnInvalidated: func(ev gateway.SessionInvalidated) {
			log.Warn().Str("reason", string(ev.Reason)).Str("path", ev.Path).Msg("session invalidated, please log in again")
		},
		GatewayOpts: []gateway.Option{
			gateway.WithHTTPClient(&http.Client{Timeout: c.GetHTTPTimeout()}),
		},
	})
}

func newAdminClient(c config.Config, log zerolog.Logger) (*admin.Client, error) {
	store, err := credentials.NewStore(
		backendfile.Open(c.GetDataFolder()),
		backendmem.New(),
		credentials.AdminKeys(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "credential store")
	}
	return admin.New(c.GetBaseURL(), store, admin.Options{
		Logger: log,
		OnInvalidated: func(ev gateway.SessionInvalidated) {
			log.Warn().Str("reason", string(ev.Reason)).Str("path", ev.Path).Msg("admin session invalidated")
		},
		GatewayOpts: []gateway.Option{
			gateway.WithHTTPClient(&http.Client{Timeout: c.GetHTTPTimeout()}),
		},
	})
}

func newLoginCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	var username, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the marketplace",
		RunE: func(cmd *cobra.Command, args []string) error {
			displayAppname(c.GetAppName())
			client, err := newMarketplaceClient(c, log)
			if err != nil {
				return err
			}
			user, err := client.Auth.Login(cmd.Context(), marketplace.LoginRequest{
				UsernameOrEmail: username,
				Password:        password,
				RememberDevice:  remember,
			})
			if err != nil {
				return errors.New(gateway.UserMessage(err))
			}
			fmt.Fprintf(os.Stdout, "Logged in as %s (%s)\n", user.Display(), user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().BoolVar(&remember, "remember", false, "remember this device")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newWhoamiCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketplaceClient(c, log)
			if err != nil {
				return err
			}
			if !client.Session.Authenticated() {
				fmt.Fprintln(os.Stdout, "Not logged in.")
				return nil
			}
			user := client.Session.CurrentUser()
			fmt.Fprintf(os.Stdout, "%s <%s> role=%s\n", user.Display(), user.Email, user.Role)
			return nil
		},
	}
}

func newLogoutCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketplaceClient(c, log)
			if err != nil {
				return err
			}
			client.Auth.Logout(cmd.Context())
			fmt.Fprintln(os.Stdout, "Logged out.")
			return nil
		},
	}
}

func newProductsCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	var keyword string
	var limit int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse trending listings or search by keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketplaceClient(c, log)
			if err != nil {
				return err
			}

			var items []marketplace.ProductSummary
			if keyword != "" {
				page, err := client.Products.Search(cmd.Context(), keyword, marketplace.PageParams{Size: limit})
				if err != nil {
					return errors.New(gateway.UserMessage(err))
				}
				items = page.Content
			} else {
				items, err = client.Products.Trending(cmd.Context(), limit)
				if err != nil {
					return errors.New(gateway.UserMessage(err))
				}
			}

			for _, p := range items {
				fmt.Fprintf(os.Stdout, "#%d  %-40s  $%.2f  [%s]\n", p.ID, p.Title, p.Price, p.Condition)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyword, "search", "s", "", "search keyword")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of listings")
	return cmd
}

func newCategoriesCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List marketplace categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketplaceClient(c, log)
			if err != nil {
				return err
			}
			cats, err := client.Categories.All(cmd.Context())
			if err != nil {
				return errors.New(gateway.UserMessage(err))
			}
			for _, cat := range cats {
				fmt.Fprintf(os.Stdout, "%-30s  %d products\n", cat.FullPath, cat.ProductCount)
			}
			return nil
		},
	}
}

func newAdminCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin console commands",
	}
	cmd.AddCommand(newAdminLoginCommand(c, log), newAdminDashboardCommand(c, log))
	return cmd
}

func newAdminLoginCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the admin console",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAdminClient(c, log)
			if err != nil {
				return err
			}
			// A 403-forced logout leaves a one-shot explanation behind.
			if flash, ok := client.PendingFlash(); ok {
				fmt.Fprintln(os.Stderr, flash)
			}
			user, err := client.Auth.Login(cmd.Context(), marketplace.LoginRequest{
				UsernameOrEmail: username,
				Password:        password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Admin session established for %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAdminDashboardCommand(c config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show marketplace totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAdminClient(c, log)
			if err != nil {
				return err
			}
			dash, err := client.Admin.GetDashboard(cmd.Context())
			if err != nil {
				return errors.New(gateway.UserMessage(err))
			}
			fmt.Fprintf(os.Stdout, "users=%d products=%d active=%d categories=%d pending-requests=%d\n",
				dash.TotalUsers, dash.TotalProducts, dash.ActiveProducts, dash.TotalCategories, dash.PendingCategoryRequests)
			return nil
		},
	}
}
