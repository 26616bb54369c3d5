// Package cmd provides CLI commands for books-admin.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smallbooks/books-admin/internal/logger"
	"github.com/smallbooks/books-admin/pkg/api"
	"github.com/smallbooks/books-admin/pkg/config"
	"github.com/smallbooks/books-admin/pkg/session"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "books-admin",
	Short: "Administer a small-business accounting backend",
	Long: `books-admin is a CLI client for a small-business accounting backend.

It supports:
- Managing invoices, quotations, purchase orders and bills
- Browsing contacts, items, accounts, tax rates and projects
- Cash-flow, aging and summary reports, online or from a local snapshot
- Pulling documents into a local SQLite snapshot for offline reporting

Example:
  books-admin login --username admin
  books-admin invoice list --status Unpaid
  books-admin report profit-loss --from 2026-01-01 --to 2026-03-31`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if debug {
			level = "debug"
		}
		if err := logger.Setup(logger.Config{Level: level, Format: "console"}); err != nil {
			fmt.Fprintln(os.Stderr, "failed to set up logging:", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/books-admin/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig loads and validates the base configuration.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")

	err = cfg.Validate("api.url")
	exitOnError(err, "invalid configuration")

	if cfg.Debug && !debug {
		_ = logger.Setup(logger.Config{Level: "debug", Format: "console"})
	}
	return cfg
}

// newClient builds the API client from configuration.
func newClient(cfg *config.Config) *api.Client {
	client := api.NewClient(api.ClientConfig{
		BaseURL: cfg.API.URL,
		Token:   cfg.API.Token,
	})
	return client
}

// newSession wraps the client in a token-file session.
func newSession(cfg *config.Config, client *api.Client) *session.Session {
	return session.New(client, cfg.Local.TokenPath)
}

// requireSession loads config, client and a restored session, exiting
// when the user is not logged in. A token from the environment skips
// the token file.
func requireSession(ctx context.Context) (*config.Config, *api.Client, *session.Session) {
	cfg := loadConfig()
	client := newClient(cfg)
	sess := newSession(cfg, client)

	if cfg.API.Token != "" {
		return cfg, client, sess
	}

	err := sess.Load(ctx)
	exitOnError(err, "failed to restore session")
	return cfg, client, sess
}

// exitOnError logs the error and exits.
func exitOnError(err error, msg string) {
	if err != nil {
		log.Error().Err(err).Msg(msg)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
