// Package cli wires the session manager into the rently command-line
// client: one SessionManager per invocation, constructed from configuration
// and torn down when the command finishes.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rently/rently-client/internal/infrastructure/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "rently",
	Short: "Rently property-management client",
	Long: `rently is the command-line client for the Rently rental-property product.
It manages the local session: registering an account, logging in and out,
and showing who is currently signed in.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the loaded configuration.
func Execute(ctx context.Context, c *config.Config) error {
	cfg = c
	return rootCmd.ExecuteContext(ctx)
}
