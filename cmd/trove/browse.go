package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/trovecli/trove/internal/app"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [state]",
		Short: "Browse the catalog interactively",
		Long: `Browse opens the interactive terminal explorer.

The optional state argument is a query string restoring a previous
session, for example "page=3&q=char&sort=name". Without it the last
session is resumed automatically.

Examples:
  # Browse from where you left off
  trove browse

  # Jump straight to page 3 of fire items sorted by name
  trove browse "page=3&filter=fire&sort=name"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pageSize, _ := cmd.Flags().GetInt("page-size")

			opts := app.Options{
				ConfigPath: configPath(cmd),
				PageSize:   pageSize,
			}
			if len(args) == 1 {
				opts.StateQuery = args[0]
			}
			return app.Run(ctx, opts)
		},
	}

	cmd.Flags().Int("page-size", 0, "Items per page (overrides config)")

	return cmd
}
