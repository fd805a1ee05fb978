package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for trove.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trove",
		Short: "Terminal explorer for REST item catalogs",
		Long: `Trove browses paginated item catalogs served over REST from the terminal.

It lists, searches, filters, and sorts catalog items, shows per-item
details, and keeps favorites and notes in local storage. Responses are
cached in memory for the lifetime of the process, so revisiting a page
never refetches it.`,
		Version:       currentBuild().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to the config file (default ~/.config/trove/config.toml)")

	cmd.AddCommand(NewBrowseCmd())
	cmd.AddCommand(NewItemCmd())
	cmd.AddCommand(NewFavoritesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configPath reads the persistent --config flag.
func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
