package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Release builds inject these via -ldflags; development builds leave them
// empty and fall back to module build info.
var (
	version = ""
	commit  = ""
	date    = ""
)

type buildDetails struct {
	Version string
	Commit  string
	Date    string
}

// currentBuild merges the ldflags values with whatever the Go toolchain
// recorded, preferring the explicit release values.
func currentBuild() buildDetails {
	b := buildDetails{Version: version, Commit: commit, Date: date}

	if info, ok := debug.ReadBuildInfo(); ok {
		if b.Version == "" {
			b.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = shortHash(setting.Value)
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = setting.Value
				}
			}
		}
	}

	if b.Version == "" {
		b.Version = "(devel)"
	}
	if b.Commit == "" {
		b.Commit = "unknown"
	}
	if b.Date == "" {
		b.Date = "unknown"
	}
	return b
}

func shortHash(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of trove.`,
		Run: func(cmd *cobra.Command, _ []string) {
			b := currentBuild()
			fmt.Fprintf(cmd.OutOrStdout(), "trove version %s\n", b.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", b.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", b.Date)
		},
	}
}
