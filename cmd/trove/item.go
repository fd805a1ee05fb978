package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trovecli/trove/internal/catalog"
	"github.com/trovecli/trove/internal/config"
	"github.com/trovecli/trove/internal/favorites"
	"github.com/trovecli/trove/internal/kvstore"
	"github.com/trovecli/trove/internal/notes"
)

// NewItemCmd creates the item command.
func NewItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <id|name>",
		Short: "Show the details of a single catalog item",
		Long: `Item fetches one catalog item by numeric id or by name and prints its
details, including any locally stored favorite flag and note.

Examples:
  trove item 25
  trove item pikachu`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			client, err := catalog.NewClient(cfg.BaseURL, cfg.Collection)
			if err != nil {
				return fmt.Errorf("init catalog client: %w", err)
			}

			item, err := fetchItem(ctx, client, args[0])
			if catalog.IsNotFound(err) {
				return fmt.Errorf("no item matches %q", args[0])
			}
			if err != nil {
				return err
			}

			kv, err := kvstore.New(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("open local storage: %w", err)
			}
			logger := slog.New(slog.DiscardHandler)
			favs := favorites.New(kv, logger)
			noteStore := notes.New(kv, logger)

			printItem(cmd, item, favs.Contains(item.ID), noteStore.Get(item.ID))
			return nil
		},
	}
}

// fetchItem resolves the argument as a numeric id first, then as a name.
func fetchItem(ctx context.Context, client *catalog.Client, arg string) (*catalog.Item, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if id < 1 {
			return nil, &catalog.StatusError{Code: 404, Path: arg}
		}
		return client.FetchByID(ctx, id)
	}
	return client.FetchByName(ctx, arg)
}

func printItem(cmd *cobra.Command, item *catalog.Item, favorite bool, note string) {
	out := cmd.OutOrStdout()

	marker := ""
	if favorite {
		marker = "  ★ favorite"
	}
	fmt.Fprintf(out, "#%d %s%s\n", item.ID, cases.Title(language.Und).String(item.Name), marker)
	if len(item.Tags) > 0 {
		fmt.Fprintf(out, "  tags:      %s\n", strings.Join(item.TagNames(), ", "))
	}
	fmt.Fprintf(out, "  height:    %d\n", item.Height)
	fmt.Fprintf(out, "  weight:    %d\n", item.Weight)
	for _, a := range item.Abilities {
		hidden := ""
		if a.Hidden {
			hidden = " (hidden)"
		}
		fmt.Fprintf(out, "  ability:   %s%s\n", a.Name, hidden)
	}
	for _, s := range item.Stats {
		fmt.Fprintf(out, "  %-10s %d\n", s.Name+":", s.Base)
	}
	if note != "" {
		fmt.Fprintf(out, "  note:      %s\n", note)
	}
}
