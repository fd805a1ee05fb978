package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/trovecli/trove/internal/catalog"
	"github.com/trovecli/trove/internal/config"
	"github.com/trovecli/trove/internal/favorites"
	"github.com/trovecli/trove/internal/kvstore"
)

// NewFavoritesCmd creates the favorites command and its subcommands.
func NewFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage locally stored favorites",
		Long: `Favorites lists and edits the locally stored favorite items.

Examples:
  trove favorites
  trove favorites add pikachu
  trove favorites remove 25
  trove favorites toggle bulbasaur`,
		RunE: runFavoritesList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id|name>",
		Short: "Mark an item as favorite",
		Args:  cobra.ExactArgs(1),
		RunE:  favoritesEdit((*favorites.Store).Add, "added"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id|name>",
		Short: "Unmark a favorite",
		Args:  cobra.ExactArgs(1),
		RunE:  favoritesEdit((*favorites.Store).Remove, "removed"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id|name>",
		Short: "Flip an item's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE:  favoritesEdit((*favorites.Store).Toggle, "toggled"),
	})

	return cmd
}

// runFavoritesList prints every favorite with its resolved name. Names are
// looked up concurrently; items the catalog no longer serves are printed
// by id alone.
func runFavoritesList(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, favs, err := openFavorites(cmd)
	if err != nil {
		return err
	}

	ids := favs.IDs()
	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no favorites yet")
		return nil
	}

	// Each goroutine writes its own slot, so no lock is needed.
	names := make([]string, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			item, err := client.FetchByID(ctx, id)
			if err != nil {
				return nil
			}
			names[i] = item.Name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, id := range ids {
		if names[i] == "" {
			fmt.Fprintf(out, "★ #%d\n", id)
			continue
		}
		fmt.Fprintf(out, "★ #%-4d %s\n", id, names[i])
	}
	return nil
}

// favoritesEdit builds a RunE that resolves the argument against the
// catalog and applies the given mutation to the favorites store.
func favoritesEdit(apply func(*favorites.Store, int), verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, favs, err := openFavorites(cmd)
		if err != nil {
			return err
		}

		item, err := fetchItem(ctx, client, args[0])
		if catalog.IsNotFound(err) {
			return fmt.Errorf("no item matches %q", args[0])
		}
		if err != nil {
			return err
		}

		apply(favs, item.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", verb, item.ID, item.Name)
		return nil
	}
}

// openFavorites wires the catalog client and favorites store from config.
func openFavorites(cmd *cobra.Command) (*catalog.Client, *favorites.Store, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	client, err := catalog.NewClient(cfg.BaseURL, cfg.Collection)
	if err != nil {
		return nil, nil, fmt.Errorf("init catalog client: %w", err)
	}
	kv, err := kvstore.New(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open local storage: %w", err)
	}
	return client, favorites.New(kv, slog.New(slog.DiscardHandler)), nil
}
