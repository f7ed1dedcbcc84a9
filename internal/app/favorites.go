package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
	"github.com/blackwell-systems/curatorctl/internal/favorites"
)

func newFavoritesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"ls"},
		Short:   "List the favorited artworks of the configured user",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := store.List(cfg.EffectiveUser())
			if err != nil {
				return err
			}

			if jsonOut {
				if records == nil {
					records = []artwork.Record{}
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				fmt.Println("No favorites yet. Toggle one in the browser or run 'curatorctl favorite <id>'.")
				return nil
			}
			header("── %s  (%d favorite(s))", cfg.EffectiveUser(), len(records))
			for _, r := range records {
				printRecordLine(r)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <object-id>",
		Short: "Fetch an object and add it to the favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := artwork.NormalizeID(args[0])
			if favSet.IsFavorite(id) {
				warn("Object %s is already a favorite", id)
				return nil
			}
			rec, err := client.NewSearch().FetchRecord(cmd.Context(), id)
			if err != nil {
				return err
			}
			status, err := favSet.Toggle(rec)
			if err != nil {
				return err
			}
			if status != favorites.Added {
				return fmt.Errorf("unexpected toggle result %v for %s", status, id)
			}
			ok("Added %q to favorites", rec.Title)
			return nil
		},
	}
}

func newUnfavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfavorite <object-id>",
		Short: "Remove an object from the favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := artwork.NormalizeID(args[0])
			if !favSet.IsFavorite(id) {
				warn("Object %s is not a favorite", id)
				return nil
			}
			if _, err := favSet.Toggle(artwork.Record{ID: id}); err != nil {
				return err
			}
			ok("Removed %s from favorites", id)
			return nil
		},
	}
}
