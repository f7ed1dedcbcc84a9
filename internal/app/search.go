package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
	"github.com/blackwell-systems/curatorctl/internal/met"
	"github.com/blackwell-systems/curatorctl/internal/tui"
)

func newSearchCmd() *cobra.Command {
	var (
		department     string
		classification string
		geoLocation    string
		onView         bool
		highlight      bool
		titleSearch    bool
		artistCulture  bool
		dateBegin      int
		dateEnd        int
		limit          int
		jsonOut        bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the collection and browse the results",
		Long: `Search the Met collection API. The search always requires an image
(hasImages=true); narrow it further with the filter flags.

On a terminal the results open in the interactive browser, where favorites
can be toggled. With --json or piped output a flat listing is printed.

Examples:
  curatorctl search "The Laundress"
  curatorctl search Daumier --department "European Paintings" --on-view
  curatorctl search vase --classification Vases --date-begin -800 --date-end 200
  curatorctl search sunflowers --json | jq '.[].objectId'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := met.SearchOptions{
				Query:           args[0],
				TitleSearch:     titleSearch,
				OnView:          onView,
				Highlight:       highlight,
				ArtistOrCulture: artistCulture,
			}
			if department != "" {
				id, found := met.DepartmentID(department)
				if !found {
					return fmt.Errorf("unknown department %q — run 'curatorctl departments'", department)
				}
				opts.DepartmentID = id
			}
			if classification != "" {
				opts.Classification = classification
			}
			if geoLocation != "" {
				opts.GeoLocation = geoLocation
			}
			if cmd.Flags().Changed("date-begin") || cmd.Flags().Changed("date-end") {
				opts.DateBegin = dateBegin
				opts.DateEnd = dateEnd
				opts.HasDateRange = true
			}

			if tui.ShouldUseTUI(cmd) {
				return runBrowser(opts)
			}
			return runSearchText(cmd.Context(), opts, limit, jsonOut)
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "Filter by department display name")
	cmd.Flags().StringVar(&classification, "classification", "", "Filter by classification (e.g. Paintings)")
	cmd.Flags().StringVar(&geoLocation, "geo-location", "", "Filter by geographic location (e.g. France)")
	cmd.Flags().BoolVar(&onView, "on-view", false, "Only objects currently on view")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "Only collection highlights")
	cmd.Flags().BoolVar(&titleSearch, "title", false, "Match the query against titles only")
	cmd.Flags().BoolVar(&artistCulture, "artist-or-culture", false, "Match the query against artist or culture")
	cmd.Flags().IntVar(&dateBegin, "date-begin", 0, "Start year (negative for BCE)")
	cmd.Flags().IntVar(&dateEnd, "date-end", 0, "End year")
	cmd.Flags().IntVar(&limit, "limit", 0, "Cap the number of detail fetches (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

// runSearchText runs the full pipeline and prints a flat listing.
func runSearchText(ctx context.Context, opts met.SearchOptions, limit int, jsonOut bool) error {
	req := client.NewSearchWith(opts)
	slog.Debug("search", "params", req.Encode())

	ids, err := req.FetchIdentifiers(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		if jsonOut {
			fmt.Println("[]")
			return nil
		}
		fmt.Println("No objects found.")
		return nil
	}
	if limit > 0 && len(ids) > limit {
		warn("Showing %d of %d matches", limit, len(ids))
		ids = ids[:limit]
	}

	// FetchAll would re-run the identifier search, doubling the search call,
	// so fan out over the ids fetched above (trimmed when a limit applies).
	records, err := req.FetchRecords(ctx, ids)
	if err != nil {
		return err
	}

	artwork.SortByTitle(records)

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	header("── %d result(s)", len(records))
	for _, r := range records {
		printRecordLine(r)
	}
	return nil
}

func printRecordLine(r artwork.Record) {
	star := " "
	if favSet != nil && favSet.IsFavorite(r.ID) {
		star = color.YellowString("★")
	}
	meta := r.Artist
	if r.Date != "" {
		if meta != "" {
			meta += ", "
		}
		meta += r.Date
	}
	fmt.Printf("  %s %-10s  %s  %s\n",
		star,
		color.WhiteString(r.ID),
		r.Title,
		color.CyanString(meta),
	)
}
