package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/curatorctl/internal/cache"
	"github.com/blackwell-systems/curatorctl/internal/config"
	"github.com/blackwell-systems/curatorctl/internal/favorites"
	"github.com/blackwell-systems/curatorctl/internal/met"
	"github.com/blackwell-systems/curatorctl/internal/tui"
	"github.com/blackwell-systems/curatorctl/internal/util"
)

var (
	cfg      *config.Config
	client   *met.Client
	store    *favorites.Store
	favSet   *favorites.Set
	cacheMgr *cache.Manager

	flagNoColor       bool
	flagNoInteractive bool
	flagVerbose       bool
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "curatorctl",
	Short: "Browse and curate the Met Museum's open-access collection",
	Long: `curatorctl searches the Metropolitan Museum of Art collection API and
keeps a local, per-user set of favorited artworks in SQLite.

Run 'curatorctl' with no arguments to launch the interactive browser.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runBrowser(met.SearchOptions{})
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	closeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/curatorctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)
		initLogging(flagVerbose)

		if flagConfig != "" {
			_ = os.Setenv("CURATORCTL_CONFIG", flagConfig)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client = met.New(cfg.APIBase,
			met.WithParallelism(cfg.Fetch.Parallelism),
			met.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
		)
		cacheMgr = cache.New(cfg.Storage.CacheDir)

		// init/version/completion run without touching the database.
		switch cmd.Name() {
		case "init", "version", "completion":
			return nil
		}

		store, err = favorites.Open(cfg.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("opening favorites store: %w", err)
		}
		favSet, err = favorites.NewSet(store, cfg.EffectiveUser())
		if err != nil {
			return fmt.Errorf("loading favorites: %w", err)
		}
		slog.Debug("favorites loaded", "user", cfg.EffectiveUser(), "count", favSet.Len())
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newSearchCmd(),
		newFavoritesCmd(),
		newFavoriteCmd(),
		newUnfavoriteCmd(),
		newImportCmd(),
		newExportCmd(),
		newShowCmd(),
		newDepartmentsCmd(),
		newCacheCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
}

// initLogging installs the tint slog handler. Debug output is opt-in; the
// normal CLI surface stays on the color helpers below.
func initLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    color.NoColor,
	})))
}

func closeStore() {
	if store != nil {
		_ = store.Close()
		store = nil
	}
}

// runBrowser opens the interactive browser seeded with the configured
// search defaults merged over opts.
func runBrowser(opts met.SearchOptions) error {
	opts = applySearchDefaults(opts)
	return tui.RunBrowser(tui.BrowserConfig{
		Client:  client,
		Store:   store,
		Set:     favSet,
		Cache:   cacheMgr,
		Options: opts,
	})
}

// applySearchDefaults fills unset filter fields from the config.
func applySearchDefaults(opts met.SearchOptions) met.SearchOptions {
	if opts.DepartmentID == 0 && cfg.Search.Department != "" {
		if id, ok := met.DepartmentID(cfg.Search.Department); ok {
			opts.DepartmentID = id
		}
	}
	if opts.Classification == "" {
		opts.Classification = cfg.Search.Classification
	}
	if !opts.OnView {
		opts.OnView = cfg.Search.OnView
	}
	if !opts.TitleSearch {
		opts.TitleSearch = cfg.Search.TitleSearch
	}
	return opts
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
