package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import favorites from a JSON file",
		Long: `Reads a favorites file (a JSON array of artwork objects) and merges it
into the configured user's favorites. Entries with an objectId already in the
store are overwritten by the imported version.

A malformed file is rejected as a whole; the store is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			n, err := store.Import(cfg.EffectiveUser(), data)
			if err != nil {
				return err
			}
			if err := favSet.Reload(); err != nil {
				return err
			}
			ok("Imported %d favorite(s) from %s", n, args[0])
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export favorites as JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := store.Export(cfg.EffectiveUser())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			ok("Exported %d favorite(s) to %s", favSet.Len(), args[0])
			return nil
		},
	}
}
