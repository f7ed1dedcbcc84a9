package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/curatorctl/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		user  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			if user != "" {
				cfg.User = user
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("Wrote %s", path)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  curatorctl search \"The Laundress\"")
			fmt.Println("  curatorctl            # interactive browser")
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User name owning the favorites")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}
