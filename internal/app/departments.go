package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/curatorctl/internal/met"
)

func newDepartmentsCmd() *cobra.Command {
	var (
		refresh bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "departments",
		Short: "List the department enumeration used by --department",
		RunE: func(cmd *cobra.Command, args []string) error {
			departments := met.Departments()
			if refresh {
				live, err := client.FetchDepartments(cmd.Context())
				if err != nil {
					return err
				}
				departments = live
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(departments)
			}

			header("── Departments")
			for _, d := range departments {
				fmt.Printf("  %3d  %s\n", d.ID, d.Name)
			}
			fmt.Println()
			header("── Classifications")
			for _, c := range met.Classifications() {
				fmt.Printf("       %s\n", c)
			}
			fmt.Println()
			header("── Geographic locations")
			for _, g := range met.GeoLocations() {
				fmt.Printf("       %s\n", g)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch the live department list from the API")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
