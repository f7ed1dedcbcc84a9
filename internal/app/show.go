package app

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
	"github.com/blackwell-systems/curatorctl/internal/tui"
)

func newShowCmd() *cobra.Command {
	var withImage bool

	cmd := &cobra.Command{
		Use:   "show <object-id>",
		Short: "Show one object's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := artwork.NormalizeID(args[0])
			rec, err := client.NewSearch().FetchRecord(cmd.Context(), id)
			if err != nil {
				return err
			}

			header("── %s", rec.Title)
			printField("Object ID", rec.ID)
			printField("Artist", rec.Artist)
			printField("Nationality", rec.Nationality)
			printField("Date", rec.Date)
			printField("Medium", rec.Medium)
			printField("Image", rec.ImageURL)
			if favSet.IsFavorite(rec.ID) {
				fmt.Println(color.YellowString("  ★ favorited"))
			}

			if !withImage || rec.ImageURL == "" {
				return nil
			}

			protocol := tui.DetectImageProtocol()
			if protocol == tui.ProtocolNone {
				warn("Terminal has no inline image support")
				return nil
			}
			data, err := cacheMgr.Read(rec.ID)
			if err != nil {
				data, err = client.FetchImage(cmd.Context(), rec.ImageURL)
				if err != nil {
					// Image failures stay isolated from the detail output.
					warn("Could not load image: %v", err)
					return nil
				}
				_, _ = cacheMgr.Store(rec.ID, bytes.NewReader(data))
			}
			fmt.Println(tui.RenderInlineImageBytes(data, protocol))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withImage, "image", false, "Render the primary image inline (kitty/iTerm2)")
	return cmd
}

func printField(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-12s %s\n", color.CyanString(name+":"), value)
}
