package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPreviewCmd(e *env) *cobra.Command {
	var dir string
	var width int

	cmd := &cobra.Command{
		Use:     "preview <deck.pptx>",
		Short:   "Render every slide of a deck to PNG",
		Example: `  hrslides preview gpec.pptx --out previews --width 640`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := e.app.Deck.Preview(args[0], dir, width)
			if err != nil {
				return err
			}
			for _, f := range files {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "out", "previews", "directory for the PNG files")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels (default from config)")
	return cmd
}
