package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/cutline/internal/config"
	"github.com/papapumpkin/cutline/internal/ui"
	"github.com/papapumpkin/cutline/internal/zoom"
)

var zoomCmd = &cobra.Command{
	Use:   "zoom",
	Short: "Print the zoom levels",
	Long:  "Print every zoom level with its major tick spacing and pixels per second. The configured level is marked.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ui.NewWriter(cmd.OutOrStdout()).ZoomTable(zoom.Level(cfg.Zoom))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(zoomCmd)
}
