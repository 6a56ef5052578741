package cmd

import (
	"math"

	"github.com/TFMV/hypergraph/window"
	"github.com/spf13/cobra"
)

func windowCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the graph in a desktop window (drag to move, space to relax)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("width") {
				cfg.Window.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Window.Height = height
			}

			w := window.New(window.Options{
				Width:          cfg.Window.Width,
				Height:         cfg.Window.Height,
				Title:          cfg.Window.Title,
				TicksPerSecond: int(math.Round(cfg.Simulation.TicksPerSecond)),
			})
			return w.Run(buildApp(cfg, w))
		},
	}

	cmd.Flags().IntVar(&width, "width", 600, "Window width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "Window height in pixels")
	return cmd
}
