package cmd

import (
	"github.com/TFMV/hypergraph/tui"
	"github.com/spf13/cobra"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show the graph in the terminal (drag with the mouse, space to relax)",
		RunE: func(cmd *cobra.Command, args []string) error {
			canvas := tui.NewCanvas(80, 30)
			a := buildApp(cfg, canvas)
			return tui.Run(tui.NewModel(a, canvas, tickInterval(cfg.Simulation.TicksPerSecond)))
		},
	}
}
