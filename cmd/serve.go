package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TFMV/hypergraph/app"
	"github.com/TFMV/hypergraph/config"
	"github.com/TFMV/hypergraph/metrics"
	"github.com/TFMV/hypergraph/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var (
		addr  string
		idle  bool
		ticks int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation headless and serve snapshots and metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, reg, err := newServer(cfg)
			if err != nil {
				return err
			}

			a := buildApp(cfg, nil, app.WithMetrics(reg), app.WithPublisher(srv.Publish))
			if !idle {
				a.OnKeySetup()
			}

			fmt.Fprintf(os.Stderr, "%s serving on %s\n", Brand.Sprint("hypergraph"), Subtle.Sprint("http://"+cfg.Server.Addr))

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(ctx)
			})
			g.Go(func() error {
				err := server.RunLoop(ctx, a, cfg.Simulation.TicksPerSecond, ticks)
				slog.Info("simulation loop stopped", slog.Int("ticks", a.Simulator().Ticks()))
				return err
			})
			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Listen address")
	cmd.Flags().BoolVar(&idle, "idle", false, "Serve the initial layout without starting the relaxation")
	cmd.Flags().IntVar(&ticks, "max-ticks", 0, "Stop relaxing after this many ticks (0 runs until interrupted)")
	return cmd
}

// newServer builds the HTTP server for cfg on the process-wide metrics
// registry.
func newServer(cfg *config.Config) (*server.Server, *metrics.Registry, error) {
	shutdown, err := time.ParseDuration(cfg.Server.ShutdownTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("shutdown timeout: %w", err)
	}

	reg := metrics.DefaultRegistry()
	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: shutdown,
		NoiseIntensity:  cfg.Render.NoiseIntensity,
		ShowLabels:      cfg.Render.ShowLabels,
	}, reg, slog.Default())
	return srv, reg, nil
}
