package cmd

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/TFMV/hypergraph/app"
	"github.com/TFMV/hypergraph/config"
	"github.com/TFMV/hypergraph/models"
	"github.com/TFMV/hypergraph/physics"
	"github.com/TFMV/hypergraph/render"
)

// buildApp generates the graph described by c and wraps it in an App drawing
// on canvas. One seeded source feeds both generation and setup, so a seed
// reproduces the whole run.
func buildApp(c *config.Config, canvas app.Canvas, opts ...app.Option) *app.App {
	logger := slog.Default()
	rng := rand.New(rand.NewSource(c.Graph.Seed))
	g := models.NewGraph(c.Params(), rng, logger)
	sim := physics.NewSimulator(g, rng, c.Physics(), logger)

	opts = append([]app.Option{
		app.WithBackground(render.ParseHexColor(c.Render.Background)),
		app.WithLogger(logger),
	}, opts...)
	return app.New(g, sim, canvas, opts...)
}

// tickInterval converts a rate to the period between ticks.
func tickInterval(ticksPerSecond float64) time.Duration {
	return time.Duration(float64(time.Second) / ticksPerSecond)
}
