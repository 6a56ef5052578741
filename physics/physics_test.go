package physics

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/TFMV/hypergraph/hyperbolic"
	"github.com/TFMV/hypergraph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSimulator(t *testing.T, n int, fill float64, seed int64) (*models.Graph, *Simulator) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	params := models.DefaultParams()
	params.NodeCount = n
	params.EdgeFillPercent = fill
	g := models.NewGraph(params, rng, quietLogger())
	return g, NewSimulator(g, rng, DefaultConfig(), quietLogger())
}

func TestConfigDefaults(t *testing.T) {
	_, sim := newTestSimulator(t, 2, 0, 0)
	assert.Equal(t, DefaultConfig(), sim.Config())

	g := models.NewGraph(models.DefaultParams(), rand.New(rand.NewSource(1)), quietLogger())
	custom := NewSimulator(g, rand.New(rand.NewSource(1)), Config{Passes: 5, StepSize: -1}, quietLogger())
	assert.Equal(t, Config{Passes: 5, StepSize: 0.005, PreferredDistance: 0.5}, custom.Config())
}

func TestTickIsIdleUntilSetup(t *testing.T) {
	g, sim := newTestSimulator(t, 6, 30, 0)
	before := g.Centers()

	assert.Equal(t, Idle, sim.State())
	assert.False(t, sim.Tick())
	assert.Equal(t, before, g.Centers())
	assert.Zero(t, sim.Ticks())
}

func TestSetupScattersAlongGeodesicToOrigin(t *testing.T) {
	g, sim := newTestSimulator(t, 8, 20, 0)
	initial := g.Snapshot()

	setups := 0
	sim.OnSetup(func() { setups++ })
	sim.Setup()

	assert.Equal(t, Running, sim.State())
	assert.Equal(t, 1, setups)
	for i, n := range g.Nodes {
		start := initial[i].Center
		moved := hyperbolic.Distance(start, n.Center)
		assert.LessOrEqual(t, moved, 2*hyperbolic.Distance(hyperbolic.Origin, start)+1e-6)
		expected := hyperbolic.GeodesicPoint(start, hyperbolic.Origin, moved)
		assert.InDelta(t, 0, r3.Norm(r3.Sub(expected, n.Center)), 1e-6, "node %d left its geodesic", i)
	}
}

func TestSetupRestartsFromSnapshot(t *testing.T) {
	_, first := newTestSimulator(t, 5, 50, 3)
	g, sim := newTestSimulator(t, 5, 50, 3)

	first.Setup()
	sim.Setup()
	for i := 0; i < 3; i++ {
		sim.Tick()
	}
	require.Equal(t, 3, sim.Ticks())

	// a second Setup restores before scattering, so it matches a fresh run
	// with the same remaining random stream
	first.Setup()
	sim.Setup()
	assert.Zero(t, sim.Ticks())
	assert.Equal(t, first.graph.Centers(), g.Centers())
}

func TestRelaxPreservesHyperboloid(t *testing.T) {
	g, sim := newTestSimulator(t, 10, 30, 0)
	sim.Setup()

	for pass := 0; pass < 60; pass++ {
		sim.Relax()
		for _, n := range g.Nodes {
			require.InDelta(t, 0, hyperbolic.ConstraintError(n.Center), 1e-6, "pass %d node %d", pass, n.Index)
			require.Greater(t, n.Center.Z, 0.0)
			for _, p := range n.Boundary {
				require.InDelta(t, 0, hyperbolic.ConstraintError(p), 1e-6)
			}
		}
	}
}

func TestTickRunsConfiguredPasses(t *testing.T) {
	_, sim := newTestSimulator(t, 6, 40, 0)
	var got []Stats
	sim.OnTick(func(s Stats) { got = append(got, s) })

	sim.Setup()
	require.True(t, sim.Tick())
	require.True(t, sim.Tick())

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Tick)
	assert.Equal(t, 20, got[0].Passes)
	assert.Greater(t, got[0].MeanEdgeLength, 0.0)
	assert.Less(t, got[0].MaxConstraintError, 1e-6)
}

func TestSeededRunsAreIdentical(t *testing.T) {
	a, simA := newTestSimulator(t, 15, 10, 0)
	b, simB := newTestSimulator(t, 15, 10, 0)

	simA.Setup()
	simB.Setup()
	simA.Tick()
	simB.Tick()

	assert.Equal(t, a.Centers(), b.Centers())
	for i := range a.Nodes {
		assert.Equal(t, a.Nodes[i].Boundary, b.Nodes[i].Boundary)
	}
}

func TestConnectedPairSettles(t *testing.T) {
	g, sim := newTestSimulator(t, 2, 100, 0)
	require.True(t, g.HasEdge(0, 1))

	sim.Setup()
	for tick := 0; tick < 50; tick++ {
		sim.Tick()
		d := hyperbolic.Distance(g.Nodes[0].Center, g.Nodes[1].Center)
		require.False(t, math.IsNaN(d))
		require.Less(t, d, 10.0, "tick %d diverged", tick)
	}

	// the connected-pair force vanishes where 3d equals the preferred distance
	d := hyperbolic.Distance(g.Nodes[0].Center, g.Nodes[1].Center)
	assert.InDelta(t, sim.Config().PreferredDistance/3, d, 0.05)
}

func TestForceDirection(t *testing.T) {
	g, sim := newTestSimulator(t, 3, 0, 0)
	g.Nodes[0].Center = hyperbolic.Origin
	g.Nodes[1].Center = hyperbolic.Lift(math.Sinh(0.2), 0)
	g.Nodes[2].Center = hyperbolic.Lift(0, math.Sinh(3))

	// unconnected pairs closer than twice the preferred distance repel
	near := sim.force(0, 1)
	assert.Less(t, near.X, 0.0)
	assert.InDelta(t, (0.2-1)/0.2, -r3.Norm(near), 1e-6)

	// and attract when farther apart
	far := sim.force(0, 2)
	assert.Greater(t, far.Y, 0.0)
	assert.InDelta(t, (3.0-1)/3, r3.Norm(far), 1e-6)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "unknown", State(7).String())
}
