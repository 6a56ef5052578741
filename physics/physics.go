// Package physics runs the force-directed relaxation of a hyperbolic graph.
package physics

import (
	"log/slog"
	"time"

	"github.com/TFMV/hypergraph/hyperbolic"
	"github.com/TFMV/hypergraph/models"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is the lifecycle state of a Simulator.
type State int

const (
	// Idle means no simulation has been set up yet.
	Idle State = iota
	// Running means every Tick performs relaxation passes.
	Running
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Config holds the tunable constants of the relaxation.
type Config struct {
	// Passes is the number of relaxation passes per tick. Default 20.
	Passes int `json:"passes" toml:"passes" yaml:"passes"`
	// StepSize scales the accumulated force into a displacement. Default 0.005.
	StepSize float64 `json:"step_size" toml:"step_size" yaml:"step_size"`
	// PreferredDistance is the target spacing of the spring model. Default 0.5.
	PreferredDistance float64 `json:"preferred_distance" toml:"preferred_distance" yaml:"preferred_distance"`
}

// DefaultConfig returns the stock relaxation constants.
func DefaultConfig() Config {
	return Config{
		Passes:            20,
		StepSize:          0.005,
		PreferredDistance: 0.5,
	}
}

// withDefaults replaces non-positive values with their defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Passes <= 0 {
		c.Passes = d.Passes
	}
	if c.StepSize <= 0 {
		c.StepSize = d.StepSize
	}
	if c.PreferredDistance <= 0 {
		c.PreferredDistance = d.PreferredDistance
	}
	return c
}

// Stats summarizes one tick.
type Stats struct {
	Tick               int
	Passes             int
	Duration           time.Duration
	MeanEdgeLength     float64
	MaxConstraintError float64
}

// Simulator drives the relaxation of a graph. It is not safe for concurrent
// use; the owner of the event loop calls every method.
type Simulator struct {
	graph  *models.Graph
	rng    models.Rand
	config Config
	state  State
	ticks  int
	logger *slog.Logger

	onSetup func()
	onTick  func(Stats)
}

// NewSimulator creates an idle simulator over g. rng is used by Setup to
// scatter the nodes.
func NewSimulator(g *models.Graph, rng models.Rand, config Config, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		graph:  g,
		rng:    rng,
		config: config.withDefaults(),
		state:  Idle,
		logger: logger,
	}
}

// OnSetup registers a callback run after every Setup.
func (s *Simulator) OnSetup(fn func()) {
	s.onSetup = fn
}

// OnTick registers a callback receiving the stats of every tick.
func (s *Simulator) OnTick(fn func(Stats)) {
	s.onTick = fn
}

// Config returns the effective configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// State returns the current lifecycle state.
func (s *Simulator) State() State {
	return s.state
}

// Ticks returns the number of ticks run since the last Setup.
func (s *Simulator) Ticks() int {
	return s.ticks
}

// Setup restores the initial layout, scatters every node along its geodesic
// through the origin by a random distance in [0, 2·d(origin, node)] and
// starts the simulation.
func (s *Simulator) Setup() {
	s.graph.Restore()
	for i := range s.graph.Nodes {
		center := s.graph.Nodes[i].Center
		shift := s.rng.Float64() * 2 * hyperbolic.Distance(hyperbolic.Origin, center)
		s.graph.Push(i, center, hyperbolic.GeodesicPoint(center, hyperbolic.Origin, shift))
	}
	s.state = Running
	s.ticks = 0

	s.logger.Info("simulation set up",
		slog.String("graph_id", s.graph.ID),
		slog.Int("nodes", s.graph.Len()),
		slog.Int("passes_per_tick", s.config.Passes),
	)
	if s.onSetup != nil {
		s.onSetup()
	}
}

// Tick runs Config.Passes relaxation passes when the simulator is running. It
// reports whether any work was done.
func (s *Simulator) Tick() bool {
	if s.state != Running {
		return false
	}

	start := time.Now()
	for i := 0; i < s.config.Passes; i++ {
		s.Relax()
	}
	s.ticks++

	stats := Stats{
		Tick:               s.ticks,
		Passes:             s.config.Passes,
		Duration:           time.Since(start),
		MeanEdgeLength:     s.graph.MeanEdgeLength(),
		MaxConstraintError: s.graph.MaxConstraintError(),
	}
	s.logger.Debug("relaxation tick",
		slog.Int("tick", stats.Tick),
		slog.Duration("duration", stats.Duration),
		slog.Float64("mean_edge_length", stats.MeanEdgeLength),
		slog.Float64("max_constraint_error", stats.MaxConstraintError),
	)
	if s.onTick != nil {
		s.onTick(stats)
	}
	return true
}

// Relax performs one relaxation pass: every force is computed from the
// positions at the start of the pass, then every node is pushed.
func (s *Simulator) Relax() {
	nodes := s.graph.Nodes
	for i := range nodes {
		nodes[i].Force = r3.Vec{}
	}

	for i := range nodes {
		for j := range nodes {
			if i == j {
				continue
			}
			nodes[i].Force = r3.Add(nodes[i].Force, s.force(i, j))
		}
	}

	for i := range nodes {
		center := nodes[i].Center
		s.graph.Push(i, center, r3.Add(center, r3.Scale(s.config.StepSize, nodes[i].Force)))
	}
}

// force returns the contribution of node j to the force on node i. Neighbors
// use (3d − pref)/d·2, every other pair (d − 2·pref)/d, both along the
// tangent from i towards j.
func (s *Simulator) force(i, j int) r3.Vec {
	ci := s.graph.Nodes[i].Center
	cj := s.graph.Nodes[j].Center
	d := hyperbolic.Distance(ci, cj)
	pref := s.config.PreferredDistance

	var magnitude float64
	if s.graph.HasEdge(i, j) {
		magnitude = (3*d - pref) / d * 2
	} else {
		magnitude = (d - 2*pref) / d
	}
	return r3.Scale(magnitude, hyperbolic.TangentDirection(ci, cj))
}
