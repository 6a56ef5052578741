package models

import (
	"log/slog"
	"math"
	"time"

	"github.com/TFMV/hypergraph/graph"
	"github.com/TFMV/hypergraph/hyperbolic"
	"github.com/google/uuid"
)

// NewGraph generates a random graph. Callers must pass NodeCount >= 1 and
// CircleDivision >= 1; the configuration layer enforces this.
func NewGraph(params Params, rng Rand, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Graph{
		ID:        uuid.New().String(),
		Params:    params,
		Nodes:     make([]Node, 0, params.NodeCount),
		CreatedAt: time.Now(),
		adjacency: graph.NewAdjacency(params.NodeCount),
		dragStart: hyperbolic.Origin,
		logger:    logger,
	}

	for i := 0; i < params.NodeCount; i++ {
		g.Nodes = append(g.Nodes, newNode(i, params.CircleDivision, params.CircleRadius, rng))
	}

	fill := math.Min(math.Abs(params.EdgeFillPercent), 100)
	n := float64(params.NodeCount)
	target := int(n * (n - 1) / 2 * (fill / 100))
	for added := 0; added < target; {
		start := rng.Intn(params.NodeCount)
		end := randomIndexExcept(rng, params.NodeCount, start)
		if g.adjacency.Add(start, end) {
			added++
		}
	}

	g.initial = cloneNodes(g.Nodes)

	logger.Info("graph generated",
		slog.String("graph_id", g.ID),
		slog.Int("nodes", params.NodeCount),
		slog.Int("circle_divisions", params.CircleDivision),
		slog.Float64("circle_radius", params.CircleRadius),
		slog.Int("edges", target),
		slog.Float64("fill_percent", fill),
	)
	return g
}

// newNode places a node at a random point within radius 2 of the origin
// before lifting, and builds its boundary ring around the origin before
// carrying it to the center.
func newNode(index, divisions int, radius float64, rng Rand) Node {
	r := 2 * rng.Float64()
	angle := 2 * math.Pi * rng.Float64()
	center := hyperbolic.Lift(r*math.Cos(angle), r*math.Sin(angle))

	boundary := make([]hyperbolic.Point, divisions)
	for k := range boundary {
		theta := 2 * math.Pi * float64(k) / float64(divisions)
		seed := hyperbolic.Lift(radius*math.Cos(theta), radius*math.Sin(theta))
		boundary[k] = hyperbolic.Transport(hyperbolic.Origin, center, seed)
	}

	return Node{
		Index:    index,
		Center:   center,
		Boundary: boundary,
		Color: Color{
			R: rng.Float64() + 0.1,
			G: rng.Float64() + 0.1,
			B: rng.Float64() + 0.1,
		},
	}
}

// randomIndexExcept draws indices in [0, n) until one differs from exclude.
func randomIndexExcept(rng Rand, n, exclude int) int {
	for {
		if i := rng.Intn(n); i != exclude {
			return i
		}
	}
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	n.Boundary = append(make([]hyperbolic.Point, 0, len(n.Boundary)), n.Boundary...)
	return n
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// transport carries the center and every boundary point of the node through
// the isometry moving start onto end.
func (n *Node) transport(start, end hyperbolic.Point) {
	n.Center = hyperbolic.Transport(start, end, n.Center)
	for k, p := range n.Boundary {
		n.Boundary[k] = hyperbolic.Transport(start, end, p)
	}
}

// Push moves node i rigidly by the isometry carrying start onto end. Both
// endpoints are lifted from their x and y first, so end may be an arbitrary
// point near the hyperboloid such as a center displaced by a force.
func (g *Graph) Push(i int, start, end hyperbolic.Point) {
	g.Nodes[i].transport(hyperbolic.Lift(start.X, start.Y), hyperbolic.Lift(end.X, end.Y))
}

// BeginDrag records the anchor of a new drag gesture.
func (g *Graph) BeginDrag(p hyperbolic.Point) {
	g.dragStart = p
}

// ContinueDrag moves the whole graph by the isometry carrying the previous
// anchor onto p, then makes p the new anchor.
func (g *Graph) ContinueDrag(p hyperbolic.Point) {
	for i := range g.Nodes {
		g.Nodes[i].transport(g.dragStart, p)
	}
	g.dragStart = p
}

// DragAnchor returns the current drag anchor.
func (g *Graph) DragAnchor() hyperbolic.Point {
	return g.dragStart
}

// Restore resets every node to its position at construction.
func (g *Graph) Restore() {
	g.Nodes = cloneNodes(g.initial)
}

// Snapshot returns a deep copy of the layout taken at construction.
func (g *Graph) Snapshot() []Node {
	return cloneNodes(g.initial)
}
