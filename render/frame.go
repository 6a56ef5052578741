package render

import (
	"github.com/TFMV/hypergraph/graph"
	"github.com/TFMV/hypergraph/hyperbolic"
	"github.com/TFMV/hypergraph/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// Mode is the primitive a draw call rasterizes.
type Mode int

const (
	// Lines treats consecutive vertex pairs as segments.
	Lines Mode = iota
	// TriangleFan fills the closed polygon through the vertices.
	TriangleFan
)

// EdgeColor is the flat color of the edge line list.
var EdgeColor = models.Color{R: 1, G: 1, B: 0}

// DrawCall is one flat-colored primitive batch in disk coordinates.
type DrawCall struct {
	Mode     Mode
	Vertices []r2.Vec
	Color    models.Color
}

// Frame is an immutable, fully projected picture of a graph. It may be shared
// across goroutines once built.
type Frame struct {
	GraphID    string
	Tick       int
	State      string
	Background models.Color
	Centers    []r2.Vec
	Colors     []models.Color
	Edges      []graph.Edge
	Calls      []DrawCall
	Topology   *graph.Adjacency
}

// BuildFrame projects g into draw calls: one line list holding every edge
// once, followed by one triangle fan per node boundary ring.
func BuildFrame(g *models.Graph, background models.Color) *Frame {
	f := &Frame{
		GraphID:    g.ID,
		Background: background,
		Centers:    make([]r2.Vec, g.Len()),
		Colors:     make([]models.Color, g.Len()),
		Edges:      g.Edges(),
		Calls:      make([]DrawCall, 0, g.Len()+1),
		Topology:   g.Topology(),
	}
	for i := range g.Nodes {
		f.Centers[i] = hyperbolic.Project(g.Nodes[i].Center)
		f.Colors[i] = g.Nodes[i].Color
	}

	lines := make([]r2.Vec, 0, 2*len(f.Edges))
	for _, e := range f.Edges {
		lines = append(lines, f.Centers[e.A], f.Centers[e.B])
	}
	f.Calls = append(f.Calls, DrawCall{Mode: Lines, Vertices: lines, Color: EdgeColor})

	for i := range g.Nodes {
		ring := make([]r2.Vec, len(g.Nodes[i].Boundary))
		for k, p := range g.Nodes[i].Boundary {
			ring[k] = hyperbolic.Project(p)
		}
		f.Calls = append(f.Calls, DrawCall{Mode: TriangleFan, Vertices: ring, Color: g.Nodes[i].Color})
	}
	return f
}
