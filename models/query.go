package models

import (
	"math"

	"github.com/TFMV/hypergraph/graph"
	"github.com/TFMV/hypergraph/hyperbolic"
)

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// HasEdge reports whether nodes i and j are neighbors.
func (g *Graph) HasEdge(i, j int) bool {
	return g.adjacency.Has(i, j)
}

// Neighbors returns the indices adjacent to node i in ascending order.
func (g *Graph) Neighbors(i int) []int {
	return g.adjacency.Neighbors(i)
}

// Degree returns the number of neighbors of node i.
func (g *Graph) Degree(i int) int {
	return g.adjacency.Degree(i)
}

// Edges returns each undirected edge once.
func (g *Graph) Edges() []graph.Edge {
	return g.adjacency.Edges()
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.adjacency.EdgeCount()
}

// Topology exposes the adjacency, e.g. for DOT export.
func (g *Graph) Topology() *graph.Adjacency {
	return g.adjacency
}

// Centers returns the current node centers in index order.
func (g *Graph) Centers() []hyperbolic.Point {
	out := make([]hyperbolic.Point, len(g.Nodes))
	for i := range g.Nodes {
		out[i] = g.Nodes[i].Center
	}
	return out
}

// MaxConstraintError returns the largest distance from the hyperboloid over
// every center and boundary point.
func (g *Graph) MaxConstraintError() float64 {
	worst := 0.0
	for i := range g.Nodes {
		worst = math.Max(worst, hyperbolic.ConstraintError(g.Nodes[i].Center))
		for _, p := range g.Nodes[i].Boundary {
			worst = math.Max(worst, hyperbolic.ConstraintError(p))
		}
	}
	return worst
}

// MeanEdgeLength returns the average hyperbolic length of the edges, or 0 for
// an edgeless graph.
func (g *Graph) MeanEdgeLength() float64 {
	edges := g.Edges()
	if len(edges) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range edges {
		total += hyperbolic.Distance(g.Nodes[e.A].Center, g.Nodes[e.B].Center)
	}
	return total / float64(len(edges))
}
