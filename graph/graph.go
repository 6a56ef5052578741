// Package graph holds the undirected topology of a hyperbolic graph. Nodes are
// addressed by their stable index in the owning node slice.
package graph

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// Edge is an undirected edge with A < B.
type Edge struct {
	A, B int
}

// Adjacency stores the undirected edge set over node indices [0, n).
type Adjacency struct {
	g     *simple.UndirectedGraph
	n     int
	edges int
}

// NewAdjacency creates an edgeless topology over n nodes.
func NewAdjacency(n int) *Adjacency {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	return &Adjacency{g: g, n: n}
}

// Len returns the number of nodes.
func (a *Adjacency) Len() int {
	return a.n
}

// EdgeCount returns the number of undirected edges.
func (a *Adjacency) EdgeCount() int {
	return a.edges
}

// Has reports whether i and j are neighbors.
func (a *Adjacency) Has(i, j int) bool {
	return a.g.HasEdgeBetween(int64(i), int64(j))
}

// Add connects i and j on both endpoints. It returns false for self-loops,
// out-of-range indices and edges that already exist.
func (a *Adjacency) Add(i, j int) bool {
	if i == j || i < 0 || j < 0 || i >= a.n || j >= a.n || a.Has(i, j) {
		return false
	}
	a.g.SetEdge(a.g.NewEdge(simple.Node(i), simple.Node(j)))
	a.edges++
	return true
}

// Neighbors returns the neighbors of i in ascending order.
func (a *Adjacency) Neighbors(i int) []int {
	it := a.g.From(int64(i))
	out := make([]int, 0, it.Len())
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of neighbors of i.
func (a *Adjacency) Degree(i int) int {
	return a.g.From(int64(i)).Len()
}

// Edges returns every undirected edge exactly once, ordered by (A, B).
func (a *Adjacency) Edges() []Edge {
	out := make([]Edge, 0, a.edges)
	for i := 0; i < a.n; i++ {
		for _, j := range a.Neighbors(i) {
			if j > i {
				out = append(out, Edge{A: i, B: j})
			}
		}
	}
	return out
}

// MarshalDOT encodes the topology in Graphviz DOT format.
func (a *Adjacency) MarshalDOT(name string) ([]byte, error) {
	b, err := dot.Marshal(a.g, name, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph as DOT: %w", err)
	}
	return b, nil
}
