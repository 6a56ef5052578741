// Package models provides the graph model of the hypergraph application: nodes
// living on the hyperboloid, their fixed topology and the initial layout the
// simulation restarts from.
package models

import (
	"log/slog"
	"time"

	"github.com/TFMV/hypergraph/graph"
	"github.com/TFMV/hypergraph/hyperbolic"
	"gonum.org/v1/gonum/spatial/r3"
)

// Color is a flat RGB color with channels nominally in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Node represents a graph vertex: a center on the hyperboloid surrounded by a
// ring of boundary points approximating a small hyperbolic disk.
type Node struct {
	Index    int                `json:"index"`
	Center   hyperbolic.Point   `json:"center"`
	Boundary []hyperbolic.Point `json:"boundary"`
	Color    Color              `json:"color"`
	Force    r3.Vec             `json:"-"` // Reset at the start of every relaxation pass
}

// Params are the construction parameters of a Graph. They are fixed for the
// lifetime of the graph.
type Params struct {
	NodeCount       int
	CircleDivision  int
	CircleRadius    float64
	EdgeFillPercent float64
}

// DefaultParams returns the parameters of the stock demo graph.
func DefaultParams() Params {
	return Params{
		NodeCount:       50,
		CircleDivision:  20,
		CircleRadius:    0.025,
		EdgeFillPercent: 5,
	}
}

// Rand is the random source used for generation and scattering.
// *rand.Rand from math/rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Graph owns the nodes, their adjacency and the snapshot of the layout taken
// right after construction.
type Graph struct {
	ID        string
	Params    Params
	Nodes     []Node
	CreatedAt time.Time

	adjacency *graph.Adjacency
	initial   []Node
	dragStart hyperbolic.Point
	logger    *slog.Logger
}
