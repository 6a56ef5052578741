// Package render turns a hyperbolic graph into projected draw calls and
// exports them in several formats.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// OutputOptions defines rendering configuration options
type OutputOptions struct {
	Format         string  // Output format (svg, ascii, json, dot)
	Width          float64 // Width of the output
	Height         float64 // Height of the output
	NoiseIntensity float64 // Color shimmer on node fills (0.0-1.0)
	NoiseSeed      int64   // Seed of the shimmer noise field
	Timestamp      bool    // Include timestamp in visualization
	ShowLabels     bool    // Show node indices
	EdgeWidth      float64 // Stroke width of edges
	FontSize       float64 // Font size for labels
}

// Renderer interface defines methods that all rendering backends must implement
type Renderer interface {
	// Render creates a visualization of the frame using the provided options
	Render(frame *Frame, options *OutputOptions) ([]byte, error)

	// Name returns the name of the renderer
	Name() string

	// Description returns a description of the renderer
	Description() string
}

// NewDefaultOptions creates a default set of output options
func NewDefaultOptions(format string) *OutputOptions {
	return &OutputOptions{
		Format:     format,
		Width:      600,
		Height:     600,
		Timestamp:  false,
		ShowLabels: false,
		EdgeWidth:  1.0,
		FontSize:   10.0,
	}
}

// Formats lists the names accepted by GetRenderer.
var Formats = []string{"svg", "ascii", "json", "dot"}

// GetRenderer returns the appropriate renderer based on format
func GetRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "svg":
		return &SVGRenderer{}, nil
	case "ascii":
		return &ASCIIRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "dot":
		return &DOTRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// viewport maps disk coordinates in [-1, 1]² onto a width×height canvas with
// y pointing down.
type viewport struct {
	width, height float64
}

func (v viewport) point(p r2.Vec) (float64, float64) {
	return (p.X + 1) / 2 * v.width, (1 - p.Y) / 2 * v.height
}

// SVGRenderer outputs SVG format
type SVGRenderer struct{}

// Name returns the name of the renderer
func (r *SVGRenderer) Name() string {
	return "SVG Renderer"
}

// Description returns a description of the renderer
func (r *SVGRenderer) Description() string {
	return "Renders the projected disk as Scalable Vector Graphics"
}

// Render creates an SVG representation of the frame
func (r *SVGRenderer) Render(frame *Frame, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer
	vp := viewport{width: options.Width, height: options.Height}
	shimmer := NewShimmer(options.NoiseSeed, options.NoiseIntensity)

	fmt.Fprintf(&buf, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%g" height="%g" viewBox="0 0 %g %g" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, options.Width, options.Height, options.Width, options.Height, Hex(frame.Background))

	// Disk boundary
	cx, cy := vp.point(r2.Vec{})
	fmt.Fprintf(&buf, `<ellipse cx="%g" cy="%g" rx="%g" ry="%g" fill="none" stroke="#333333" stroke-width="1"/>
`, cx, cy, options.Width/2, options.Height/2)

	for _, call := range frame.Calls {
		switch call.Mode {
		case Lines:
			for k := 0; k+1 < len(call.Vertices); k += 2 {
				x1, y1 := vp.point(call.Vertices[k])
				x2, y2 := vp.point(call.Vertices[k+1])
				fmt.Fprintf(&buf, `<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s" stroke-width="%g"/>
`, x1, y1, x2, y2, Hex(call.Color), options.EdgeWidth)
			}
		case TriangleFan:
			if len(call.Vertices) == 0 {
				continue
			}
			points := make([]string, len(call.Vertices))
			for k, v := range call.Vertices {
				x, y := vp.point(v)
				points[k] = fmt.Sprintf("%.3f,%.3f", x, y)
			}
			fill := shimmer.Apply(call.Color, call.Vertices[0], float64(frame.Tick)*0.05)
			fmt.Fprintf(&buf, `<polygon points="%s" fill="%s"/>
`, strings.Join(points, " "), Hex(fill))
		}
	}

	if options.ShowLabels {
		for i, c := range frame.Centers {
			x, y := vp.point(c)
			fmt.Fprintf(&buf, `<text x="%.3f" y="%.3f" font-family="sans-serif" font-size="%g" fill="#cccccc" text-anchor="middle">%d</text>
`, x, y-options.FontSize/2, options.FontSize, i)
		}
	}

	if options.Timestamp {
		fmt.Fprintf(&buf, `<text x="5" y="%g" font-family="sans-serif" font-size="8" fill="#808080">%s</text>
`, options.Height-5, time.Now().Format("2006-01-02 15:04:05"))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// JSONRenderer outputs raw JSON format
type JSONRenderer struct{}

// Name returns the name of the renderer
func (r *JSONRenderer) Name() string {
	return "JSON Renderer"
}

// Description returns a description of the renderer
func (r *JSONRenderer) Description() string {
	return "Renders projected node positions, rings and edges as JSON"
}

type jsonNode struct {
	Index    int          `json:"index"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Color    string       `json:"color"`
	Boundary [][2]float64 `json:"boundary"`
}

type jsonEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

type jsonFrame struct {
	ID       string         `json:"id"`
	GraphID  string         `json:"graph_id"`
	Nodes    []jsonNode     `json:"nodes"`
	Edges    []jsonEdge     `json:"edges"`
	Metadata map[string]any `json:"metadata"`
}

// Render creates a JSON representation of the frame
func (r *JSONRenderer) Render(frame *Frame, options *OutputOptions) ([]byte, error) {
	data := jsonFrame{
		ID:      uuid.New().String(),
		GraphID: frame.GraphID,
		Nodes:   make([]jsonNode, 0, len(frame.Centers)),
		Edges:   make([]jsonEdge, 0, len(frame.Edges)),
		Metadata: map[string]any{
			"tick":      frame.Tick,
			"state":     frame.State,
			"nodeCount": len(frame.Centers),
			"edgeCount": len(frame.Edges),
		},
	}
	if options.Timestamp {
		data.Metadata["timestamp"] = time.Now().Format(time.RFC3339)
	}

	rings := frame.Calls
	if len(rings) > 0 && rings[0].Mode == Lines {
		rings = rings[1:]
	}
	for i, c := range frame.Centers {
		node := jsonNode{Index: i, X: c.X, Y: c.Y, Color: Hex(frame.Colors[i])}
		if i < len(rings) {
			node.Boundary = make([][2]float64, len(rings[i].Vertices))
			for k, v := range rings[i].Vertices {
				node.Boundary[k] = [2]float64{v.X, v.Y}
			}
		}
		data.Nodes = append(data.Nodes, node)
	}
	for _, e := range frame.Edges {
		data.Edges = append(data.Edges, jsonEdge{Source: e.A, Target: e.B})
	}

	return json.MarshalIndent(data, "", "  ")
}

// DOTRenderer outputs Graphviz DOT format
type DOTRenderer struct{}

// Name returns the name of the renderer
func (r *DOTRenderer) Name() string {
	return "DOT Renderer"
}

// Description returns a description of the renderer
func (r *DOTRenderer) Description() string {
	return "Renders the graph topology in Graphviz DOT format"
}

// Render creates a DOT representation of the frame's topology
func (r *DOTRenderer) Render(frame *Frame, options *OutputOptions) ([]byte, error) {
	if frame.Topology == nil {
		return nil, fmt.Errorf("frame has no topology")
	}
	return frame.Topology.MarshalDOT("hypergraph")
}

// clamp a value between lo and hi
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// toCell converts a disk coordinate to a grid cell.
func toCell(p r2.Vec, cols, rows int) (int, int) {
	x := int(math.Floor((p.X + 1) / 2 * float64(cols)))
	y := int(math.Floor((1 - p.Y) / 2 * float64(rows)))
	return clamp(x, 0, cols-1), clamp(y, 0, rows-1)
}
