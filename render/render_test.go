package render

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/TFMV/hypergraph/graph"
	"github.com/TFMV/hypergraph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func testGraph(t *testing.T, n int, fill float64) *models.Graph {
	t.Helper()
	params := models.DefaultParams()
	params.NodeCount = n
	params.EdgeFillPercent = fill
	return models.NewGraph(params, rand.New(rand.NewSource(0)), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuildFrame(t *testing.T) {
	g := testGraph(t, 10, 30)
	f := BuildFrame(g, models.Color{})

	require.Len(t, f.Calls, 1+g.Len())
	assert.Equal(t, Lines, f.Calls[0].Mode)
	assert.Equal(t, EdgeColor, f.Calls[0].Color)
	assert.Len(t, f.Calls[0].Vertices, 2*g.EdgeCount())

	seen := map[graph.Edge]bool{}
	for _, e := range f.Edges {
		assert.Less(t, e.A, e.B)
		assert.False(t, seen[e], "edge %v emitted twice", e)
		seen[e] = true
	}
	assert.Len(t, seen, g.EdgeCount())

	for i, call := range f.Calls[1:] {
		assert.Equal(t, TriangleFan, call.Mode)
		assert.Equal(t, g.Nodes[i].Color, call.Color)
		assert.Len(t, call.Vertices, g.Params.CircleDivision)
		for _, v := range call.Vertices {
			assert.Less(t, r2.Norm(v), 1.0)
		}
	}
}

func TestHexAndParse(t *testing.T) {
	tests := []struct {
		name  string
		color models.Color
		hex   string
	}{
		{"black", models.Color{}, "#000000"},
		{"yellow", EdgeColor, "#ffff00"},
		{"clamped", models.Color{R: 1.1, G: -0.2, B: 0.5}, "#ff0080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hex, Hex(tt.color))
		})
	}

	assert.Equal(t, EdgeColor, ParseHexColor("#ffff00"))
	assert.Equal(t, models.Color{R: 1, G: 1, B: 1}, ParseHexColor("#FFF"))
	assert.Equal(t, models.Color{}, ParseHexColor("nope"))
}

func TestShimmer(t *testing.T) {
	c := models.Color{R: 0.5, G: 0.5, B: 0.5}
	assert.Equal(t, c, NewShimmer(1, 0).Apply(c, r2.Vec{X: 0.3}, 1))

	s := NewShimmer(1, 1)
	shifted := s.Apply(c, r2.Vec{X: 0.3, Y: -0.2}, 1)
	assert.Equal(t, shifted, s.Apply(c, r2.Vec{X: 0.3, Y: -0.2}, 1))
	assert.InDelta(t, c.R, shifted.R, 0.5+1e-9)
}

func TestGetRenderer(t *testing.T) {
	for _, format := range Formats {
		r, err := GetRenderer(strings.ToUpper(format))
		require.NoError(t, err, format)
		assert.NotEmpty(t, r.Name())
		assert.NotEmpty(t, r.Description())
	}

	_, err := GetRenderer("webgl")
	assert.Error(t, err)
}

func TestSVGRenderer(t *testing.T) {
	g := testGraph(t, 6, 50)
	f := BuildFrame(g, models.Color{})
	opts := NewDefaultOptions("svg")
	opts.ShowLabels = true

	out, err := (&SVGRenderer{}).Render(f, opts)
	require.NoError(t, err)
	svg := string(out)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Equal(t, g.EdgeCount(), strings.Count(svg, "<line "))
	assert.Equal(t, g.Len(), strings.Count(svg, "<polygon "))
	assert.Equal(t, g.Len(), strings.Count(svg, "<text "))
	assert.Contains(t, svg, `stroke="#ffff00"`)
}

func TestJSONRenderer(t *testing.T) {
	g := testGraph(t, 5, 100)
	f := BuildFrame(g, models.Color{})
	f.Tick = 3

	out, err := (&JSONRenderer{}).Render(f, NewDefaultOptions("json"))
	require.NoError(t, err)

	var decoded jsonFrame
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, g.ID, decoded.GraphID)
	assert.Len(t, decoded.Nodes, 5)
	assert.Len(t, decoded.Edges, 10)
	assert.Len(t, decoded.Nodes[0].Boundary, g.Params.CircleDivision)
	assert.Equal(t, 3.0, decoded.Metadata["tick"])
	assert.InDelta(t, f.Centers[2].X, decoded.Nodes[2].X, 1e-12)
}

func TestDOTRenderer(t *testing.T) {
	g := testGraph(t, 3, 100)

	out, err := (&DOTRenderer{}).Render(BuildFrame(g, models.Color{}), NewDefaultOptions("dot"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "graph hypergraph {")
	assert.Contains(t, string(out), "1 -- 2")

	_, err = (&DOTRenderer{}).Render(&Frame{}, NewDefaultOptions("dot"))
	assert.Error(t, err)
}

func TestRasterize(t *testing.T) {
	f := &Frame{
		Calls: []DrawCall{
			{Mode: Lines, Vertices: []r2.Vec{{X: -0.9, Y: 0}, {X: 0.9, Y: 0}}, Color: EdgeColor},
			{Mode: TriangleFan, Vertices: square(0, 0, 0.3), Color: models.Color{R: 1}},
			{Mode: TriangleFan, Vertices: square(0.5, 0.5, 0.001), Color: models.Color{G: 1}},
		},
	}
	r := Rasterize(f, 20, 10)

	require.Len(t, r.Cells, 10)
	require.Len(t, r.Cells[0], 20)

	// the line runs along the middle row except where the node covers it
	row := r.Cells[5]
	assert.Equal(t, '·', row[1].Rune)
	assert.Equal(t, '●', row[10].Rune)
	assert.Equal(t, models.Color{R: 1}, row[10].Color)

	// a node smaller than a cell still shows up
	x, y := toCell(r2.Vec{X: 0.5, Y: 0.5}, 20, 10)
	assert.True(t, r.Cells[y][x].Node)

	lines := strings.Split(strings.TrimSuffix(r.String(), "\n"), "\n")
	assert.Len(t, lines, 10)
}

func TestASCIIRenderer(t *testing.T) {
	g := testGraph(t, 8, 20)
	opts := NewDefaultOptions("ascii")

	out, err := (&ASCIIRenderer{}).Render(BuildFrame(g, models.Color{}), opts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	assert.Len(t, lines, 30)
	assert.Contains(t, string(out), "●")
}

func square(cx, cy, half float64) []r2.Vec {
	out := make([]r2.Vec, 4)
	for k := range out {
		a := math.Pi/4 + float64(k)*math.Pi/2
		out[k] = r2.Vec{X: cx + half*math.Sqrt2*math.Cos(a), Y: cy + half*math.Sqrt2*math.Sin(a)}
	}
	return out
}
