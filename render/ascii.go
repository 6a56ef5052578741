package render

import (
	"strings"
	"time"

	"github.com/TFMV/hypergraph/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// Cell is one character of a rasterized frame.
type Cell struct {
	Rune  rune
	Color models.Color
	Node  bool
}

// Raster is a character grid covering the disk square [-1, 1]².
type Raster struct {
	Cols, Rows int
	Cells      [][]Cell
}

// NewRaster creates a blank grid of the given size.
func NewRaster(cols, rows int) *Raster {
	cols = max(cols, 1)
	rows = max(rows, 1)
	cells := make([][]Cell, rows)
	for y := range cells {
		cells[y] = make([]Cell, cols)
		for x := range cells[y] {
			cells[y][x] = Cell{Rune: ' '}
		}
	}
	return &Raster{Cols: cols, Rows: rows, Cells: cells}
}

// Rasterize draws every call of the frame onto a cols×rows grid, edges first
// so node rings overwrite them.
func Rasterize(frame *Frame, cols, rows int) *Raster {
	r := NewRaster(cols, rows)
	for _, call := range frame.Calls {
		switch call.Mode {
		case Lines:
			for k := 0; k+1 < len(call.Vertices); k += 2 {
				r.Line(call.Vertices[k], call.Vertices[k+1], call.Color)
			}
		case TriangleFan:
			r.Polygon(call.Vertices, call.Color)
		}
	}
	return r
}

// Line draws a segment using Bresenham's algorithm. Node cells are kept.
func (r *Raster) Line(a, b r2.Vec, color models.Color) {
	x1, y1 := toCell(a, r.Cols, r.Rows)
	x2, y2 := toCell(b, r.Cols, r.Rows)

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}
	err := dx + dy

	for {
		if !r.Cells[y1][x1].Node {
			r.Cells[y1][x1] = Cell{Rune: '·', Color: color}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon fills the cells whose centers fall inside the closed polygon. A
// polygon smaller than a cell still marks the cell holding its centroid.
func (r *Raster) Polygon(vertices []r2.Vec, color models.Color) {
	if len(vertices) == 0 {
		return
	}

	minX, minY := r.Cols, r.Rows
	maxX, maxY := 0, 0
	var centroid r2.Vec
	for _, v := range vertices {
		x, y := toCell(v, r.Cols, r.Rows)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
		centroid = r2.Add(centroid, v)
	}
	centroid = r2.Scale(1/float64(len(vertices)), centroid)

	filled := false
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if inside(vertices, r.cellCenter(x, y)) {
				r.Cells[y][x] = Cell{Rune: '●', Color: color, Node: true}
				filled = true
			}
		}
	}
	if !filled {
		x, y := toCell(centroid, r.Cols, r.Rows)
		r.Cells[y][x] = Cell{Rune: '●', Color: color, Node: true}
	}
}

func (r *Raster) cellCenter(x, y int) r2.Vec {
	return r2.Vec{
		X: (float64(x)+0.5)/float64(r.Cols)*2 - 1,
		Y: 1 - (float64(y)+0.5)/float64(r.Rows)*2,
	}
}

// inside is the even-odd ray casting test.
func inside(poly []r2.Vec, p r2.Vec) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// String joins the rows of the grid.
func (r *Raster) String() string {
	var sb strings.Builder
	for _, row := range r.Cells {
		for _, c := range row {
			sb.WriteRune(c.Rune)
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

// ASCIIRenderer outputs ASCII art format
type ASCIIRenderer struct{}

// Name returns the name of the renderer
func (r *ASCIIRenderer) Name() string {
	return "ASCII Renderer"
}

// Description returns a description of the renderer
func (r *ASCIIRenderer) Description() string {
	return "Renders the projected disk as text for terminal output"
}

// Render creates an ASCII representation of the frame
func (r *ASCIIRenderer) Render(frame *Frame, options *OutputOptions) ([]byte, error) {
	// Terminal cells are about twice as tall as they are wide
	cols := max(int(options.Width/10), 40)
	rows := max(int(options.Height/20), 20)

	out := Rasterize(frame, cols, rows).String()
	if options.Timestamp {
		out += time.Now().Format("2006-01-02 15:04") + "\n"
	}
	return []byte(out), nil
}

// Absolute value of an integer
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
