package tui

import (
	"github.com/TFMV/hypergraph/models"
	"github.com/TFMV/hypergraph/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas rasterizes draw calls into a character grid.
type Canvas struct {
	cols, rows int
	raster     *render.Raster
	background models.Color
	dirty      bool
}

// NewCanvas creates a canvas of cols×rows cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows}
	c.raster = render.NewRaster(cols, rows)
	c.dirty = true
	return c
}

// Resize changes the grid size and marks the canvas for redraw.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = cols, rows
	c.dirty = true
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (int, int) {
	return c.raster.Cols, c.raster.Rows
}

// Background returns the color of the last Clear.
func (c *Canvas) Background() models.Color {
	return c.background
}

// Clear blanks the grid and records bg as the board background.
func (c *Canvas) Clear(bg models.Color) {
	c.raster = render.NewRaster(c.cols, c.rows)
	c.background = bg
}

// DrawLines draws each consecutive vertex pair as a line of dots.
func (c *Canvas) DrawLines(vertices []r2.Vec, col models.Color) {
	for k := 0; k+1 < len(vertices); k += 2 {
		c.raster.Line(vertices[k], vertices[k+1], col)
	}
}

// DrawTriangleFan fills the polygon outlined by vertices.
func (c *Canvas) DrawTriangleFan(vertices []r2.Vec, col models.Color) {
	c.raster.Polygon(vertices, col)
}

// RequestRedraw marks the grid stale so the next view replays the frame.
func (c *Canvas) RequestRedraw() {
	c.dirty = true
}
