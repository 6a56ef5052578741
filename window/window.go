// Package window shows the graph in a desktop window backed by ebiten.
package window

import (
	"image"
	"image/color"
	"math"

	"github.com/TFMV/hypergraph/app"
	"github.com/TFMV/hypergraph/models"
	"github.com/TFMV/hypergraph/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options configures the window.
type Options struct {
	Width          int
	Height         int
	Title          string
	TicksPerSecond int
	LineWidth      float32
}

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Window is an ebiten game that forwards input to an App and implements
// app.Canvas on the screen being drawn.
type Window struct {
	app     *app.App
	opts    Options
	width   int
	height  int
	screen  *ebiten.Image
	pending bool

	lastX, lastY int
}

// New creates a window. Attach an App with Run.
func New(opts Options) *Window {
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	return &Window{opts: opts, width: opts.Width, height: opts.Height, pending: true}
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run(a *app.App) error {
	w.app = a
	ebiten.SetWindowSize(w.opts.Width, w.opts.Height)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if w.opts.TicksPerSecond > 0 {
		ebiten.SetTPS(w.opts.TicksPerSecond)
	}
	return ebiten.RunGame(w)
}

// Update handles input and advances the simulation.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.app.OnKeySetup()
	}

	mx, my := ebiten.CursorPosition()
	x, y := app.DeviceToNDC(float64(mx), float64(my), float64(w.width), float64(w.height))
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		w.app.OnPointerDown(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && (mx != w.lastX || my != w.lastY):
		w.app.OnPointerDrag(x, y)
	}
	w.lastX, w.lastY = mx, my

	w.app.OnTick()
	return nil
}

// Draw replays the current frame on screen when a redraw was requested. The
// screen is not cleared between frames, so skipping keeps the last picture.
func (w *Window) Draw(screen *ebiten.Image) {
	if !w.pending {
		return
	}
	w.screen = screen
	w.app.OnFrame()
	w.screen = nil
	w.pending = false
}

// Layout keeps the logical screen equal to the window size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.pending = true
	}
	w.width, w.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (w *Window) toScreen(v r2.Vec) (float32, float32) {
	x, y := app.NDCToDevice(v.X, v.Y, float64(w.width), float64(w.height))
	return float32(x), float32(y)
}

func toRGBA(c models.Color) color.RGBA {
	r, g, b := render.RGB8(c)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Clear fills the screen with c.
func (w *Window) Clear(c models.Color) {
	w.screen.Fill(toRGBA(c))
}

// DrawLines strokes each consecutive vertex pair as a line segment.
func (w *Window) DrawLines(vertices []r2.Vec, c models.Color) {
	col := toRGBA(c)
	for k := 0; k+1 < len(vertices); k += 2 {
		x0, y0 := w.toScreen(vertices[k])
		x1, y1 := w.toScreen(vertices[k+1])
		vector.StrokeLine(w.screen, x0, y0, x1, y1, w.opts.LineWidth, col, true)
	}
}

// DrawTriangleFan fills the polygon outlined by vertices.
func (w *Window) DrawTriangleFan(vertices []r2.Vec, c models.Color) {
	if len(vertices) < 3 {
		return
	}
	var path vector.Path
	for k, v := range vertices {
		x, y := w.toScreen(v)
		if k == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	clamp := func(v float64) float32 { return float32(math.Max(0, math.Min(1, v))) }
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = clamp(c.R)
		vs[i].ColorG = clamp(c.G)
		vs[i].ColorB = clamp(c.B)
		vs[i].ColorA = 1
	}
	w.screen.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// RequestRedraw schedules a repaint on the next Draw.
func (w *Window) RequestRedraw() {
	w.pending = true
}
