// Package app dispatches frame, pointer, key and timer events to the graph
// model and replays projected frames on a Canvas.
package app

import (
	"log/slog"

	"github.com/TFMV/hypergraph/hyperbolic"
	"github.com/TFMV/hypergraph/metrics"
	"github.com/TFMV/hypergraph/models"
	"github.com/TFMV/hypergraph/physics"
	"github.com/TFMV/hypergraph/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas is the drawing surface of a presentation adapter. Vertices are in
// device coordinates, [-1, 1] on both axes with y up.
type Canvas interface {
	Clear(c models.Color)
	DrawLines(vertices []r2.Vec, c models.Color)
	DrawTriangleFan(vertices []r2.Vec, c models.Color)
	RequestRedraw()
}

// Option configures an App.
type Option func(*App)

// WithBackground sets the clear color.
func WithBackground(c models.Color) Option {
	return func(a *App) { a.background = c }
}

// WithMetrics records ticks, setups and drags into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(a *App) { a.metrics = r }
}

// WithPublisher receives a fresh frame after every change to the model.
func WithPublisher(fn func(*render.Frame)) Option {
	return func(a *App) { a.publish = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// App owns a graph and its simulator. Like the simulator it must be driven
// from a single goroutine.
type App struct {
	graph      *models.Graph
	sim        *physics.Simulator
	canvas     Canvas
	background models.Color
	metrics    *metrics.Registry
	publish    func(*render.Frame)
	logger     *slog.Logger
}

// New creates an App over g and sim. A nil canvas runs the App headless:
// frames are still built and published but never drawn.
func New(g *models.Graph, sim *physics.Simulator, canvas Canvas, opts ...Option) *App {
	a := &App{
		graph:  g,
		sim:    sim,
		canvas: canvas,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	sim.OnSetup(a.handleSetup)
	sim.OnTick(a.handleTick)
	if a.metrics != nil {
		a.metrics.SetGraphSize(g.Len(), g.EdgeCount())
	}
	a.changed()
	return a
}

// Graph returns the model.
func (a *App) Graph() *models.Graph {
	return a.graph
}

// Simulator returns the simulator.
func (a *App) Simulator() *physics.Simulator {
	return a.sim
}

// Frame projects the current state of the model.
func (a *App) Frame() *render.Frame {
	f := render.BuildFrame(a.graph, a.background)
	f.Tick = a.sim.Ticks()
	f.State = a.sim.State().String()
	return f
}

// OnFrame clears the canvas and draws the edge list followed by every node.
func (a *App) OnFrame() {
	if a.canvas == nil {
		return
	}
	f := a.Frame()
	a.canvas.Clear(f.Background)
	for _, call := range f.Calls {
		switch call.Mode {
		case render.Lines:
			a.canvas.DrawLines(call.Vertices, call.Color)
		case render.TriangleFan:
			a.canvas.DrawTriangleFan(call.Vertices, call.Color)
		}
	}
}

// OnPointerDown anchors a drag at device position (x, y).
func (a *App) OnPointerDown(x, y float64) {
	a.graph.BeginDrag(hyperbolic.ToHyperbolic(x, y))
	if a.metrics != nil {
		a.metrics.RecordDrag(metrics.DragBegin)
	}
}

// OnPointerDrag moves the whole graph from the drag anchor to device
// position (x, y).
func (a *App) OnPointerDrag(x, y float64) {
	a.graph.ContinueDrag(hyperbolic.ToHyperbolic(x, y))
	if a.metrics != nil {
		a.metrics.RecordDrag(metrics.DragContinue)
	}
	a.changed()
}

// OnKeySetup restarts the simulation from the initial layout.
func (a *App) OnKeySetup() {
	a.sim.Setup()
}

// OnTick advances a running simulation by one tick.
func (a *App) OnTick() {
	a.sim.Tick()
}

func (a *App) handleSetup() {
	if a.metrics != nil {
		a.metrics.RecordSetup()
	}
	a.changed()
}

func (a *App) handleTick(s physics.Stats) {
	if a.metrics != nil {
		a.metrics.RecordTick(s.Passes, s.Duration, s.MeanEdgeLength, s.MaxConstraintError)
	}
	a.changed()
}

func (a *App) changed() {
	if a.publish != nil {
		a.publish(a.Frame())
	}
	if a.canvas != nil {
		a.canvas.RequestRedraw()
	}
}

// DeviceToNDC maps a pixel position in a width×height surface to device
// coordinates with y up.
func DeviceToNDC(px, py, width, height float64) (float64, float64) {
	return 2*px/width - 1, 1 - 2*py/height
}

// NDCToDevice is the inverse of DeviceToNDC.
func NDCToDevice(x, y, width, height float64) (float64, float64) {
	return (x + 1) / 2 * width, (1 - y) / 2 * height
}
