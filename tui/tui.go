// Package tui runs the graph in a terminal: an ASCII rasterized disk that
// can be dragged with the mouse and relaxed with the space bar.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/TFMV/hypergraph/app"
	"github.com/TFMV/hypergraph/render"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFF00")).
			MarginLeft(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	boardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)
)

// Board offsets in the view: a title line and the rounded border, plus the
// help line below.
const (
	boardTop  = 2
	boardLeft = 1
	chrome    = 5
)

type keyMap struct {
	Setup key.Binding
	Help  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Setup: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "start relaxation"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Setup, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Setup}, {k.Help, k.Quit}}
}

type tickMsg time.Time

// Model is the bubbletea model driving an App.
type Model struct {
	app      *app.App
	canvas   *Canvas
	keys     keyMap
	help     help.Model
	interval time.Duration
	dragging bool
	styles   map[string]lipgloss.Style
}

// NewModel creates a model over a, which must draw on canvas. interval is the
// time between simulation ticks.
func NewModel(a *app.App, canvas *Canvas, interval time.Duration) Model {
	m := Model{
		app:      a,
		canvas:   canvas,
		keys:     keys,
		help:     help.New(),
		interval: interval,
		styles:   map[string]lipgloss.Style{},
	}
	m.redraw()
	return m
}

// Run starts the program in the alternate screen with mouse tracking.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.canvas.Resize(max(msg.Width-2*boardLeft, 20), max(msg.Height-chrome, 10))

	case tickMsg:
		m.app.OnTick()
		cmd = m.tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Setup):
			m.app.OnKeySetup()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.MouseMsg:
		x, y, ok := m.toDevice(msg.X, msg.Y)
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && ok:
			m.dragging = true
			m.app.OnPointerDown(x, y)
		case msg.Action == tea.MouseActionMotion && m.dragging:
			m.app.OnPointerDrag(x, y)
		case msg.Action == tea.MouseActionRelease:
			m.dragging = false
		}
	}

	m.redraw()
	return m, cmd
}

// toDevice maps a terminal cell to device coordinates on the board. ok is
// false outside the board.
func (m Model) toDevice(cx, cy int) (float64, float64, bool) {
	cols, rows := m.canvas.Size()
	px, py := cx-boardLeft, cy-boardTop
	ok := px >= 0 && px < cols && py >= 0 && py < rows
	x, y := app.DeviceToNDC(float64(px)+0.5, float64(py)+0.5, float64(cols), float64(rows))
	return x, y, ok
}

func (m Model) redraw() {
	if m.canvas.dirty {
		m.app.OnFrame()
		m.canvas.dirty = false
	}
}

// style returns the style for cells of color hex over the board background.
func (m Model) style(hex string) lipgloss.Style {
	s, ok := m.styles[hex]
	if !ok {
		s = lipgloss.NewStyle().
			Foreground(lipgloss.Color(hex)).
			Background(lipgloss.Color(render.Hex(m.canvas.Background())))
		m.styles[hex] = s
	}
	return s
}

func (m Model) View() string {
	var b strings.Builder
	for y, row := range m.canvas.raster.Cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		// consecutive cells of one color share a style run
		for x := 0; x < len(row); {
			hex := render.Hex(row[x].Color)
			end := x
			var run strings.Builder
			for end < len(row) && (row[end].Rune == ' ' || render.Hex(row[end].Color) == hex) {
				run.WriteRune(row[end].Rune)
				end++
			}
			b.WriteString(m.style(hex).Render(run.String()))
			x = end
		}
	}

	sim := m.app.Simulator()
	status := fmt.Sprintf("%s · tick %d · %d nodes · %d edges",
		sim.State(), sim.Ticks(), m.app.Graph().Len(), m.app.Graph().EdgeCount())

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("hypergraph")+"  "+statusStyle.Render(status),
		boardStyle.Render(b.String()),
		helpStyle.Render(m.help.View(m.keys)),
	)
}
