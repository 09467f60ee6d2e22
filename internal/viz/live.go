package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dynmap/internal/analysis"
	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/experiment"
	"github.com/san-kum/dynmap/internal/render"
)

const (
	width      = 80
	height     = 24
	statsWidth = 46

	minCols      = 16
	minRows      = 6
	defaultChunk = 32

	orbitLength      = 64
	lyapunovSteps    = 500
	periodTolerance  = 1e-6
	branchTolerance  = 1e-4
	maxPeriod        = 32
	brailleThreshold = 0.04
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the interactive bifurcation explorer. It samples the visible
// window one chunk per frame into a density accumulator and shows the
// result as braille, with the orbit at the cursor on the overlay.
type Model struct {
	cfg     experiment.Config
	entry   experiment.Entry
	sampler *analysis.Sampler
	acc     *render.Accumulator
	theme   Theme
	st      styles

	width, height int // terminal cells
	cols, rows    int // braille canvas cells

	home    [2]float64
	cursor  float64
	pending [][]float64
	total   int
	ticking bool

	orbit    []float64
	period   int
	branches int
	lyapunov float64

	status   string
	err      error
	showHelp bool
}

// NewModel builds an explorer for cfg. An empty Param or an invalid
// range falls back to the registered default sweep.
func NewModel(reg *experiment.Registry, cfg experiment.Config, theme Theme) (Model, error) {
	entry, err := reg.Entry(cfg.Model)
	if err != nil {
		return Model{}, err
	}
	if cfg.Param == "" {
		cfg.Param = entry.Param
	}
	if !(cfg.Max > cfg.Min) {
		cfg.Min, cfg.Max = entry.Min, entry.Max
	}
	if cfg.Chunk <= 0 {
		cfg.Chunk = defaultChunk
	}
	sp, err := reg.Sampler(cfg.Model, cfg.Param, dynamo.Seeded(cfg.Seed))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		cfg:     cfg,
		entry:   entry,
		sampler: sp,
		theme:   theme,
		st:      newStyles(theme),
		width:   width + statsWidth,
		height:  height,
		home:    [2]float64{cfg.Min, cfg.Max},
		cursor:  (cfg.Min + cfg.Max) / 2,
		ticking: true,
	}
	m.cols, m.rows = m.canvasSize()
	if err := m.allocate(); err != nil {
		return Model{}, err
	}
	m.restart()
	return m, nil
}

func (m *Model) allocate() error {
	acc, err := render.Init(render.RasterProvider{Ratio: 1}, m.cols*2, m.rows*4,
		render.WithPalette(m.theme.Palette()),
		render.WithWindow(m.home[0], m.home[1]),
	)
	if err != nil {
		return fmt.Errorf("explorer canvas: %w", err)
	}
	if m.acc != nil {
		w := m.acc.Window()
		m.acc.Destroy()
		acc.SetRange(w.ControlMin, w.ControlMax)
	}
	m.acc = acc
	return nil
}

func (m Model) canvasSize() (int, int) {
	return max(minCols, m.width-statsWidth-6), max(minRows, m.height-4)
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, m.kick()
	case TickMsg:
		m.step()
		if len(m.pending) == 0 {
			m.ticking = false
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "H":
		m.moveCursor(-10)
	case "L":
		m.moveCursor(10)
	case "+", "=":
		m.zoom(0.5)
	case "-", "_":
		m.zoom(2)
	case "[":
		m.pan(-0.25)
	case "]":
		m.pan(0.25)
	case "r":
		m.cursor = (m.home[0] + m.home[1]) / 2
		m.setWindow(m.home[0], m.home[1])
	case "t":
		m.theme = m.theme.Next()
		m.st = newStyles(m.theme)
		if err := m.allocate(); err != nil {
			m.err = err
			break
		}
		m.restart()
	case "s":
		m.save()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, m.kick()
}

// kick starts the frame ticker when sampling is pending and no tick is
// in flight.
func (m *Model) kick() tea.Cmd {
	if m.ticking || len(m.pending) == 0 {
		return nil
	}
	m.ticking = true
	return tick()
}

// Close releases the accumulator.
func (m *Model) Close() {
	if m.acc != nil {
		m.acc.Destroy()
	}
}

func (m *Model) resize() {
	cols, rows := m.canvasSize()
	if cols == m.cols && rows == m.rows {
		return
	}
	if err := m.acc.Resize(cols*2, rows*4); err != nil {
		m.err = err
		return
	}
	m.cols, m.rows = cols, rows
	m.restart()
}

// restart clears the density and queues one control per dot column of
// the current window.
func (m *Model) restart() {
	if err := m.acc.Clear(); err != nil {
		m.err = err
		return
	}
	w := m.acc.Window()
	controls := analysis.Linspace(w.ControlMin, w.ControlMax, m.cols*2)
	m.pending = analysis.Chunks(controls, m.cfg.Chunk)
	m.total = len(m.pending)
	m.cursor = dynamo.Clamp(m.cursor, w.ControlMin, w.ControlMax)
	m.inspect()
}

// step samples the next pending chunk into the accumulator.
func (m *Model) step() {
	if len(m.pending) == 0 {
		return
	}
	chunk := m.pending[0]
	m.pending = m.pending[1:]

	buf := analysis.Pack(m.sampler.Sample(chunk, m.cfg.Initial, m.cfg.Warmup, m.cfg.Samples))
	buf.Rescale(m.entry.Lo, m.entry.Hi)
	if err := m.acc.AppendPoints(buf); err != nil {
		m.err = err
	}
}

// inspect analyses the orbit at the cursor and redraws the overlay.
func (m *Model) inspect() {
	sets := m.sampler.Sample([]float64{m.cursor}, m.cfg.Initial, m.cfg.Warmup, orbitLength)
	m.orbit = sets[0].Values
	m.period = analysis.DetectPeriod(m.orbit, periodTolerance, maxPeriod)
	m.branches = len(analysis.Distinct(m.orbit, branchTolerance))

	rule := m.sampler.Family(m.cursor)
	m.lyapunov = analysis.LyapunovExponent(rule, rule.Init(m.cfg.Initial), m.cfg.Warmup, lyapunovSteps, 1e-8)

	if err := m.acc.ClearOverlay(); err != nil {
		m.err = err
		return
	}
	m.acc.DrawOverlayLine(m.cursor)
	m.acc.DrawOverlayTrajectoryAtR(m.scaled(m.orbit), m.cursor)
}

// scaled maps observed values onto the accumulator's unit value axis.
func (m Model) scaled(values []float64) []float64 {
	lo, hi := m.entry.Lo, m.entry.Hi
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v
		if hi > lo {
			out[i] = (v - lo) / (hi - lo)
		}
	}
	return out
}

func (m *Model) moveCursor(columns int) {
	w := m.acc.Window()
	dc := (w.ControlMax - w.ControlMin) / float64(m.cols*2)
	m.cursor = dynamo.Clamp(m.cursor+float64(columns)*dc, w.ControlMin, w.ControlMax)
	m.inspect()
}

// zoom scales the window by f around the cursor.
func (m *Model) zoom(f float64) {
	w := m.acc.Window()
	half := (w.ControlMax - w.ControlMin) * f / 2
	m.setWindow(m.cursor-half, m.cursor+half)
}

// pan shifts the window and the cursor by f window widths.
func (m *Model) pan(f float64) {
	w := m.acc.Window()
	d := (w.ControlMax - w.ControlMin) * f
	m.cursor += d
	m.setWindow(w.ControlMin+d, w.ControlMax+d)
}

func (m *Model) setWindow(min, max float64) {
	if err := m.acc.SetRange(min, max); err != nil {
		m.err = err
		return
	}
	m.restart()
}

func (m *Model) save() {
	w := m.acc.Window()
	name := fmt.Sprintf("dynmap_%s_%.4f_%.4f.png", m.cfg.Model, w.ControlMin, w.ControlMax)
	f, err := os.Create(name)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := m.acc.WritePNG(f); err != nil {
		m.err = err
		return
	}
	m.status = "saved " + name
}

// Progress is the fraction of the current window already sampled.
func (m Model) Progress() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.total-len(m.pending)) / float64(m.total)
}

// Canvas renders the accumulator as braille.
func (m Model) Canvas() *Canvas {
	img, err := m.acc.Image()
	if err != nil {
		return NewCanvas(m.cols, m.rows)
	}
	c := FromImage(img, m.cols, m.rows, m.theme.Palette().Background, brailleThreshold)

	// the translucent cursor line can fall under the threshold on light themes
	w := m.acc.Window()
	if span := w.ControlMax - w.ControlMin; span > 0 && m.cursor >= w.ControlMin && m.cursor <= w.ControlMax {
		dw, dh := c.Dots()
		x := min(int((m.cursor-w.ControlMin)/span*float64(dw)), dw-1)
		c.DrawLine(x, 0, x, dh-1)
	}
	return c
}

func (m Model) View() string {
	st := m.st
	canvasView := st.canvas.Render(m.Canvas().String())
	w := m.acc.Window()

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.cfg.Model)+"  "+m.cfg.Param) + "\n")
	if p := m.Progress(); p < 1 {
		s.WriteString(st.active.Render("SAMPLING ") + st.value.Render(ProgressBar(p, 16)) + "\n\n")
	} else {
		s.WriteString(st.value.Render("READY") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Window", fmt.Sprintf("[%.5f, %.5f]", w.ControlMin, w.ControlMax))
	row("Cursor", fmt.Sprintf("%s = %.5f", m.cfg.Param, m.cursor))
	if m.period > 0 {
		row("Period", fmt.Sprintf("%d", m.period))
	} else {
		row("Period", "none")
	}
	row("Branches", fmt.Sprintf("%d", m.branches))
	regime := "stable"
	if m.lyapunov > 0 {
		regime = "chaotic"
	}
	row("Lyapunov", fmt.Sprintf("%.4f (%s)", m.lyapunov, regime))

	if len(m.orbit) > 1 {
		chart := asciigraph.Plot(m.orbit, asciigraph.Height(5), asciigraph.Width(statsWidth-14), asciigraph.Caption("orbit"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(st.active.Render("error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		s.WriteString(st.muted.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render(Separator(statsWidth-6)) + "\n")
	s.WriteString(st.keyHints("h/l", "move", "+/-", "zoom", "[ ]", "pan") + "\n")
	s.WriteString(st.keyHints("r", "reset", "t", "theme", "s", "save", "?", "help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  h / l    - Move cursor one column   ║
║  H / L    - Move cursor ten columns  ║
║  + / -    - Zoom in / out at cursor  ║
║  [ / ]    - Pan left / right         ║
║  r        - Reset window             ║
║  t        - Cycle themes             ║
║  s        - Save PNG snapshot        ║
║  Esc      - Back to settings         ║
║  q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
