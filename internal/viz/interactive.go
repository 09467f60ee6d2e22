package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/experiment"
)

const (
	stateMenu = iota
	stateConfig
	stateExplore
)

// settings lists the editable sweep fields of the config screen.
var settings = []string{"param", "min", "max", "initial", "warmup", "samples"}

// app is the full-screen program: pick a model, tune its sweep, explore.
type app struct {
	reg   *experiment.Registry
	base  experiment.Config
	theme Theme
	st    styles

	state, cursor int
	models        []string
	sweep         experiment.Config
	params        []string
	fieldCursor   int
	editing       bool
	editBuf       string
	err           error

	width, height int
	live          Model
}

// NewInteractiveApp lists every model with a sweep parameter. base
// supplies the sampling depth and seed of every sweep.
func NewInteractiveApp(reg *experiment.Registry, base experiment.Config, theme Theme) *app {
	var models []string
	for _, name := range reg.ListModels() {
		if e, _ := reg.Entry(name); e.Param != "" {
			models = append(models, name)
		}
	}
	return &app{
		reg:    reg,
		base:   base,
		theme:  theme,
		st:     newStyles(theme),
		models: models,
		width:  width + statsWidth,
		height: height,
	}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateExplore {
			return m.forward(msg)
		}
		return m, nil
	default:
		if m.state == stateExplore {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m app) forward(msg tea.Msg) (app, tea.Cmd) {
	next, cmd := m.live.Update(msg)
	m.live = next.(Model)
	return m, cmd
}

func (m app) handleKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateExplore:
		if msg.String() == "esc" {
			m.live.Close()
			m.theme = m.live.theme
			m.st = newStyles(m.theme)
			m.state = stateConfig
			return m, nil
		}
		return m.forward(msg)
	}
	return m, nil
}

func (m app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.models)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.models) == 0 {
			break
		}
		m.selectModel(m.models[m.cursor])
		m.state, m.fieldCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m *app) selectModel(name string) {
	e, _ := m.reg.Entry(name)
	m.sweep = m.base
	m.sweep.Model = name
	m.sweep.Param = e.Param
	m.sweep.Min, m.sweep.Max, m.sweep.Initial = e.Min, e.Max, e.Initial

	m.params = nil
	if r, err := m.reg.GetModel(name); err == nil {
		if t, ok := r.(dynamo.Tunable); ok {
			for k := range t.Params() {
				m.params = append(m.params, k)
			}
		}
	}
	sort.Strings(m.params)
}

func (m app) configKey(msg tea.KeyMsg) (app, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err == nil {
				m.setField(settings[m.fieldCursor], val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	field := settings[m.fieldCursor]
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(settings)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		if field != "param" {
			m.editing, m.editBuf = true, formatField(m.field(field))
		}
	case "left", "h":
		m.adjust(field, -1)
	case "right", "l":
		m.adjust(field, 1)
	case "s":
		live, err := NewModel(m.reg, m.sweep, m.theme)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.live, m.state = live, stateExplore
		next, _ := m.live.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.live = next.(Model)
		return m, m.live.Init()
	}
	return m, nil
}

func (m app) field(name string) float64 {
	switch name {
	case "min":
		return m.sweep.Min
	case "max":
		return m.sweep.Max
	case "initial":
		return m.sweep.Initial
	case "warmup":
		return float64(m.sweep.Warmup)
	case "samples":
		return float64(m.sweep.Samples)
	}
	return 0
}

func (m *app) setField(name string, v float64) {
	switch name {
	case "min":
		m.sweep.Min = v
	case "max":
		m.sweep.Max = v
	case "initial":
		m.sweep.Initial = v
	case "warmup":
		m.sweep.Warmup = max(0, int(v))
	case "samples":
		m.sweep.Samples = max(1, int(v))
	}
}

// adjust nudges a field: cycles the swept parameter, steps counts by 10%
// and values by 1% of the sweep width.
func (m *app) adjust(name string, dir int) {
	switch name {
	case "param":
		if len(m.params) == 0 {
			return
		}
		i := sort.SearchStrings(m.params, m.sweep.Param)
		i = (i + dir + len(m.params)) % len(m.params)
		m.sweep.Param = m.params[i]
		m.resetRange()
	case "warmup", "samples":
		v := m.field(name)
		m.setField(name, v+float64(dir)*max(1, v/10))
	default:
		step := (m.sweep.Max - m.sweep.Min) / 100
		if step <= 0 {
			step = 0.01
		}
		m.setField(name, m.field(name)+float64(dir)*step)
	}
}

// resetRange centres a window of half-width 1 on the current parameter value,
// or restores the registered range for the default parameter.
func (m *app) resetRange() {
	e, _ := m.reg.Entry(m.sweep.Model)
	if m.sweep.Param == e.Param {
		m.sweep.Min, m.sweep.Max = e.Min, e.Max
		return
	}
	v := 0.0
	if r, err := m.reg.GetModel(m.sweep.Model); err == nil {
		if t, ok := r.(dynamo.Tunable); ok {
			v = t.Params()[m.sweep.Param]
		}
	}
	m.sweep.Min, m.sweep.Max = v-1, v+1
}

func formatField(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateExplore:
		return m.live.View()
	}
	return ""
}

func (m app) viewMenu() string {
	st := m.st
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("DYNMAP", m.theme.Accent, m.theme.Points) + "\n")
	b.WriteString("    " + st.muted.Render("discrete map explorer") + "\n")
	b.WriteString("    " + st.muted.Render(Separator(25)) + "\n\n")
	for i, name := range m.models {
		e, _ := m.reg.Entry(name)
		desc := e.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.key.Render("▸"), st.value.Bold(true).Render(fmt.Sprintf("%-12s", name)), st.active.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", st.muted.Render(fmt.Sprintf("%-12s", name)), st.muted.Render(desc)))
		}
	}
	b.WriteString("\n    " + st.keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m app) viewConfig() string {
	st := m.st
	e, _ := m.reg.Entry(m.sweep.Model)
	var b strings.Builder
	b.WriteString("\n\n    " + st.header.Render(strings.ToUpper(m.sweep.Model)) + "\n")
	b.WriteString("    " + st.muted.Render(e.Description) + "\n\n")

	for i, name := range settings {
		val := m.sweep.Param
		if name != "param" {
			val = formatField(m.field(name))
		}
		if m.editing && i == m.fieldCursor {
			val = m.editBuf + "_"
		}
		line := fmt.Sprintf("%-10s %12s", name, val)
		if i == m.fieldCursor {
			b.WriteString("    " + st.key.Render("▸ ") + st.active.Render(line) + "\n")
		} else {
			b.WriteString("      " + st.muted.Render(line) + "\n")
		}
	}

	if sp, err := m.reg.Sampler(m.sweep.Model, m.sweep.Param, nil); err == nil {
		mid := (m.sweep.Min + m.sweep.Max) / 2
		orbit := sp.Sample([]float64{mid}, m.sweep.Initial, m.sweep.Warmup, 48)[0].Values
		b.WriteString("\n    " + st.muted.Render(fmt.Sprintf("orbit at %s = %.4f  ", m.sweep.Param, mid)) + st.graph.UnsetPadding().Render(SparklineChart(orbit, 40)) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n    " + st.active.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + st.keyHints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "explore", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive starts the full-screen explorer.
func RunInteractive(reg *experiment.Registry, base experiment.Config, theme Theme) error {
	_, err := tea.NewProgram(NewInteractiveApp(reg, base, theme), tea.WithAltScreen()).Run()
	return err
}
