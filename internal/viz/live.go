package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"

	"github.com/san-kum/physlab/internal/demo"
)

const (
	defaultWidth  = 120
	defaultHeight = 36
	sideWidth     = 46
	sliderWidth   = 12
	bigStep       = 10
)

// ExportFunc saves the current frame and returns where it went.
type ExportFunc func(*demo.Frame) (string, error)

// Model is the live view of one demo session: a figure with one plot per
// panel and a side bar with the parameter sliders and derived values.
type Model struct {
	session   *demo.Session
	keys      []string
	selected  int
	theme     Theme
	styles    styles
	width     int
	height    int
	fieldMode FieldMode
	showHelp  bool
	status    string
	statusErr bool
	exporter  ExportFunc
}

type Option func(*Model)

func WithTheme(name string) Option {
	return func(m *Model) { m.setTheme(GetTheme(name)) }
}

func WithExporter(fn ExportFunc) Option {
	return func(m *Model) { m.exporter = fn }
}

func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

func NewModel(s *demo.Session, opts ...Option) Model {
	m := Model{
		session: s,
		keys:    s.Params().Keys(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.setTheme(ThemeDark)
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = newStyles(t)
}

func (m Model) Init() tea.Cmd { return nil }

// Update applies one key press. Parameter changes recompute the frame
// synchronously before returning.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.cycleParam(1)
		case "shift+tab":
			m.cycleParam(-1)
		case "up", "k", "right", "l":
			m.step(1)
		case "down", "j", "left", "h":
			m.step(-1)
		case "pgup":
			m.step(bigStep)
		case "pgdown":
			m.step(-bigStep)
		case "r":
			m.report(m.session.Reset(), "reset to defaults")
		case "t":
			m.setTheme(nextTheme(m.theme.Name))
		case "f":
			m.fieldMode = (m.fieldMode + 1) % 2
		case "e":
			m.export()
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m *Model) cycleParam(dir int) {
	if len(m.keys) == 0 {
		return
	}
	m.selected = (m.selected + dir + len(m.keys)) % len(m.keys)
}

func (m *Model) step(dir int) {
	if len(m.keys) == 0 {
		return
	}
	key := m.keys[m.selected]
	m.report(m.session.Step(key, dir), "")
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return
	}
	m.status, m.statusErr = ok, false
}

func (m *Model) export() {
	if m.exporter == nil {
		m.report(fmt.Errorf("export is not available"), "")
		return
	}
	where, err := m.exporter(m.session.Frame())
	if err != nil {
		log.WithError(err).Warn("export from live view failed")
		m.report(err, "")
		return
	}
	m.report(nil, "saved "+where)
}

// Session exposes the underlying session, mainly for the menu and tests.
func (m Model) Session() *demo.Session { return m.session }

// Selected returns the key of the highlighted parameter.
func (m Model) Selected() string {
	if len(m.keys) == 0 {
		return ""
	}
	return m.keys[m.selected]
}

func (m Model) View() string {
	f := m.session.Frame()
	d := m.session.Demo()
	s := m.styles

	plotWidth := max(30, m.width-sideWidth-8)
	figure := m.renderFigure(f, plotWidth)
	side := s.side.Width(sideWidth).Render(m.renderSide(f))

	var b strings.Builder
	b.WriteString(s.header.Render(strings.ToUpper(d.Name())) + "  " + s.muted.Render(d.Description()) + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, s.panel.Render(figure), side))
	if m.showHelp {
		b.WriteString("\n\n" + m.renderHelp())
	}
	return b.String()
}

func (m Model) renderFigure(f *demo.Frame, width int) string {
	n := max(1, len(f.Panels))
	// caption and marker lines take three rows per panel
	height := max(4, (m.height-6)/n-3)

	parts := make([]string, 0, len(f.Panels))
	for _, p := range f.Panels {
		if f.Field != nil && f.Field.Panel == p.ID {
			rows := max(8, m.height-8)
			cols := min(width, rows*2)
			parts = append(parts, m.styles.title.Render(p.Title)+"\n"+
				RenderField(f.Field, cols, rows, m.fieldMode)+"\n"+
				m.styles.muted.Render(fmt.Sprintf("%s: %s  (f to switch view)", p.XLabel, m.fieldMode)))
			continue
		}
		parts = append(parts, m.renderPanel(f, p, width, height))
	}
	return strings.Join(parts, "\n")
}

// renderPanel plots the curves of one panel. Log axes are drawn as log10 of
// the values; log-spaced grids already make the x axis logarithmic.
func (m Model) renderPanel(f *demo.Frame, p demo.Panel, width, height int) string {
	curves := f.CurvesIn(p.ID)
	if len(curves) == 0 {
		return ""
	}
	data := make([][]float64, len(curves))
	names := make([]string, len(curves))
	for i, c := range curves {
		data[i] = make([]float64, len(c.Y))
		for j, v := range c.Y {
			if p.LogY {
				v = math.Log10(v)
			}
			data[i][j] = v
		}
		names[i] = c.Name
	}

	x0, x1, y0, y1 := f.Bounds(p.ID)
	if p.LogY {
		y0, y1 = math.Log10(y0), math.Log10(y1)
	}
	caption := fmt.Sprintf("%s  %s %s..%s", p.Title, p.XLabel, formatValue(x0), formatValue(x1))
	if p.LogY {
		caption += "  (log10 " + p.YLabel + ")"
	}

	colors := m.theme.Series
	if len(colors) > len(data) {
		colors = colors[:len(data)]
	}
	chart := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(y0),
		asciigraph.UpperBound(y1),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption(caption),
	)

	var b strings.Builder
	b.WriteString(chart)
	for _, mk := range f.MarkersIn(p.ID) {
		b.WriteString("\n" + m.styles.muted.Render(fmt.Sprintf("  ┼ guide (%s, %s) to (%s, %s)",
			formatValue(mk.X0), formatValue(mk.Y0), formatValue(mk.X1), formatValue(mk.Y1))))
	}
	return b.String()
}

func (m Model) renderSide(f *demo.Frame) string {
	s := m.styles
	p := m.session.Params()

	var b strings.Builder
	b.WriteString(s.title.Render("PARAMETERS") + "\n")
	for i, key := range m.keys {
		spec, _ := p.Spec(key)
		label := spec.Label
		if label == "" {
			label = key
		}
		bar := SliderBar(spec.Fraction(p.Get(key)), sliderWidth)
		line := fmt.Sprintf("%-7s %s %s", label, bar, p.Format(key))
		if i == m.selected {
			b.WriteString(s.active.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + s.value.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + s.title.Render("DERIVED") + "\n")
	for _, sc := range f.Scalars {
		v := formatValue(sc.Value)
		if sc.Unit != "" {
			v += " " + sc.Unit
		}
		b.WriteString(s.label.Render(sc.Name) + s.value.Render(v) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(s.errorMsg.Render(m.status))
		} else {
			b.WriteString(s.okMsg.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + s.hints("tab", "param", "↑↓", "adjust", "r", "reset") + "\n")
	b.WriteString(s.hints("e", "export", "t", "theme", "?", "help", "q", "quit"))
	return b.String()
}

func (m Model) renderHelp() string {
	return m.styles.muted.Render(`Tab / Shift+Tab   select parameter
Up,K / Down,J     move slider one step
PgUp / PgDn       move slider ten steps
R                 restore defaults
F                 shade or braille field view
E                 export the current figure
T                 cycle themes
Esc               back to menu
Q                 quit`)
}

// formatValue prints v the way the slider labels do: scientific notation
// for very large or small magnitudes.
func formatValue(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case math.IsNaN(v):
		return "NaN"
	}
	a := math.Abs(v)
	if a != 0 && (a >= 1e4 || a < 1e-2) {
		return fmt.Sprintf("%.2E", v)
	}
	return fmt.Sprintf("%.4g", v)
}
