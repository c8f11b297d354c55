package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/san-kum/physlab/internal/demo"
	"github.com/san-kum/physlab/internal/params"
)

const previewWidth = 24

const (
	stateMenu = iota
	stateLive
)

// ParamsFunc supplies the starting parameters for a demo, e.g. from a
// config file or preset. A nil ParamsFunc starts every demo at its defaults.
type ParamsFunc func(demo.Demo) (*params.Set, error)

// App is the top-level TUI: a demo menu with previews, then the live view of
// the chosen demo.
type App struct {
	registry  *demo.Registry
	names     []string
	previews  map[string]string
	paramsFor ParamsFunc
	opts      []Option

	state   int
	cursor  int
	theme   Theme
	styles  styles
	width   int
	height  int
	live    Model
	lastErr string
}

func NewApp(r *demo.Registry, paramsFor ParamsFunc, opts ...Option) App {
	a := App{
		registry:  r,
		names:     r.List(),
		previews:  make(map[string]string),
		paramsFor: paramsFor,
		opts:      opts,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	// the menu follows the theme the live view would open with
	probe := Model{}
	probe.setTheme(ThemeDark)
	for _, opt := range opts {
		opt(&probe)
	}
	a.theme, a.styles = probe.theme, probe.styles

	for _, name := range a.names {
		a.previews[name] = a.preview(name)
	}
	return a
}

// preview draws the default frame of a demo as a sparkline.
func (a App) preview(name string) string {
	d, err := a.registry.Get(name)
	if err != nil {
		return ""
	}
	f, err := d.Recompute(d.Params())
	if err != nil {
		log.WithFields(log.Fields{"demo": name}).WithError(err).Debug("no menu preview")
		return ""
	}
	if len(f.Curves) > 0 {
		return Sparkline(f.Curves[len(f.Curves)/2].Y, previewWidth)
	}
	if f.Field != nil && len(f.Field.Z) > 0 {
		return Sparkline(f.Field.Z[len(f.Field.Z)/2], previewWidth)
	}
	return ""
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
	}
	if a.state == stateLive {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
			a.theme, a.styles = a.live.theme, a.live.styles
			a.state = stateMenu
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch km.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.names)-1 {
			a.cursor++
		}
	case "t":
		a.theme = nextTheme(a.theme.Name)
		a.styles = newStyles(a.theme)
	case "enter", " ":
		a.open()
	}
	return a, nil
}

func (a *App) open() {
	if len(a.names) == 0 {
		return
	}
	name := a.names[a.cursor]
	s, err := a.session(name)
	if err != nil {
		log.WithFields(log.Fields{"demo": name}).WithError(err).Warn("cannot open demo")
		a.lastErr = err.Error()
		return
	}
	opts := append([]Option{WithSize(a.width, a.height)}, a.opts...)
	// the menu theme wins over the one given at start-up
	opts = append(opts, WithTheme(a.theme.Name))
	a.live = NewModel(s, opts...)
	a.state, a.lastErr = stateLive, ""
}

func (a App) session(name string) (*demo.Session, error) {
	d, err := a.registry.Get(name)
	if err != nil {
		return nil, err
	}
	var p *params.Set
	if a.paramsFor != nil {
		if p, err = a.paramsFor(d); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return demo.NewSession(d, p)
}

// Live returns the live view and whether it is showing.
func (a App) Live() (Model, bool) { return a.live, a.state == stateLive }

func (a App) View() string {
	if a.state == stateLive {
		return a.live.View()
	}
	s := a.styles

	var b strings.Builder
	b.WriteString("\n\n    " + s.header.Render("PHYSLAB") + "\n    " +
		s.muted.Render("interactive physics demos") + "\n    " +
		s.muted.Render("─────────────────────────") + "\n\n")
	for i, name := range a.names {
		d, err := a.registry.Get(name)
		if err != nil {
			continue
		}
		desc := d.Description()
		if len(desc) > 36 {
			desc = desc[:33] + "..."
		}
		row := fmt.Sprintf("%-10s %s  %-36s", name, a.previews[name], desc)
		if i == a.cursor {
			b.WriteString("    " + s.active.Render("▸ "+row) + "\n")
		} else {
			b.WriteString("      " + s.muted.Render(row) + "\n")
		}
	}
	if a.lastErr != "" {
		b.WriteString("\n    " + s.errorMsg.Render(a.lastErr) + "\n")
	}
	b.WriteString("\n    " + s.hints("j/k", "navigate", "enter", "open", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

// RunInteractive starts the menu on the alternate screen and blocks until
// the user quits.
func RunInteractive(r *demo.Registry, paramsFor ParamsFunc, opts ...Option) error {
	_, err := tea.NewProgram(NewApp(r, paramsFor, opts...), tea.WithAltScreen()).Run()
	return err
}

// RunLive opens a single session without the menu.
func RunLive(s *demo.Session, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(s, opts...), tea.WithAltScreen()).Run()
	return err
}
