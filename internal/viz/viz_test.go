package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/demo"
	"github.com/san-kum/physlab/internal/params"
)

func newRegistry(t *testing.T) *demo.Registry {
	t.Helper()
	opts := demo.DefaultOptions()
	opts.MeshSize = 20
	r, err := demo.NewRegistry(opts)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return r
}

func newLive(t *testing.T, name string, opts ...Option) Model {
	t.Helper()
	d, err := newRegistry(t).Get(name)
	if err != nil {
		t.Fatal(err)
	}
	s, err := demo.NewSession(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(s, opts...)
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(10, 10)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("expected set sub-pixels to read back")
	}
	if c.IsSet(1, 0) {
		t.Error("expected (1, 0) to be clear")
	}
	want := string([]rune{brailleBlank | 0x1, brailleBlank | 0x80})
	if got := c.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("expected diagonal pixel %d to be set", i)
		}
	}
}

func TestRenderFieldShade(t *testing.T) {
	fl := &demo.Field{
		Z:   [][]float64{{0, 2}, {0, 2}},
		Min: 0,
		Max: 2,
	}
	out := RenderField(fl, 4, 2, FieldShade)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "  @@" {
		t.Errorf("expected dark left and bright right, got %q", lines[0])
	}
}

func TestRenderFieldBraille(t *testing.T) {
	fl := &demo.Field{Z: [][]float64{{2}}, Min: 0, Max: 2}
	out := RenderField(fl, 3, 2, FieldBraille)
	full := string(rune(brailleBlank | 0xff))
	if strings.Count(out, full) != 6 {
		t.Errorf("expected a fully lit block, got %q", out)
	}
	if RenderField(nil, 3, 2, FieldBraille) != "" {
		t.Error("expected empty output for a nil field")
	}
}

func TestSliderBar(t *testing.T) {
	tests := []struct {
		frac float64
		want string
	}{
		{0, "[----]"},
		{0.5, "[==--]"},
		{1, "[====]"},
		{2, "[====]"},
	}
	for _, tt := range tests {
		if got := SliderBar(tt.frac, 4); got != tt.want {
			t.Errorf("SliderBar(%v): expected %q, got %q", tt.frac, tt.want, got)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 2); got != "▁█" {
		t.Errorf("expected ▁█, got %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected flat line, got %q", got)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "dark" {
		t.Error("expected unknown theme to fall back to dark")
	}
	seen := map[string]bool{}
	name := "dark"
	for range Themes {
		seen[name] = true
		name = nextTheme(name).Name
	}
	if len(seen) != len(Themes) || name != "dark" {
		t.Errorf("expected cycle through all %d themes, saw %v", len(Themes), seen)
	}
}

func TestFormatValue(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		440:      "440",
		1e-7:     "1.00E-07",
		1e5:      "1.00E+05",
		0.020408: "0.02041",
	}
	for v, want := range tests {
		if got := formatValue(v); got != want {
			t.Errorf("formatValue(%v): expected %q, got %q", v, want, got)
		}
	}
}

func TestModelStepsSelectedParam(t *testing.T) {
	m := newLive(t, "beat")
	if m.Selected() != "f1" {
		t.Fatalf("expected f1 selected, got %s", m.Selected())
	}

	m = press(m, "tab", "up", "up").(Model)
	if m.Selected() != "f2" {
		t.Fatalf("expected f2 selected, got %s", m.Selected())
	}
	p := m.Session().Params()
	if p.Get("f2") != 442 || p.Get("f1") != 440 {
		t.Errorf("expected f1=440 f2=442, got f1=%v f2=%v", p.Get("f1"), p.Get("f2"))
	}
	sc, _ := m.Session().Frame().Scalar("beat frequency")
	if sc.Value != 2 {
		t.Errorf("expected beat frequency 2, got %v", sc.Value)
	}

	m = press(m, "r").(Model)
	if m.Session().Params().Get("f2") != 440 {
		t.Error("expected reset to restore f2")
	}
}

func TestModelView(t *testing.T) {
	m := newLive(t, "kinetics", WithSize(140, 40))
	view := m.View()
	for _, want := range []string{"KINETICS", "PARAMETERS", "DERIVED", "half-life", "guide"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestModelFieldView(t *testing.T) {
	m := newLive(t, "michelson", WithSize(100, 30))
	shade := m.View()
	m = press(m, "f").(Model)
	if m.fieldMode != FieldBraille {
		t.Fatal("expected f to switch to braille")
	}
	if m.View() == shade {
		t.Error("expected the field view to change")
	}
}

func TestModelExport(t *testing.T) {
	var got *demo.Frame
	m := newLive(t, "rc", WithExporter(func(f *demo.Frame) (string, error) {
		got = f
		return "rc.svg", nil
	}))
	m = press(m, "e").(Model)
	if got == nil || got.Demo != "rc" {
		t.Fatal("expected exporter to receive the rc frame")
	}
	if m.statusErr || m.status != "saved rc.svg" {
		t.Errorf("expected saved status, got %q", m.status)
	}

	m = newLive(t, "rc", WithExporter(func(*demo.Frame) (string, error) {
		return "", errors.New("disk full")
	}))
	m = press(m, "e").(Model)
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Errorf("expected export error in status, got %q", m.status)
	}
}

func TestModelQuit(t *testing.T) {
	m := newLive(t, "beat")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppOpenAndBack(t *testing.T) {
	var asked string
	app := NewApp(newRegistry(t), func(d demo.Demo) (*params.Set, error) {
		asked = d.Name()
		return d.Params(), nil
	}, WithTheme("ocean"))

	if !strings.Contains(app.View(), "michelson") {
		t.Error("expected menu to list michelson")
	}

	m := press(app, "down", "enter")
	live, ok := m.(App).Live()
	if !ok {
		t.Fatal("expected live view after enter")
	}
	if asked != "kinetics" || live.Session().Demo().Name() != "kinetics" {
		t.Errorf("expected kinetics, got %q", asked)
	}
	if live.theme.Name != "ocean" {
		t.Errorf("expected ocean theme, got %s", live.theme.Name)
	}

	m = press(m, "esc")
	if _, ok := m.(App).Live(); ok {
		t.Error("expected esc to return to the menu")
	}
}

func TestAppParamsError(t *testing.T) {
	app := NewApp(newRegistry(t), func(demo.Demo) (*params.Set, error) {
		return nil, errors.New("bad preset")
	})
	m := press(app, "enter")
	if _, ok := m.(App).Live(); ok {
		t.Fatal("expected to stay in the menu")
	}
	if !strings.Contains(m.View(), "bad preset") {
		t.Error("expected error in menu view")
	}
}
