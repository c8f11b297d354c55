package demo

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(DefaultOptions())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return r
}

func TestRegistryList(t *testing.T) {
	r := newTestRegistry(t)
	want := []string{"beat", "kinetics", "rc", "rlc", "michelson"}
	got := r.List()
	if len(got) != len(want) {
		t.Fatalf("expected %d demos, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Get("pendulum"); !errors.Is(err, ErrUnknownDemo) {
		t.Errorf("expected ErrUnknownDemo, got %v", err)
	}
}

func TestRegistryBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.MeshSize = 1
	if _, err := NewRegistry(opts); err == nil {
		t.Error("expected error for a one-point mesh")
	}
}

func TestDefaultFrames(t *testing.T) {
	r := newTestRegistry(t)
	tests := []struct {
		name   string
		panels int
		curves int
		field  bool
	}{
		{"beat", 3, 5, false},
		{"kinetics", 1, 1, false},
		{"rc", 3, 4, false},
		{"rlc", 3, 4, false},
		{"michelson", 1, 0, true},
	}

	for _, tt := range tests {
		d, err := r.Get(tt.name)
		if err != nil {
			t.Fatal(err)
		}
		f, err := d.Recompute(d.Params())
		if err != nil {
			t.Fatalf("%s: recompute: %v", tt.name, err)
		}
		if f.Demo != tt.name {
			t.Errorf("%s: frame labelled %s", tt.name, f.Demo)
		}
		if len(f.Panels) != tt.panels {
			t.Errorf("%s: expected %d panels, got %d", tt.name, tt.panels, len(f.Panels))
		}
		if len(f.Curves) != tt.curves {
			t.Errorf("%s: expected %d curves, got %d", tt.name, tt.curves, len(f.Curves))
		}
		if (f.Field != nil) != tt.field {
			t.Errorf("%s: field present = %v", tt.name, f.Field != nil)
		}
		for _, c := range f.Curves {
			if len(c.X) != len(c.Y) {
				t.Errorf("%s/%s: %d x vs %d y", tt.name, c.Name, len(c.X), len(c.Y))
			}
			if _, ok := f.Panel(c.Panel); !ok {
				t.Errorf("%s/%s: unknown panel %s", tt.name, c.Name, c.Panel)
			}
		}
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	for _, name := range r.List() {
		d, _ := r.Get(name)
		p := d.Params()
		a, err := d.Recompute(p)
		if err != nil {
			t.Fatal(err)
		}
		// recompute for other values in between
		other := p.Clone()
		for _, k := range other.Keys() {
			other.Step(k, 7)
		}
		if _, err := d.Recompute(other); err != nil {
			t.Fatal(err)
		}
		b, _ := d.Recompute(p)

		for i := range a.Curves {
			for j := range a.Curves[i].Y {
				if a.Curves[i].Y[j] != b.Curves[i].Y[j] {
					t.Fatalf("%s/%s: sample %d changed", name, a.Curves[i].Name, j)
				}
			}
		}
		if a.Field != nil {
			for y := range a.Field.Z {
				for x := range a.Field.Z[y] {
					if a.Field.Z[y][x] != b.Field.Z[y][x] {
						t.Fatalf("%s: field (%d,%d) changed", name, x, y)
					}
				}
			}
		}
	}
}

func TestBeatScalars(t *testing.T) {
	d, _ := NewBeat(DefaultOptions())
	p := d.Params()
	p.Set("f2", 442)
	f, err := d.Recompute(p)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := f.Scalar("beat frequency")
	if !ok || s.Value != 2 {
		t.Errorf("expected beat frequency 2, got %v", s.Value)
	}
	s, _ = f.Scalar("beat period")
	if math.Abs(s.Value-0.5) > 1e-12 {
		t.Errorf("expected period 0.5, got %v", s.Value)
	}
	if len(f.CurvesIn("sum")) != 3 {
		t.Errorf("expected sum and both envelopes in the sum panel")
	}
}

func TestKineticsHalfLifeMarkers(t *testing.T) {
	d, _ := NewKinetics(DefaultOptions())
	p := d.Params()
	f, err := d.Recompute(p)
	if err != nil {
		t.Fatal(err)
	}
	half, _ := f.Scalar("half-life")
	want := math.Ln2 / 0.05
	if math.Abs(half.Value-want) > 1e-9 {
		t.Errorf("expected half-life %v, got %v", want, half.Value)
	}
	m := f.MarkersIn("concentration")
	if len(m) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(m))
	}
	if m[0].X0 != half.Value || m[0].Y1 != 0.5 {
		t.Errorf("vertical marker at (%v, %v)", m[0].X0, m[0].Y1)
	}
	panel, _ := f.Panel("concentration")
	if math.Abs(panel.YMax-1.1) > 1e-12 {
		t.Errorf("expected y max 1.1, got %v", panel.YMax)
	}
}

func TestKineticsZeroOrderGoesNegative(t *testing.T) {
	d, _ := NewKinetics(DefaultOptions())
	p := d.Params()
	p.Set("order", 0)
	p.Set("c0", 0.2)
	p.Set("k", 0.1)
	f, err := d.Recompute(p)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := f.Curve("C(t)")
	if last := c.Y[len(c.Y)-1]; last >= 0 {
		t.Errorf("expected a negative final concentration, got %v", last)
	}
}

// widen replaces the choices of key so that values outside the model's
// domain reach Recompute.
func widen(p *params.Set, key string, extra float64) *params.Set {
	specs := p.Specs()
	for i := range specs {
		if specs[i].Key == key {
			specs[i].Choices = append(append([]float64(nil), specs[i].Choices...), extra)
			specs[i].Names = nil
		}
	}
	return params.NewSet(specs...)
}

func TestKineticsUnsupportedOrder(t *testing.T) {
	d, _ := NewKinetics(DefaultOptions())
	p := widen(d.Params(), "order", 3)
	p.Set("order", 3)
	_, err := d.Recompute(p)
	if !errors.Is(err, physics.ErrUnsupportedOrder) {
		t.Errorf("expected ErrUnsupportedOrder, got %v", err)
	}
}

func TestRLCUnsupportedFilter(t *testing.T) {
	d, _ := NewRLC(DefaultOptions())
	p := widen(d.Params(), "filter", 9)
	p.Set("filter", 9)
	_, err := d.Recompute(p)
	if !errors.Is(err, physics.ErrUnsupportedFilter) {
		t.Errorf("expected ErrUnsupportedFilter, got %v", err)
	}
}

func TestRLCFilterChoiceRounds(t *testing.T) {
	d, _ := NewRLC(DefaultOptions())
	p := widen(d.Params(), "filter", 1.9999999)
	p.Set("filter", 1.9999999)
	got, err := d.Recompute(p)
	if err != nil {
		t.Fatal(err)
	}

	exact := d.Params()
	exact.Set("filter", float64(physics.HighPass))
	want, _ := d.Recompute(exact)

	gc, _ := got.Curve("phase")
	wc, _ := want.Curve("phase")
	for i := range wc.Y {
		if gc.Y[i] != wc.Y[i] {
			t.Fatalf("filter 1.9999999 should select high-pass, phase differs at %d", i)
		}
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := newTestRegistry(t)
	rc, _ := NewRC(DefaultOptions())
	r.Register(rc)

	got, err := r.Get("rc")
	if err != nil {
		t.Fatal(err)
	}
	if got != Demo(rc) {
		t.Error("Get should return the registered instance")
	}
	if len(r.List()) != 5 {
		t.Errorf("replacing a demo should keep 5 entries, got %d", len(r.List()))
	}
}

func TestRCExcitationPoint(t *testing.T) {
	d, _ := NewRC(DefaultOptions())
	f, err := d.Recompute(d.Params())
	if err != nil {
		t.Fatal(err)
	}
	// τ = 1e-5 s, ωτ = 2π·0.1 at 10 kHz
	x := 2 * math.Pi * 1e4 * 1e-5
	gain, _ := f.Scalar("gain")
	if want := 1 / math.Sqrt(1+x*x); math.Abs(gain.Value-want) > 1e-12 {
		t.Errorf("expected gain %v, got %v", want, gain.Value)
	}
	phase, _ := f.Scalar("phase shift")
	if phase.Value >= 0 || phase.Value <= -90 {
		t.Errorf("phase %v outside (-90, 0)", phase.Value)
	}
	amp, _ := f.Panel("amplitude")
	if !amp.LogX || !amp.LogY {
		t.Error("amplitude panel should be log-log")
	}
	if len(f.MarkersIn("amplitude")) != 2 || len(f.MarkersIn("phase")) != 2 {
		t.Error("expected crosshair markers on both Bode panels")
	}
}

func TestRLCKindsChangePhaseAxis(t *testing.T) {
	d, _ := NewRLC(DefaultOptions())
	p := d.Params()
	f, _ := d.Recompute(p)
	ph, _ := f.Panel("phase")
	if ph.YMin != -92 || ph.YMax != 92 {
		t.Errorf("band-pass phase axis [%v, %v]", ph.YMin, ph.YMax)
	}

	p.Set("filter", float64(physics.LowPass))
	f, err := d.Recompute(p)
	if err != nil {
		t.Fatal(err)
	}
	ph, _ = f.Panel("phase")
	if ph.YMin != -182 {
		t.Errorf("low-pass phase axis starts at %v", ph.YMin)
	}
	q, _ := f.Scalar("Q")
	if want := math.Sqrt(1e-3/1e-7) / 100; math.Abs(q.Value-want) > 1e-12 {
		t.Errorf("expected Q %v, got %v", want, q.Value)
	}
}

func TestMichelsonField(t *testing.T) {
	d, _ := NewMichelson(DefaultOptions())
	f, err := d.Recompute(d.Params())
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Field.Z) != 50 || len(f.Field.Z[0]) != 50 {
		t.Fatalf("expected 50x50 field, got %dx%d", len(f.Field.Z[0]), len(f.Field.Z))
	}
	for _, row := range f.Field.Z {
		for _, v := range row {
			if v < 0 || v > 2 {
				t.Fatalf("intensity %v outside [0, 2]", v)
			}
		}
	}
	order, _ := f.Scalar("centre order")
	if math.Abs(order.Value-40) > 1e-9 {
		t.Errorf("expected centre order 40, got %v", order.Value)
	}
}

func BenchmarkRecompute(b *testing.B) {
	r, err := NewRegistry(DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	for _, name := range r.List() {
		d, _ := r.Get(name)
		p := d.Params()
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := d.Recompute(p); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
