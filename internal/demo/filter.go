package demo

import (
	"math"

	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
)

const bodeFloor = 1e-4

// bode holds the grids shared by the RC and RLC demos.
type bode struct {
	freq         *grid.Grid
	time         *grid.Grid
	excitationHz float64
}

func newBode(opts Options) (bode, error) {
	f, err := grid.Decades(opts.FilterDecadeLow, opts.FilterDecadeHigh, opts.FilterSamples)
	if err != nil {
		return bode{}, err
	}
	t, err := grid.Linear(0, opts.ExcitationWindow, opts.ExcitationSamples)
	if err != nil {
		return bode{}, err
	}
	return bode{freq: f, time: t, excitationHz: opts.ExcitationHz}, nil
}

func componentSpecs() (r, c, l params.Spec) {
	r = params.Spec{Key: "R", Label: "R", Unit: "Ω", Min: 1e1, Max: 1e5, Default: 100, Scale: params.Log}
	c = params.Spec{Key: "C", Label: "C", Unit: "F", Min: 1e-9, Max: 1e-6, Default: 1e-7, Scale: params.Log}
	l = params.Spec{Key: "L", Label: "L", Unit: "H", Min: 1e-4, Max: 1e-2, Default: 1e-3, Scale: params.Log}
	return r, c, l
}

// frame lays out the amplitude, phase and time-domain panels for f.
func (b bode) frame(name string, p *params.Set, f physics.Filter, phaseMin, phaseMax float64) *Frame {
	freqs := b.freq.Values()
	t := b.time.Values()
	mag, phase := physics.Bode(f, freqs)
	exc := physics.ResponseAt(f, b.excitationHz)
	fx, f0 := b.excitationHz, b.freq.First()

	return &Frame{
		Demo:   name,
		Params: p.Map(),
		Panels: []Panel{
			{ID: "amplitude", Title: "amplitude", XLabel: "frequency (Hz)", YLabel: "|H|", LogX: true, LogY: true, YMin: bodeFloor, YMax: 1.3},
			{ID: "phase", Title: "phase", XLabel: "frequency (Hz)", YLabel: "phase (°)", LogX: true, YMin: phaseMin, YMax: phaseMax},
			{ID: "signal", Title: "excitation", XLabel: "time (s)", YLabel: "amplitude (V)", YMin: -1.1, YMax: 1.1},
		},
		Curves: []Curve{
			{Name: "|H|", Panel: "amplitude", X: freqs, Y: mag},
			{Name: "phase", Panel: "phase", X: freqs, Y: phase},
			{Name: "input", Panel: "signal", X: t, Y: physics.Excitation(fx, t)},
			{Name: "output", Panel: "signal", X: t, Y: physics.SteadyState(exc, fx, t), Dashed: true},
		},
		Markers: []Marker{
			{Panel: "amplitude", X0: fx, Y0: bodeFloor, X1: fx, Y1: exc.Magnitude},
			{Panel: "amplitude", X0: f0, Y0: exc.Magnitude, X1: fx, Y1: exc.Magnitude},
			{Panel: "phase", X0: fx, Y0: phaseMin, X1: fx, Y1: exc.PhaseDeg},
			{Panel: "phase", X0: f0, Y0: exc.PhaseDeg, X1: fx, Y1: exc.PhaseDeg},
		},
		Scalars: []Scalar{
			{Name: "excitation", Value: fx, Unit: "Hz"},
			{Name: "gain", Value: exc.Magnitude},
			{Name: "phase shift", Value: exc.PhaseDeg, Unit: "°"},
		},
	}
}

type RC struct {
	bode
}

func NewRC(opts Options) (*RC, error) {
	b, err := newBode(opts)
	if err != nil {
		return nil, err
	}
	return &RC{bode: b}, nil
}

func (d *RC) Name() string        { return "rc" }
func (d *RC) Description() string { return "RC low-pass Bode plot" }

func (d *RC) Params() *params.Set {
	r, c, _ := componentSpecs()
	return params.NewSet(r, c)
}

func (d *RC) Recompute(p *params.Set) (*Frame, error) {
	f := physics.RC{R: p.Get("R"), C: p.Get("C")}
	fr := d.frame(d.Name(), p, f, -92, 2)
	fr.Scalars = append(fr.Scalars,
		Scalar{Name: "tau", Value: f.Tau(), Unit: "s"},
		Scalar{Name: "cutoff", Value: f.CutoffHz(), Unit: "Hz"},
	)
	return fr, nil
}

type RLC struct {
	bode
}

func NewRLC(opts Options) (*RLC, error) {
	b, err := newBode(opts)
	if err != nil {
		return nil, err
	}
	return &RLC{bode: b}, nil
}

func (d *RLC) Name() string        { return "rlc" }
func (d *RLC) Description() string { return "series RLC filter Bode plot" }

func (d *RLC) Params() *params.Set {
	r, c, l := componentSpecs()
	kinds := physics.FilterKinds()
	choices := make([]float64, len(kinds))
	names := make([]string, len(kinds))
	for i, k := range kinds {
		choices[i] = float64(k)
		names[i] = k.String()
	}
	return params.NewSet(r, c, l, params.Spec{
		Key:     "filter",
		Label:   "filter",
		Scale:   params.Choice,
		Choices: choices,
		Names:   names,
		Default: float64(physics.BandPass),
	})
}

func (d *RLC) Recompute(p *params.Set) (*Frame, error) {
	f := physics.RLC{
		R:    p.Get("R"),
		L:    p.Get("L"),
		C:    p.Get("C"),
		Kind: physics.FilterKind(int(math.Round(p.Get("filter")))),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	phaseMin, phaseMax := -92.0, 92.0
	if f.Kind != physics.BandPass {
		phaseMin, phaseMax = -182, 182
	}
	fr := d.frame(d.Name(), p, f, phaseMin, phaseMax)
	fr.Scalars = append(fr.Scalars,
		Scalar{Name: "omega0", Value: f.Omega0(), Unit: "rad/s"},
		Scalar{Name: "f0", Value: f.Omega0() / (2 * math.Pi), Unit: "Hz"},
		Scalar{Name: "Q", Value: f.Quality()},
	)
	return fr, nil
}
