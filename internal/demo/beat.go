package demo

import (
	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
)

type Beat struct {
	t *grid.Grid
}

func NewBeat(opts Options) (*Beat, error) {
	t, err := grid.Linear(0, opts.BeatWindow, opts.BeatSamples)
	if err != nil {
		return nil, err
	}
	return &Beat{t: t}, nil
}

func (b *Beat) Name() string        { return "beat" }
func (b *Beat) Description() string { return "two close frequencies and their beat" }

func (b *Beat) Params() *params.Set {
	return params.NewSet(
		params.Spec{Key: "f1", Label: "f_1", Unit: "Hz", Min: 240, Max: 640, Default: 440, Steps: 400},
		params.Spec{Key: "f2", Label: "f_2", Unit: "Hz", Min: 240, Max: 640, Default: 440, Steps: 400},
	)
}

func (b *Beat) Recompute(p *params.Set) (*Frame, error) {
	f1, f2 := p.Get("f1"), p.Get("f2")
	t := b.t.Values()
	s := physics.Beat(f1, f2, t)

	const (
		xl = "time (s)"
		yl = "amplitude"
	)
	return &Frame{
		Demo:   b.Name(),
		Params: p.Map(),
		Panels: []Panel{
			{ID: "sig1", Title: "signal 1", XLabel: xl, YLabel: yl, YMin: -1.1, YMax: 1.1},
			{ID: "sig2", Title: "signal 2", XLabel: xl, YLabel: yl, YMin: -1.1, YMax: 1.1},
			{ID: "sum", Title: "sum", XLabel: xl, YLabel: yl, YMin: -2.2, YMax: 2.2},
		},
		Curves: []Curve{
			{Name: "signal 1", Panel: "sig1", X: t, Y: s.Sig1},
			{Name: "signal 2", Panel: "sig2", X: t, Y: s.Sig2},
			{Name: "sum", Panel: "sum", X: t, Y: s.Sum},
			{Name: "envelope", Panel: "sum", X: t, Y: s.Envelope, Dashed: true},
			{Name: "-envelope", Panel: "sum", X: t, Y: s.NegEnvelope, Dashed: true},
		},
		Scalars: []Scalar{
			{Name: "beat frequency", Value: physics.BeatFrequency(f1, f2), Unit: "Hz"},
			{Name: "beat period", Value: physics.BeatPeriod(f1, f2), Unit: "s"},
		},
	}, nil
}
