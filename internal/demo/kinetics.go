package demo

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
)

type Kinetics struct {
	t *grid.Grid
}

func NewKinetics(opts Options) (*Kinetics, error) {
	t, err := grid.Linear(0, opts.KineticsDuration, opts.KineticsSamples)
	if err != nil {
		return nil, err
	}
	return &Kinetics{t: t}, nil
}

func (k *Kinetics) Name() string        { return "kinetics" }
func (k *Kinetics) Description() string { return "reactant concentration, order 0/1/2" }

func (k *Kinetics) Params() *params.Set {
	orders := physics.Orders()
	choices := make([]float64, len(orders))
	names := make([]string, len(orders))
	for i, o := range orders {
		choices[i] = float64(o)
		names[i] = fmt.Sprint(int(o))
	}
	return params.NewSet(
		params.Spec{Key: "c0", Label: "C_0", Unit: "mol/L", Min: 0.2, Max: 1, Default: 1},
		params.Spec{Key: "k", Label: "k", Min: 0.01, Max: 0.1, Default: 0.05, Steps: 90},
		params.Spec{Key: "order", Label: "order", Scale: params.Choice, Choices: choices, Names: names, Default: float64(physics.FirstOrder)},
	)
}

func (k *Kinetics) Recompute(p *params.Set) (*Frame, error) {
	c0, rate := p.Get("c0"), p.Get("k")
	order := physics.Order(int(math.Round(p.Get("order"))))

	t := k.t.Values()
	c, err := physics.ConcentrationProfile(c0, rate, order, t)
	if err != nil {
		return nil, err
	}
	half, err := physics.HalfLife(c0, rate, order)
	if err != nil {
		return nil, err
	}

	return &Frame{
		Demo:   k.Name(),
		Params: p.Map(),
		Panels: []Panel{{
			ID:     "concentration",
			Title:  "reactant concentration",
			XLabel: "time (s)",
			YLabel: "concentration (mol/L)",
			YMin:   0,
			YMax:   1.1 * c0,
		}},
		Curves: []Curve{{Name: "C(t)", Panel: "concentration", X: t, Y: c}},
		Markers: []Marker{
			{Panel: "concentration", X0: half, Y0: 0, X1: half, Y1: c0 / 2},
			{Panel: "concentration", X0: 0, Y0: c0 / 2, X1: half, Y1: c0 / 2},
		},
		Scalars: []Scalar{{Name: "half-life", Value: half, Unit: "s"}},
	}, nil
}
