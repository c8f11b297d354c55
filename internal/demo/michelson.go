package demo

import (
	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
)

type Michelson struct {
	mesh *grid.Mesh
}

func NewMichelson(opts Options) (*Michelson, error) {
	m, err := grid.Square(-opts.MeshHalfWidth, opts.MeshHalfWidth, opts.MeshSize)
	if err != nil {
		return nil, err
	}
	return &Michelson{mesh: m}, nil
}

func (m *Michelson) Name() string        { return "michelson" }
func (m *Michelson) Description() string { return "air-gap interference rings" }

func (m *Michelson) Params() *params.Set {
	return params.NewSet(
		params.Spec{Key: "lambda", Label: "λ", Unit: "nm", Display: 1e9, Min: 400e-9, Max: 750e-9, Default: 500e-9, Steps: 350},
		params.Spec{Key: "e", Label: "e", Unit: "µm", Display: 1e6, Min: 1e-5, Max: 5e-4, Default: 1e-5, Steps: 490},
	)
}

func (m *Michelson) Recompute(p *params.Set) (*Frame, error) {
	lambda, e := p.Get("lambda"), p.Get("e")
	z := m.mesh.Map(func(x, y float64) float64 {
		return physics.Intensity(x, y, lambda, e)
	})

	return &Frame{
		Demo:   m.Name(),
		Params: p.Map(),
		Panels: []Panel{{ID: "screen", Title: "fringes", XLabel: "x", YLabel: "y", YMin: m.mesh.Y.First(), YMax: m.mesh.Y.Last()}},
		Field: &Field{
			Panel: "screen",
			X:     m.mesh.X.Values(),
			Y:     m.mesh.Y.Values(),
			Z:     z,
			Min:   0,
			Max:   2,
		},
		Scalars: []Scalar{
			{Name: "centre order", Value: physics.CentreOrder(lambda, e)},
			{Name: "centre intensity", Value: physics.Intensity(0, 0, lambda, e)},
		},
	}, nil
}
