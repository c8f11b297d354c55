// Package grid provides the immutable sample grids the demos are evaluated on.
//
// A [Grid] is a strictly increasing 1-D sequence (time or frequency); a
// [Mesh] is a rectangular 2-D position mesh. Both are created once per demo
// session and never mutated; every accessor hands out a copy.
package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrTooFewSamples = errors.New("grid: at least two samples required")
	ErrEmptyInterval = errors.New("grid: interval must be increasing")
	ErrNonPositive   = errors.New("grid: logarithmic bounds must be positive")
)

type Grid struct {
	values []float64
	log    bool
}

// Linear returns n evenly spaced samples over [start, end], endpoints included.
func Linear(start, end float64, n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewSamples, n)
	}
	if !(end > start) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrEmptyInterval, start, end)
	}
	v := floats.Span(make([]float64, n), start, end)
	v[n-1] = end
	return &Grid{values: v}, nil
}

// Log returns n logarithmically spaced samples over [start, end].
func Log(start, end float64, n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewSamples, n)
	}
	if start <= 0 || end <= 0 {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrNonPositive, start, end)
	}
	if !(end > start) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrEmptyInterval, start, end)
	}
	v := floats.LogSpan(make([]float64, n), start, end)
	// LogSpan goes through exp/log; pin the endpoints exactly.
	v[0], v[n-1] = start, end
	return &Grid{values: v, log: true}, nil
}

// Decades is Log over [10^lo, 10^hi].
func Decades(lo, hi float64, n int) (*Grid, error) {
	return Log(math.Pow(10, lo), math.Pow(10, hi), n)
}

func MustLinear(start, end float64, n int) *Grid {
	g, err := Linear(start, end, n)
	if err != nil {
		panic(err)
	}
	return g
}

func MustDecades(lo, hi float64, n int) *Grid {
	g, err := Decades(lo, hi, n)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Len() int         { return len(g.values) }
func (g *Grid) At(i int) float64 { return g.values[i] }
func (g *Grid) IsLog() bool      { return g.log }
func (g *Grid) First() float64   { return g.values[0] }
func (g *Grid) Last() float64    { return g.values[len(g.values)-1] }

// Values returns a copy of the samples.
func (g *Grid) Values() []float64 {
	c := make([]float64, len(g.values))
	copy(c, g.values)
	return c
}

// Map evaluates fn at every sample into a fresh slice.
func (g *Grid) Map(fn func(float64) float64) []float64 {
	out := make([]float64, len(g.values))
	for i, v := range g.values {
		out[i] = fn(v)
	}
	return out
}

// Mesh is a rectangular 2-D mesh built from two 1-D grids. Row r corresponds
// to Y.At(r), column c to X.At(c).
type Mesh struct {
	X, Y *Grid
}

func NewMesh(x, y *Grid) *Mesh {
	return &Mesh{X: x, Y: y}
}

// Square builds an n×n linear mesh over [lo, hi]².
func Square(lo, hi float64, n int) (*Mesh, error) {
	g, err := Linear(lo, hi, n)
	if err != nil {
		return nil, err
	}
	return &Mesh{X: g, Y: g}, nil
}

func (m *Mesh) Dims() (cols, rows int) { return m.X.Len(), m.Y.Len() }

// Map evaluates fn over the mesh, row-major.
func (m *Mesh) Map(fn func(x, y float64) float64) [][]float64 {
	cols, rows := m.Dims()
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		y := m.Y.At(r)
		row := make([]float64, cols)
		for c := 0; c < cols; c++ {
			row[c] = fn(m.X.At(c), y)
		}
		out[r] = row
	}
	return out
}
