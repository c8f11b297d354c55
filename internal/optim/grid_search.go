// Package optim searches demo parameters for target derived values, e.g.
// the R and C that put an RC cutoff at 1 kHz.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/san-kum/physlab/internal/demo"
	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/params"
)

var (
	ErrUnknownScalar = errors.New("optim: unknown derived value")
	ErrNoAxes        = errors.New("optim: nothing to search over")
	ErrNoFeasible    = errors.New("optim: no grid point could be evaluated")
	ErrNoFiniteCost  = errors.New("optim: no evaluated point has a finite cost")
)

// Target asks for the derived value Scalar to come out at Value.
type Target struct {
	Scalar string
	Value  float64
}

// Axis is the list of values tried for one parameter.
type Axis struct {
	Param  string
	Values []float64
}

// AxisFor spans the whole range of sp in n points, logarithmically for log
// parameters. Choice parameters try every choice.
func AxisFor(sp params.Spec, n int) (Axis, error) {
	var (
		g   *grid.Grid
		err error
	)
	switch sp.Scale {
	case params.Choice:
		return Axis{Param: sp.Key, Values: append([]float64(nil), sp.Choices...)}, nil
	case params.Log:
		g, err = grid.Log(sp.Min, sp.Max, n)
	default:
		g, err = grid.Linear(sp.Min, sp.Max, n)
	}
	if err != nil {
		return Axis{}, fmt.Errorf("%s: %w", sp.Key, err)
	}
	return Axis{Param: sp.Key, Values: g.Values()}, nil
}

type Result struct {
	Params    map[string]float64
	Scalars   map[string]float64
	Cost      float64
	Evaluated int
}

type GridSearch struct {
	axes     []Axis
	workers  int
	minChunk int
}

func NewGridSearch(axes []Axis) *GridSearch {
	return &GridSearch{axes: axes, workers: 4, minChunk: 64}
}

// Workers sets how many goroutines evaluate grid points.
func (g *GridSearch) Workers(n int) *GridSearch {
	g.workers = max(1, n)
	return g
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.axes) == 0 {
		return 0
	}
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

// Search evaluates d at every grid point, starting from base, and returns
// the point whose derived values are nearest the targets. Points whose
// recompute fails are skipped. Ties go to the earlier point.
func (g *GridSearch) Search(ctx context.Context, d demo.Demo, base *params.Set, targets []Target) (Result, error) {
	n := g.Size()
	if n == 0 {
		return Result{}, ErrNoAxes
	}
	for _, a := range g.axes {
		if _, ok := base.Spec(a.Param); !ok {
			return Result{}, fmt.Errorf("%w: %s", params.ErrUnknownParam, a.Param)
		}
	}
	ref, err := d.Recompute(base)
	if err != nil {
		return Result{}, err
	}
	for _, t := range targets {
		if _, ok := ref.Scalar(t.Scalar); !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownScalar, t.Scalar)
		}
	}

	var (
		mu        sync.Mutex
		best      = -1
		bestCost  = math.Inf(1)
		bestFrame *demo.Frame
		evaluated int
		lastErr   error
	)

	g.parallelFor(n, func(start, end int) {
		p := base.Clone()
		localBest, localCost := -1, math.Inf(1)
		var localFrame *demo.Frame
		var localErr error
		count := 0

		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				break
			}
			if err := g.point(i, p); err != nil {
				localErr = err
				continue
			}
			f, err := d.Recompute(p)
			if err != nil {
				localErr = err
				continue
			}
			count++
			if c := cost(f, targets); c < localCost {
				localBest, localCost, localFrame = i, c, f
			}
		}

		mu.Lock()
		defer mu.Unlock()
		evaluated += count
		if localErr != nil {
			lastErr = localErr
		}
		if localBest >= 0 && (localCost < bestCost || (localCost == bestCost && localBest < best)) {
			best, bestCost, bestFrame = localBest, localCost, localFrame
		}
	})

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if best < 0 {
		if evaluated > 0 {
			return Result{}, fmt.Errorf("%w: %d points evaluated", ErrNoFiniteCost, evaluated)
		}
		return Result{}, fmt.Errorf("%w: %v", ErrNoFeasible, lastErr)
	}

	res := Result{
		Params:    bestFrame.Params,
		Scalars:   make(map[string]float64, len(bestFrame.Scalars)),
		Cost:      bestCost,
		Evaluated: evaluated,
	}
	for _, s := range bestFrame.Scalars {
		res.Scalars[s.Name] = s.Value
	}
	log.WithFields(log.Fields{
		"demo":      d.Name(),
		"points":    n,
		"evaluated": evaluated,
		"cost":      bestCost,
	}).Info("grid search finished")
	return res, nil
}

// point writes grid point i into p. The last axis varies fastest.
func (g *GridSearch) point(i int, p *params.Set) error {
	for k := len(g.axes) - 1; k >= 0; k-- {
		a := g.axes[k]
		// axis values lie inside the parameter range, so Set never clamps them
		if err := p.Set(a.Param, a.Values[i%len(a.Values)]); err != nil {
			return err
		}
		i /= len(a.Values)
	}
	return nil
}

// cost is the sum of squared relative misses. Targets of zero are compared
// absolutely.
func cost(f *demo.Frame, targets []Target) float64 {
	total := 0.0
	for _, t := range targets {
		s, _ := f.Scalar(t.Scalar)
		miss := s.Value - t.Value
		if t.Value != 0 {
			miss /= t.Value
		}
		if math.IsNaN(miss) || math.IsInf(miss, 0) {
			return math.Inf(1)
		}
		total += miss * miss
	}
	return total
}

// parallelFor executes fn over [0, n) in contiguous chunks.
func (g *GridSearch) parallelFor(n int, fn func(start, end int)) {
	if n <= g.minChunk || g.workers <= 1 {
		fn(0, n)
		return
	}

	workers := g.workers
	if n/g.minChunk < workers {
		workers = n / g.minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
