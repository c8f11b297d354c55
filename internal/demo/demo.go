// Package demo adapts the physics models to an interactive display.
//
// Each [Demo] owns its sample grids and turns a parameter set into a [Frame]
// by full recomputation. A [Session] applies one parameter change at a time
// and keeps the last good frame when a recompute fails.
package demo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/params"
)

var ErrUnknownDemo = errors.New("demo: unknown demo")

type Demo interface {
	Name() string
	Description() string
	// Params returns a fresh parameter set holding the defaults.
	Params() *params.Set
	// Recompute evaluates the model for p. It must not retain p or any
	// state between calls.
	Recompute(p *params.Set) (*Frame, error)
}

// Options sizes the grids shared by the demos.
type Options struct {
	BeatSamples int
	BeatWindow  float64

	KineticsSamples  int
	KineticsDuration float64

	FilterSamples    int
	FilterDecadeLow  float64
	FilterDecadeHigh float64

	ExcitationHz      float64
	ExcitationSamples int
	ExcitationWindow  float64

	MeshSize      int
	MeshHalfWidth float64
}

func DefaultOptions() Options {
	return Options{
		BeatSamples:       1000,
		BeatWindow:        50e-3,
		KineticsSamples:   100,
		KineticsDuration:  100,
		FilterSamples:     1000,
		FilterDecadeLow:   1,
		FilterDecadeHigh:  8,
		ExcitationHz:      1e4,
		ExcitationSamples: 1000,
		ExcitationWindow:  5e-4,
		MeshSize:          50,
		MeshHalfWidth:     0.5,
	}
}

type Registry struct {
	demos map[string]Demo
}

// NewRegistry builds the grids described by opts and registers every demo.
func NewRegistry(opts Options) (*Registry, error) {
	beat, err := NewBeat(opts)
	if err != nil {
		return nil, fmt.Errorf("beat: %w", err)
	}
	kin, err := NewKinetics(opts)
	if err != nil {
		return nil, fmt.Errorf("kinetics: %w", err)
	}
	rc, err := NewRC(opts)
	if err != nil {
		return nil, fmt.Errorf("rc: %w", err)
	}
	rlc, err := NewRLC(opts)
	if err != nil {
		return nil, fmt.Errorf("rlc: %w", err)
	}
	mich, err := NewMichelson(opts)
	if err != nil {
		return nil, fmt.Errorf("michelson: %w", err)
	}

	r := &Registry{demos: make(map[string]Demo)}
	for _, d := range []Demo{beat, kin, rc, rlc, mich} {
		r.Register(d)
	}
	return r, nil
}

// Register adds d under its own name, replacing any demo of that name.
func (r *Registry) Register(d Demo) {
	r.demos[d.Name()] = d
}

func (r *Registry) Get(name string) (Demo, error) {
	d, ok := r.demos[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDemo, name)
	}
	return d, nil
}

// List returns the demo names in menu order.
func (r *Registry) List() []string {
	order := map[string]int{"beat": 0, "kinetics": 1, "rc": 2, "rlc": 3, "michelson": 4}
	names := make([]string, 0, len(r.demos))
	for name := range r.demos {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := order[names[i]]
		oj, jok := order[names[j]]
		if iok && jok {
			return oi < oj
		}
		if iok != jok {
			return iok
		}
		return names[i] < names[j]
	})
	return names
}
