// Package automation runs scripted demo sequences: YAML scenarios that
// export a figure per step, and parameter sweeps over the derived values.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/demo"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/params"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario defines a scripted sequence of demo snapshots
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	OutputDir   string         `yaml:"output_dir"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Preset values are applied
// first, then Params. Format defaults to the extension of Export.
type ScenarioStep struct {
	Demo   string             `yaml:"demo"`
	Preset string             `yaml:"preset"`
	Params map[string]float64 `yaml:"params"`
	Export string             `yaml:"export"`
	Format *export.Format     `yaml:"format"`
}

// StepResult is the frame computed for one step and where it was written.
type StepResult struct {
	Step  int
	Demo  string
	Frame *demo.Frame
	Path  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyScenario)
	}
	if scenario.OutputDir != "" && !filepath.IsAbs(scenario.OutputDir) {
		scenario.OutputDir = filepath.Join(filepath.Dir(path), scenario.OutputDir)
	}

	return &scenario, nil
}

// RunScenario executes all steps in a scenario. It stops at the first
// failing step and returns the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *demo.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	if scenario.OutputDir != "" {
		if err := os.MkdirAll(scenario.OutputDir, 0o755); err != nil {
			return nil, err
		}
	}

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		entry := log.WithFields(log.Fields{
			"scenario": scenario.Name,
			"step":     i + 1,
			"demo":     step.Demo,
		})
		entry.Info("running step")

		res, err := runStep(scenario, step, registry)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Step = i + 1
		results = append(results, res)
	}

	return results, nil
}

func runStep(scenario *Scenario, step ScenarioStep, registry *demo.Registry) (StepResult, error) {
	d, err := registry.Get(step.Demo)
	if err != nil {
		return StepResult{}, err
	}

	p, err := stepParams(d, step)
	if err != nil {
		return StepResult{}, err
	}

	f, err := d.Recompute(p)
	if err != nil {
		return StepResult{}, fmt.Errorf("%s: %w", d.Name(), err)
	}

	res := StepResult{Demo: d.Name(), Frame: f}
	if step.Export == "" {
		return res, nil
	}

	format, err := stepFormat(step)
	if err != nil {
		return StepResult{}, err
	}
	path := step.Export
	if scenario.OutputDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(scenario.OutputDir, path)
	}
	if err := export.WriteFile(path, f, format); err != nil {
		return StepResult{}, err
	}
	res.Path = path
	return res, nil
}

// stepParams applies a step's preset and then its explicit values. Explicit
// values are checked strictly so a typo in a scenario fails loudly.
func stepParams(d demo.Demo, step ScenarioStep) (*params.Set, error) {
	p := d.Params()
	if step.Preset != "" {
		values := config.GetPreset(d.Name(), step.Preset)
		if values == nil {
			return nil, fmt.Errorf("%w: %s/%s", config.ErrUnknownPreset, d.Name(), step.Preset)
		}
		var err error
		if p, err = p.WithDefaults(values); err != nil {
			return nil, err
		}
	}
	for _, key := range sortedKeys(step.Params) {
		if err := p.SetStrict(key, step.Params[key]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func stepFormat(step ScenarioStep) (export.Format, error) {
	if step.Format != nil {
		return *step.Format, nil
	}
	return export.FormatFromPath(step.Export)
}

// ParameterSweep steps one parameter across a range and records the
// derived values of the demo at each point.
type ParameterSweep struct {
	Demo     string
	Param    string
	Min      float64
	Max      float64
	NumSteps int
	// Log spaces the sweep points logarithmically.
	Log  bool
	Base map[string]float64
}

// SweepResult holds the derived values at one sweep point
type SweepResult struct {
	ParamValue float64
	Scalars    map[string]float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *demo.Registry) ([]SweepResult, error) {
	d, err := registry.Get(sweep.Demo)
	if err != nil {
		return nil, err
	}

	var points *grid.Grid
	if sweep.Log {
		points, err = grid.Log(sweep.Min, sweep.Max, sweep.NumSteps)
	} else {
		points, err = grid.Linear(sweep.Min, sweep.Max, sweep.NumSteps)
	}
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", sweep.Param, err)
	}

	p := d.Params()
	for _, key := range sortedKeys(sweep.Base) {
		if err := p.SetStrict(key, sweep.Base[key]); err != nil {
			return nil, err
		}
	}

	results := make([]SweepResult, 0, points.Len())
	for i, v := range points.Values() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if err := p.SetStrict(sweep.Param, v); err != nil {
			return results, err
		}
		f, err := d.Recompute(p)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		scalars := make(map[string]float64, len(f.Scalars))
		for _, s := range f.Scalars {
			scalars[s.Name] = s.Value
		}
		results = append(results, SweepResult{ParamValue: v, Scalars: scalars})

		log.WithFields(log.Fields{
			"demo":  d.Name(),
			"param": sweep.Param,
			"value": v,
		}).Debugf("sweep %d/%d", i+1, points.Len())
	}

	return results, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
