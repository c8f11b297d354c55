// Package config loads physlab settings from YAML or INI files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/demo"
	"github.com/san-kum/physlab/internal/params"
)

const (
	DefaultDemo     = "beat"
	DefaultTheme    = "dark"
	DefaultLogLevel = "warn"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrBadConfig     = errors.New("config: malformed config")
)

type Config struct {
	Demo string `yaml:"demo"`

	// Preset applies to every demo that defines a preset of that name.
	// Presets picks one per demo and takes precedence.
	Preset  string            `yaml:"preset,omitempty"`
	Presets map[string]string `yaml:"presets,omitempty"`

	Theme    string     `yaml:"theme"`
	LogLevel string     `yaml:"log_level"`
	Grids    GridConfig `yaml:"grids"`

	// Params overrides parameter defaults, keyed by demo then parameter.
	Params map[string]map[string]float64 `yaml:"params,omitempty"`
}

type GridConfig struct {
	BeatSamples       int     `yaml:"beat_samples" ini:"beat_samples"`
	BeatWindow        float64 `yaml:"beat_window" ini:"beat_window"`
	KineticsSamples   int     `yaml:"kinetics_samples" ini:"kinetics_samples"`
	KineticsDuration  float64 `yaml:"kinetics_duration" ini:"kinetics_duration"`
	FilterSamples     int     `yaml:"filter_samples" ini:"filter_samples"`
	FilterDecadeLow   float64 `yaml:"filter_decade_low" ini:"filter_decade_low"`
	FilterDecadeHigh  float64 `yaml:"filter_decade_high" ini:"filter_decade_high"`
	ExcitationHz      float64 `yaml:"excitation_hz" ini:"excitation_hz"`
	ExcitationSamples int     `yaml:"excitation_samples" ini:"excitation_samples"`
	ExcitationWindow  float64 `yaml:"excitation_window" ini:"excitation_window"`
	MeshSize          int     `yaml:"mesh_size" ini:"mesh_size"`
	MeshHalfWidth     float64 `yaml:"mesh_half_width" ini:"mesh_half_width"`
}

func DefaultConfig() *Config {
	o := demo.DefaultOptions()
	return &Config{
		Demo:     DefaultDemo,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
		Grids: GridConfig{
			BeatSamples:       o.BeatSamples,
			BeatWindow:        o.BeatWindow,
			KineticsSamples:   o.KineticsSamples,
			KineticsDuration:  o.KineticsDuration,
			FilterSamples:     o.FilterSamples,
			FilterDecadeLow:   o.FilterDecadeLow,
			FilterDecadeHigh:  o.FilterDecadeHigh,
			ExcitationHz:      o.ExcitationHz,
			ExcitationSamples: o.ExcitationSamples,
			ExcitationWindow:  o.ExcitationWindow,
			MeshSize:          o.MeshSize,
			MeshHalfWidth:     o.MeshHalfWidth,
		},
	}
}

// Load reads a YAML file, or an INI file when path ends in .ini. Missing
// settings keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		return parseINI(data)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// parseINI reads the root keys, a [grids] section and one [params.<demo>]
// section per demo.
func parseINI(data []byte) (*Config, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	cfg := DefaultConfig()
	root := file.Section("")
	cfg.Demo = root.Key("demo").MustString(cfg.Demo)
	cfg.Preset = root.Key("preset").MustString(cfg.Preset)
	cfg.Theme = root.Key("theme").MustString(cfg.Theme)
	cfg.LogLevel = root.Key("log_level").MustString(cfg.LogLevel)

	if err := file.Section("grids").MapTo(&cfg.Grids); err != nil {
		return nil, fmt.Errorf("%w: [grids]: %v", ErrBadConfig, err)
	}

	if sec, err := file.GetSection("presets"); err == nil {
		cfg.Presets = sec.KeysHash()
	}

	for _, sec := range file.Sections() {
		name, ok := strings.CutPrefix(sec.Name(), "params.")
		if !ok {
			continue
		}
		for _, key := range sec.Keys() {
			v, err := key.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: [%s] %s: %v", ErrBadConfig, sec.Name(), key.Name(), err)
			}
			if cfg.Params == nil {
				cfg.Params = make(map[string]map[string]float64)
			}
			if cfg.Params[name] == nil {
				cfg.Params[name] = make(map[string]float64)
			}
			cfg.Params[name][key.Name()] = v
		}
	}
	return cfg, nil
}

func (c *Config) Options() demo.Options {
	g := c.Grids
	return demo.Options{
		BeatSamples:       g.BeatSamples,
		BeatWindow:        g.BeatWindow,
		KineticsSamples:   g.KineticsSamples,
		KineticsDuration:  g.KineticsDuration,
		FilterSamples:     g.FilterSamples,
		FilterDecadeLow:   g.FilterDecadeLow,
		FilterDecadeHigh:  g.FilterDecadeHigh,
		ExcitationHz:      g.ExcitationHz,
		ExcitationSamples: g.ExcitationSamples,
		ExcitationWindow:  g.ExcitationWindow,
		MeshSize:          g.MeshSize,
		MeshHalfWidth:     g.MeshHalfWidth,
	}
}

// ParamsFor returns d's parameter set with the configured preset and then
// the per-demo overrides applied as defaults. A preset named for d in
// Presets must exist; the shared Preset is skipped for demos without it.
func (c *Config) ParamsFor(d demo.Demo) (*params.Set, error) {
	p := d.Params()
	values, err := c.presetFor(d.Name())
	if err != nil {
		return nil, err
	}
	if values != nil {
		if p, err = p.WithDefaults(values); err != nil {
			return nil, err
		}
	}
	if over := c.Params[d.Name()]; len(over) > 0 {
		return p.WithDefaults(over)
	}
	return p, nil
}

// WithPreset returns a copy of c that selects preset for demoName.
func (c *Config) WithPreset(demoName, preset string) *Config {
	out := *c
	out.Presets = make(map[string]string, len(c.Presets)+1)
	for k, v := range c.Presets {
		out.Presets[k] = v
	}
	out.Presets[demoName] = preset
	return &out
}

func (c *Config) presetFor(name string) (map[string]float64, error) {
	if preset := c.Presets[name]; preset != "" {
		values := GetPreset(name, preset)
		if values == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, name, preset)
		}
		return values, nil
	}
	if c.Preset == "" {
		return nil, nil
	}
	values := GetPreset(name, c.Preset)
	if values == nil {
		log.WithFields(log.Fields{"demo": name, "preset": c.Preset}).Debug("demo has no such preset, using defaults")
	}
	return values, nil
}
