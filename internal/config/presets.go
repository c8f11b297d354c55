package config

import "sort"

// Presets holds named parameter values per demo.
var Presets = map[string]map[string]map[string]float64{
	"beat": {
		"unison": {"f1": 440, "f2": 440},
		"slow":   {"f1": 440, "f2": 442},
		"fast":   {"f1": 440, "f2": 480},
		"octave": {"f1": 300, "f2": 600},
	},
	"kinetics": {
		"zero":   {"order": 0, "c0": 1, "k": 0.01},
		"first":  {"order": 1, "c0": 1, "k": 0.05},
		"second": {"order": 2, "c0": 1, "k": 0.05},
		"dilute": {"order": 2, "c0": 0.2, "k": 0.1},
	},
	"rc": {
		"audio": {"R": 1e3, "C": 1e-8},
		"slow":  {"R": 1e5, "C": 1e-6},
		"fast":  {"R": 10, "C": 1e-9},
	},
	"rlc": {
		"sharp":     {"R": 10, "L": 1e-2, "C": 1e-9},
		"broad":     {"R": 1e4, "L": 1e-4, "C": 1e-6},
		"low-pass":  {"filter": 1, "R": 30},
		"high-pass": {"filter": 2, "R": 30},
	},
	"michelson": {
		"red":    {"lambda": 650e-9, "e": 1e-5},
		"violet": {"lambda": 400e-9, "e": 1e-5},
		"thick":  {"lambda": 500e-9, "e": 2e-4},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(demoName, preset string) map[string]float64 {
	byName, ok := Presets[demoName]
	if !ok {
		return nil
	}
	values, ok := byName[preset]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func ListPresets(demoName string) []string {
	byName, ok := Presets[demoName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
