// Package params holds the user-adjustable parameters of a demo.
//
// A [Set] plays the role of the slider panel: it keeps every value inside the
// interval (or choice list) declared by its [Spec] and moves values in slider
// steps. Models never validate ranges themselves.
package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownParam = errors.New("params: unknown parameter")
	ErrOutOfRange   = errors.New("params: value out of range")
	ErrBadValue     = errors.New("params: malformed value")
)

type Scale int

const (
	Linear Scale = iota
	Log
	Choice
)

// DefaultSteps is the number of slider increments across a parameter range.
const DefaultSteps = 100

type Spec struct {
	Key     string
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Scale   Scale

	// Choices are the allowed values of a Choice parameter and Names their
	// display labels (same length, optional).
	Choices []float64
	Names   []string

	// Display scales the value for labels only (e.g. 1e9 to show metres as
	// nanometres). Zero means 1.
	Display float64

	Steps int
}

func (s Spec) steps() int {
	if s.Steps > 0 {
		return s.Steps
	}
	return DefaultSteps
}

func (s Spec) Contains(v float64) bool {
	if s.Scale == Choice {
		return s.choiceIndex(v) >= 0
	}
	return v >= s.Min && v <= s.Max
}

// Clamp pulls v into range; Choice parameters snap to the nearest choice.
func (s Spec) Clamp(v float64) float64 {
	if s.Scale == Choice {
		return s.Choices[s.nearestChoice(v)]
	}
	if math.IsNaN(v) {
		return s.Default
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Step moves v by dir slider increments. Log parameters step in decades.
func (s Spec) Step(v float64, dir int) float64 {
	switch s.Scale {
	case Choice:
		i := s.nearestChoice(v) + dir
		if i < 0 {
			i = 0
		}
		if i >= len(s.Choices) {
			i = len(s.Choices) - 1
		}
		return s.Choices[i]
	case Log:
		lo, hi := math.Log10(s.Min), math.Log10(s.Max)
		e := math.Log10(v) + float64(dir)*(hi-lo)/float64(s.steps())
		return s.Clamp(math.Pow(10, e))
	default:
		return s.Clamp(v + float64(dir)*(s.Max-s.Min)/float64(s.steps()))
	}
}

// Fraction is the slider position of v in [0, 1].
func (s Spec) Fraction(v float64) float64 {
	switch s.Scale {
	case Choice:
		if len(s.Choices) < 2 {
			return 0
		}
		return float64(s.nearestChoice(v)) / float64(len(s.Choices)-1)
	case Log:
		lo, hi := math.Log10(s.Min), math.Log10(s.Max)
		if hi == lo {
			return 0
		}
		return (math.Log10(v) - lo) / (hi - lo)
	default:
		if s.Max == s.Min {
			return 0
		}
		return (v - s.Min) / (s.Max - s.Min)
	}
}

// Format renders v the way the slider label shows it. Log-scale component
// values use scientific notation.
func (s Spec) Format(v float64) string {
	if s.Display != 0 && s.Scale != Choice {
		v *= s.Display
	}
	var out string
	switch s.Scale {
	case Choice:
		if i := s.choiceIndex(v); i >= 0 && i < len(s.Names) {
			return s.Names[i]
		}
		out = strconv.FormatFloat(v, 'g', -1, 64)
	case Log:
		out = fmt.Sprintf("%.2E", v)
	default:
		out = fmt.Sprintf("%.4g", v)
	}
	if s.Unit != "" {
		out += " " + s.Unit
	}
	return out
}

// Parse accepts a number or, for Choice parameters, a choice name. A bare
// number is in SI units; a number followed by the parameter's unit ("600nm",
// "600 nm") is in the units the slider label shows.
func (s Spec) Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)
	for i, name := range s.Names {
		if strings.EqualFold(name, text) && i < len(s.Choices) {
			return s.Choices[i], nil
		}
	}
	num, display := s.cutUnit(text)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadValue, s.Key, text)
	}
	if display && s.Display != 0 {
		v /= s.Display
	}
	return v, nil
}

// cutUnit strips a trailing unit symbol. "u" stands in for "µ".
func (s Spec) cutUnit(text string) (string, bool) {
	if s.Unit == "" {
		return text, false
	}
	for _, unit := range []string{s.Unit, strings.ReplaceAll(s.Unit, "µ", "u")} {
		if num, ok := strings.CutSuffix(text, unit); ok {
			return strings.TrimSpace(num), true
		}
	}
	return text, false
}

func (s Spec) choiceIndex(v float64) int {
	for i, c := range s.Choices {
		if c == v {
			return i
		}
	}
	return -1
}

func (s Spec) nearestChoice(v float64) int {
	best, dist := 0, math.Inf(1)
	for i, c := range s.Choices {
		if d := math.Abs(c - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}
