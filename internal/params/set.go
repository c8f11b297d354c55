package params

import (
	"fmt"
	"strings"
)

// Set is an ordered, bounded parameter store.
type Set struct {
	specs  []Spec
	index  map[string]int
	values []float64
}

// NewSet creates a set holding each spec's default.
func NewSet(specs ...Spec) *Set {
	s := &Set{
		specs:  make([]Spec, len(specs)),
		index:  make(map[string]int, len(specs)),
		values: make([]float64, len(specs)),
	}
	copy(s.specs, specs)
	for i, sp := range s.specs {
		s.index[sp.Key] = i
		s.values[i] = sp.Clamp(sp.Default)
	}
	return s
}

func (s *Set) Len() int { return len(s.specs) }

func (s *Set) Specs() []Spec {
	out := make([]Spec, len(s.specs))
	copy(out, s.specs)
	return out
}

func (s *Set) Keys() []string {
	keys := make([]string, len(s.specs))
	for i, sp := range s.specs {
		keys[i] = sp.Key
	}
	return keys
}

func (s *Set) Spec(key string) (Spec, bool) {
	i, ok := s.index[key]
	if !ok {
		return Spec{}, false
	}
	return s.specs[i], true
}

// Get returns the current value of key, or 0 for an unknown key.
func (s *Set) Get(key string) float64 {
	i, ok := s.index[key]
	if !ok {
		return 0
	}
	return s.values[i]
}

// Set stores v, clamped into the parameter's range.
func (s *Set) Set(key string, v float64) error {
	i, ok := s.index[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, key)
	}
	s.values[i] = s.specs[i].Clamp(v)
	return nil
}

// SetStrict stores v only if it already lies in range.
func (s *Set) SetStrict(key string, v float64) error {
	i, ok := s.index[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, key)
	}
	sp := s.specs[i]
	if !sp.Contains(v) {
		if sp.Display != 0 && sp.Scale != Choice {
			return fmt.Errorf("%w: %s=%g not in [%g, %g] (or [%s, %s] with a unit suffix)",
				ErrOutOfRange, key, v, sp.Min, sp.Max, sp.Format(sp.Min), sp.Format(sp.Max))
		}
		return fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrOutOfRange, key, v, sp.Min, sp.Max)
	}
	s.values[i] = v
	return nil
}

// Step moves key by dir slider increments.
func (s *Set) Step(key string, dir int) error {
	i, ok := s.index[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, key)
	}
	s.values[i] = s.specs[i].Step(s.values[i], dir)
	return nil
}

// Format renders the current value of key.
func (s *Set) Format(key string) string {
	i, ok := s.index[key]
	if !ok {
		return ""
	}
	return s.specs[i].Format(s.values[i])
}

func (s *Set) Reset() {
	for i, sp := range s.specs {
		s.values[i] = sp.Clamp(sp.Default)
	}
}

func (s *Set) Clone() *Set {
	c := NewSet(s.specs...)
	copy(c.values, s.values)
	return c
}

// Map returns a snapshot of all values keyed by name.
func (s *Set) Map() map[string]float64 {
	m := make(map[string]float64, len(s.specs))
	for i, sp := range s.specs {
		m[sp.Key] = s.values[i]
	}
	return m
}

// Apply sets every entry of m, clamping as Set does.
func (s *Set) Apply(m map[string]float64) error {
	for k, v := range m {
		if err := s.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// WithDefaults returns a copy of the set whose defaults are replaced by m.
// Unknown keys are reported.
func (s *Set) WithDefaults(m map[string]float64) (*Set, error) {
	specs := s.Specs()
	for k, v := range m {
		i, ok := s.index[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParam, k)
		}
		specs[i].Default = v
	}
	return NewSet(specs...), nil
}

// ParseAssignment applies a "key=value" string strictly.
func (s *Set) ParseAssignment(assign string) error {
	key, text, ok := strings.Cut(assign, "=")
	if !ok {
		return fmt.Errorf("%w: expected key=value, got %q", ErrBadValue, assign)
	}
	key = strings.TrimSpace(key)
	sp, found := s.Spec(key)
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownParam, key)
	}
	v, err := sp.Parse(text)
	if err != nil {
		return err
	}
	return s.SetStrict(key, v)
}
