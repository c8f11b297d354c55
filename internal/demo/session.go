package demo

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/san-kum/physlab/internal/params"
)

// Session owns one demo's parameters and its last good frame. Every change
// triggers a full recompute; a failed recompute restores the previous values
// and keeps the previous frame.
type Session struct {
	demo    Demo
	params  *params.Set
	frame   *Frame
	lastErr error
}

// NewSession computes the initial frame from p, or from the demo defaults
// when p is nil.
func NewSession(d Demo, p *params.Set) (*Session, error) {
	if p == nil {
		p = d.Params()
	}
	s := &Session{demo: d, params: p.Clone()}
	frame, err := d.Recompute(s.params)
	if err != nil {
		return nil, fmt.Errorf("%s: initial recompute: %w", d.Name(), err)
	}
	s.frame = frame
	return s, nil
}

func (s *Session) Demo() Demo          { return s.demo }
func (s *Session) Frame() *Frame       { return s.frame }
func (s *Session) LastError() error    { return s.lastErr }
func (s *Session) Params() *params.Set { return s.params.Clone() }

// Set changes one parameter (clamped to its range) and recomputes.
func (s *Session) Set(key string, v float64) error {
	return s.update(key, func(p *params.Set) error { return p.Set(key, v) })
}

// Step moves one parameter by dir slider increments and recomputes.
func (s *Session) Step(key string, dir int) error {
	return s.update(key, func(p *params.Set) error { return p.Step(key, dir) })
}

// Apply sets several parameters at once, then recomputes a single time.
func (s *Session) Apply(values map[string]float64) error {
	return s.update("*", func(p *params.Set) error { return p.Apply(values) })
}

// Reset restores the defaults and recomputes.
func (s *Session) Reset() error {
	return s.update("*", func(p *params.Set) error {
		p.Reset()
		return nil
	})
}

func (s *Session) update(key string, change func(*params.Set) error) error {
	next := s.params.Clone()
	if err := change(next); err != nil {
		return err
	}

	frame, err := s.demo.Recompute(next)
	if err != nil {
		s.lastErr = err
		log.WithFields(log.Fields{
			"demo":  s.demo.Name(),
			"param": key,
		}).WithError(err).Warn("recompute failed, keeping previous frame")
		return fmt.Errorf("%s: %w", s.demo.Name(), err)
	}

	s.params = next
	s.frame = frame
	s.lastErr = nil
	log.WithFields(log.Fields{
		"demo":  s.demo.Name(),
		"param": key,
	}).Debug("recomputed")
	return nil
}
