package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/physlab/internal/demo"
)

var (
	ErrTooShort   = errors.New("analysis: too few samples")
	ErrNonUniform = errors.New("analysis: samples are not evenly spaced")
)

// minSamples is the shortest signal worth transforming.
const minSamples = 8

// Spectrum is a one-sided amplitude spectrum.
type Spectrum struct {
	Freqs      []float64
	Power      []float64
	Resolution float64
}

// PowerSpectrum zero-pads samples to a power of two and returns the
// magnitude of the first half of the transform.
func PowerSpectrum(samples []float64, sampleRate float64) (Spectrum, error) {
	if len(samples) < minSamples {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrTooShort, len(samples))
	}
	n := nextPow2(len(samples))
	padded := make([]float64, n)
	copy(padded, samples)

	spec := fft.FFTReal(padded)
	half := n / 2
	s := Spectrum{
		Freqs:      make([]float64, half),
		Power:      make([]float64, half),
		Resolution: sampleRate / float64(n),
	}
	for i := 0; i < half; i++ {
		s.Freqs[i] = float64(i) * s.Resolution
		s.Power[i] = cmplx.Abs(spec[i])
	}
	return s, nil
}

// Dominant returns the frequency of the strongest non-DC bin.
func (s Spectrum) Dominant() float64 {
	if len(s.Power) < 2 {
		return 0
	}
	return s.Freqs[1+floats.MaxIdx(s.Power[1:])]
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// SampleRate returns the rate of an evenly spaced axis.
func SampleRate(x []float64) (float64, error) {
	if len(x) < 2 {
		return 0, ErrTooShort
	}
	dt := (x[len(x)-1] - x[0]) / float64(len(x)-1)
	if dt <= 0 {
		return 0, ErrNonUniform
	}
	for i := 1; i < len(x); i++ {
		if math.Abs(x[i]-x[i-1]-dt) > 1e-6*dt {
			return 0, fmt.Errorf("%w: step %d", ErrNonUniform, i)
		}
	}
	return 1 / dt, nil
}

// CurveReport summarises one time-domain curve.
type CurveReport struct {
	Curve      string
	Panel      string
	Samples    int
	Min, Max   float64
	RMS        float64
	DominantHz float64
	Resolution float64
}

// Analyze reports every curve of f that lies on a linear, evenly spaced
// axis. Frequency-axis and field data are skipped.
func Analyze(f *demo.Frame) []CurveReport {
	var out []CurveReport
	for _, c := range f.Curves {
		if p, ok := f.Panel(c.Panel); ok && p.LogX {
			continue
		}
		rate, err := SampleRate(c.X)
		if err != nil {
			continue
		}
		spec, err := PowerSpectrum(c.Y, rate)
		if err != nil {
			continue
		}
		out = append(out, CurveReport{
			Curve:      c.Name,
			Panel:      c.Panel,
			Samples:    len(c.Y),
			Min:        floats.Min(c.Y),
			Max:        floats.Max(c.Y),
			RMS:        floats.Norm(c.Y, 2) / math.Sqrt(float64(len(c.Y))),
			DominantHz: spec.Dominant(),
			Resolution: spec.Resolution,
		})
	}
	return out
}
