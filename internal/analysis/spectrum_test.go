package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/demo"
	"github.com/san-kum/physlab/internal/grid"
)

func sine(hz, rate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * hz * float64(i) / rate)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		hz, rate float64
		n        int
	}{
		{50, 1000, 1024},
		{440, 20000, 1000},
		{3, 100, 300},
	}

	for _, tt := range tests {
		s, err := PowerSpectrum(sine(tt.hz, tt.rate, tt.n), tt.rate)
		if err != nil {
			t.Fatal(err)
		}
		if got := s.Dominant(); math.Abs(got-tt.hz) > s.Resolution {
			t.Errorf("%g Hz: dominant %g, resolution %g", tt.hz, got, s.Resolution)
		}
		if len(s.Power)&(len(s.Power)-1) != 0 {
			t.Errorf("spectrum length %d is not a power of two", len(s.Power))
		}
	}
}

func TestPowerSpectrumTooShort(t *testing.T) {
	if _, err := PowerSpectrum([]float64{1, 2, 3}, 10); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func TestSampleRate(t *testing.T) {
	rate, err := SampleRate(grid.MustLinear(0, 1, 101).Values())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rate-100) > 1e-9 {
		t.Errorf("expected 100, got %v", rate)
	}

	if _, err := SampleRate(grid.MustDecades(1, 3, 50).Values()); !errors.Is(err, ErrNonUniform) {
		t.Errorf("expected ErrNonUniform for a log axis, got %v", err)
	}
}

func TestAnalyzeBeatFrame(t *testing.T) {
	d, err := demo.NewBeat(demo.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	f, err := d.Recompute(d.Params())
	if err != nil {
		t.Fatal(err)
	}
	reports := Analyze(f)
	if len(reports) != len(f.Curves) {
		t.Fatalf("expected %d reports, got %d", len(f.Curves), len(reports))
	}
	sig := reports[0]
	if math.Abs(sig.DominantHz-440) > sig.Resolution {
		t.Errorf("signal 1 dominant %v Hz", sig.DominantHz)
	}
	if math.Abs(sig.RMS-1/math.Sqrt2) > 0.01 {
		t.Errorf("signal 1 rms %v", sig.RMS)
	}
}

func TestAnalyzeSkipsFrequencyAxis(t *testing.T) {
	d, _ := demo.NewRC(demo.DefaultOptions())
	f, _ := d.Recompute(d.Params())
	for _, r := range Analyze(f) {
		if r.Panel != "signal" {
			t.Errorf("unexpected report for panel %s", r.Panel)
		}
	}
}
