package physics

import "math"

// BeatSignals holds the curves of two superposed sine waves.
type BeatSignals struct {
	Sig1, Sig2  []float64
	Sum         []float64
	Envelope    []float64
	NegEnvelope []float64
}

// Beat samples sin(2πf1 t), sin(2πf2 t), their sum and the ±2cos(π(f1−f2)t)
// envelope over t.
func Beat(f1, f2 float64, t []float64) BeatSignals {
	n := len(t)
	b := BeatSignals{
		Sig1:        make([]float64, n),
		Sig2:        make([]float64, n),
		Sum:         make([]float64, n),
		Envelope:    make([]float64, n),
		NegEnvelope: make([]float64, n),
	}
	for i, ti := range t {
		s1 := math.Sin(2 * math.Pi * f1 * ti)
		s2 := math.Sin(2 * math.Pi * f2 * ti)
		env := BeatEnvelope(f1, f2, ti)
		b.Sig1[i], b.Sig2[i], b.Sum[i] = s1, s2, s1+s2
		b.Envelope[i], b.NegEnvelope[i] = env, -env
	}
	return b
}

func BeatEnvelope(f1, f2, t float64) float64 {
	return 2 * math.Cos(math.Pi*(f1-f2)*t)
}

// BeatFrequency is |f1 − f2|.
func BeatFrequency(f1, f2 float64) float64 {
	return math.Abs(f1 - f2)
}

// BeatPeriod is 1/|f1 − f2|, +Inf for equal frequencies.
func BeatPeriod(f1, f2 float64) float64 {
	df := BeatFrequency(f1, f2)
	if df == 0 {
		return math.Inf(1)
	}
	return 1 / df
}
