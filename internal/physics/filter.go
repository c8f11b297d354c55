package physics

import (
	"math"
	"math/cmplx"
)

// Response is a transfer-function value split into magnitude and phase.
type Response struct {
	H         complex128
	Magnitude float64
	PhaseDeg  float64
}

// NewResponse decomposes h so that h = Magnitude·exp(j·PhaseDeg·π/180).
func NewResponse(h complex128) Response {
	return Response{
		H:         h,
		Magnitude: cmplx.Abs(h),
		PhaseDeg:  Degrees(cmplx.Phase(h)),
	}
}

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// AngularFrequency converts Hz to rad/s.
func AngularFrequency(hz float64) float64 { return 2 * math.Pi * hz }

// Filter is a linear system evaluated at an angular frequency.
type Filter interface {
	Transfer(omega float64) complex128
}

// Bode evaluates f at 2π·freqs[i] and returns magnitude and phase (degrees).
func Bode(f Filter, freqs []float64) (mag, phase []float64) {
	mag = make([]float64, len(freqs))
	phase = make([]float64, len(freqs))
	for i, hz := range freqs {
		r := NewResponse(f.Transfer(AngularFrequency(hz)))
		mag[i], phase[i] = r.Magnitude, r.PhaseDeg
	}
	return mag, phase
}

// ResponseAt is the filter response to a sine of frequency hz.
func ResponseAt(f Filter, hz float64) Response {
	return NewResponse(f.Transfer(AngularFrequency(hz)))
}

// SteadyState samples A·sin(2πf t + φ) for the given response.
func SteadyState(r Response, hz float64, t []float64) []float64 {
	phi := r.PhaseDeg * math.Pi / 180
	out := make([]float64, len(t))
	for i, ti := range t {
		out[i] = r.Magnitude * math.Sin(AngularFrequency(hz)*ti+phi)
	}
	return out
}

// Excitation samples the unit input sin(2πf t).
func Excitation(hz float64, t []float64) []float64 {
	return SteadyState(Response{H: 1, Magnitude: 1}, hz, t)
}

// RC is a first-order low-pass: H = 1/(1 + jωτ), τ = RC.
type RC struct {
	R, C float64
}

func (f RC) Tau() float64 { return f.R * f.C }

// CutoffHz is the −3 dB frequency 1/(2πτ).
func (f RC) CutoffHz() float64 { return 1 / (2 * math.Pi * f.Tau()) }

func (f RC) Transfer(omega float64) complex128 {
	return 1 / complex(1, omega*f.Tau())
}

// FilterKind selects which component voltage of a series RLC is the output.
type FilterKind int

const (
	BandPass FilterKind = iota // resistor voltage
	LowPass                    // capacitor voltage
	HighPass                   // inductor voltage
)

func FilterKinds() []FilterKind {
	return []FilterKind{BandPass, LowPass, HighPass}
}

func (k FilterKind) Valid() bool {
	return k == BandPass || k == LowPass || k == HighPass
}

func (k FilterKind) String() string {
	switch k {
	case BandPass:
		return "band-pass"
	case LowPass:
		return "low-pass"
	case HighPass:
		return "high-pass"
	}
	return "unknown"
}

// ParseFilterKind accepts the String form of a kind.
func ParseFilterKind(s string) (FilterKind, error) {
	for _, k := range FilterKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, ErrUnsupportedFilter
}

// RLC is a series RLC circuit read across one component.
type RLC struct {
	R, L, C float64
	Kind    FilterKind
}

// Omega0 is the natural angular frequency 1/√(LC).
func (f RLC) Omega0() float64 { return 1 / math.Sqrt(f.L*f.C) }

// Quality is Q = (1/R)·√(L/C).
func (f RLC) Quality() float64 { return math.Sqrt(f.L/f.C) / f.R }

// Transfer returns H(ω); an invalid Kind yields NaN.
func (f RLC) Transfer(omega float64) complex128 {
	q, x := f.Quality(), omega/f.Omega0()
	switch f.Kind {
	case BandPass:
		return 1 / complex(1, q*(x-1/x))
	case LowPass:
		return 1 / complex(1-x*x, x/q)
	case HighPass:
		return complex(-x*x, 0) / complex(1-x*x, x/q)
	}
	return cmplx.NaN()
}

// Validate reports ErrUnsupportedFilter for an unknown Kind.
func (f RLC) Validate() error {
	if !f.Kind.Valid() {
		return ErrUnsupportedFilter
	}
	return nil
}
