package physics_test

import (
	"math"
	"math/cmplx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/physics"
)

var _ = Describe("Filters", func() {
	freqs := grid.MustDecades(1, 8, 1000).Values()

	Describe("RC low-pass", func() {
		DescribeTable("matches 1/(1+(ωτ)²) and stays in (−90°, 0°]",
			func(r, c float64) {
				f := physics.RC{R: r, C: c}
				tau := f.Tau()
				for _, hz := range freqs {
					w := physics.AngularFrequency(hz)
					resp := physics.NewResponse(f.Transfer(w))
					want := 1 / (1 + (w*tau)*(w*tau))
					Expect(resp.Magnitude*resp.Magnitude).To(BeNumerically("~", want, 1e-12))
					Expect(resp.PhaseDeg).To(BeNumerically(">", -90))
					Expect(resp.PhaseDeg).To(BeNumerically("<=", 0))

					// H = |H|·e^{jφ}
					back := cmplx.Rect(resp.Magnitude, resp.PhaseDeg*math.Pi/180)
					Expect(cmplx.Abs(back - resp.H)).To(BeNumerically("<", 1e-12))
				}
			},
			Entry("defaults", 100.0, 1e-7),
			Entry("smallest", 10.0, 1e-9),
			Entry("largest", 1e5, 1e-6),
		)

		It("is at −3 dB and −45° at the cutoff", func() {
			f := physics.RC{R: 1e3, C: 1e-7}
			resp := physics.ResponseAt(f, f.CutoffHz())
			Expect(resp.Magnitude).To(BeNumerically("~", 1/math.Sqrt2, 1e-12))
			Expect(resp.PhaseDeg).To(BeNumerically("~", -45, 1e-9))
		})
	})

	Describe("RLC", func() {
		DescribeTable("band-pass resonance has |H| = 1 and 0° phase",
			func(r, l, c float64) {
				f := physics.RLC{R: r, L: l, C: c, Kind: physics.BandPass}
				resp := physics.NewResponse(f.Transfer(f.Omega0()))
				Expect(resp.Magnitude).To(BeNumerically("~", 1, 1e-12))
				Expect(resp.PhaseDeg).To(BeNumerically("~", 0, 1e-9))
			},
			Entry("defaults", 100.0, 1e-3, 1e-7),
			Entry("high Q", 10.0, 1e-2, 1e-9),
			Entry("low Q", 1e5, 1e-4, 1e-6),
		)

		It("keeps band-pass phase in (−90°, 90°) and |H| ≤ 1", func() {
			f := physics.RLC{R: 100, L: 1e-3, C: 1e-7, Kind: physics.BandPass}
			mag, phase := physics.Bode(f, freqs)
			for i := range freqs {
				Expect(mag[i]).To(BeNumerically("<=", 1+1e-12))
				Expect(phase[i]).To(BeNumerically(">", -90))
				Expect(phase[i]).To(BeNumerically("<", 90))
			}
		})

		It("derives ω0 and Q", func() {
			f := physics.RLC{R: 100, L: 1e-3, C: 1e-7}
			Expect(f.Omega0()).To(BeNumerically("~", 1e5, 1e-6))
			Expect(f.Quality()).To(BeNumerically("~", 1, 1e-12))
		})

		DescribeTable("low- and high-pass reach |H| = Q at ω0",
			func(kind physics.FilterKind, phaseDeg float64) {
				f := physics.RLC{R: 20, L: 1e-3, C: 1e-7, Kind: kind}
				resp := physics.NewResponse(f.Transfer(f.Omega0()))
				Expect(resp.Magnitude).To(BeNumerically("~", f.Quality(), 1e-9))
				Expect(resp.PhaseDeg).To(BeNumerically("~", phaseDeg, 1e-9))
			},
			Entry("low-pass", physics.LowPass, -90.0),
			Entry("high-pass", physics.HighPass, 90.0),
		)

		It("rejects an unknown kind", func() {
			f := physics.RLC{R: 1, L: 1, C: 1, Kind: physics.FilterKind(7)}
			Expect(f.Validate()).To(MatchError(physics.ErrUnsupportedFilter))
			Expect(cmplx.IsNaN(f.Transfer(1))).To(BeTrue())

			_, err := physics.ParseFilterKind("notch")
			Expect(err).To(MatchError(physics.ErrUnsupportedFilter))
		})
	})

	It("shifts the steady-state output by the response", func() {
		t := grid.MustLinear(0, 5e-4, 1000).Values()
		resp := physics.ResponseAt(physics.RC{R: 100, C: 1e-7}, 1e4)
		out := physics.SteadyState(resp, 1e4, t)
		in := physics.Excitation(1e4, t)
		Expect(in[0]).To(BeNumerically("~", 0, 1e-12))
		Expect(out[0]).To(BeNumerically("~", resp.Magnitude*math.Sin(resp.PhaseDeg*math.Pi/180), 1e-12))
	})
})
