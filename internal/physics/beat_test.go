package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/physics"
)

var _ = Describe("Beat", func() {
	t := grid.MustLinear(0, 50e-3, 1000).Values()

	DescribeTable("envelope is constant 2 for equal frequencies",
		func(f float64) {
			b := physics.Beat(f, f, t)
			for i := range t {
				Expect(b.Envelope[i]).To(Equal(2.0))
				Expect(b.NegEnvelope[i]).To(Equal(-2.0))
			}
		},
		Entry("240 Hz", 240.0),
		Entry("440 Hz", 440.0),
		Entry("640 Hz", 640.0),
	)

	It("sums the two component signals", func() {
		b := physics.Beat(440, 442, t)
		Expect(b.Sum).To(HaveLen(len(t)))
		for i := range t {
			Expect(b.Sum[i]).To(BeNumerically("~", b.Sig1[i]+b.Sig2[i], 1e-12))
			Expect(math.Abs(b.Sum[i])).To(BeNumerically("<=", math.Abs(b.Envelope[i])+1e-9))
		}
	})

	It("follows cos(2πt) for 440/442 Hz", func() {
		b := physics.Beat(440, 442, t)
		Expect(b.Envelope[0]).To(Equal(2.0))
		for i := range t {
			Expect(b.Envelope[i]).To(BeNumerically("~", 2*math.Cos(2*math.Pi*t[i]), 1e-12))
		}
		// the zero at t = 0.25 s lies outside the 50 ms window, so the
		// envelope only decreases across the grid
		for i := 1; i < len(t); i++ {
			Expect(b.Envelope[i]).To(BeNumerically("<", b.Envelope[i-1]))
		}
	})

	It("vanishes at the half beat period", func() {
		Expect(physics.BeatEnvelope(440, 442, 0.25)).To(BeNumerically("~", 0, 1e-12))
	})

	It("reports beat frequency and period", func() {
		Expect(physics.BeatFrequency(440, 442)).To(BeNumerically("~", 2, 1e-12))
		Expect(physics.BeatPeriod(442, 440)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(math.IsInf(physics.BeatPeriod(440, 440), 1)).To(BeTrue())
	})
})
