package physics_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/physics"
)

var _ = Describe("Kinetics", func() {
	DescribeTable("C(t½) is C0/2",
		func(c0, k float64, o physics.Order) {
			th, err := physics.HalfLife(c0, k, o)
			Expect(err).NotTo(HaveOccurred())
			c, err := physics.Concentration(c0, k, o, th)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(BeNumerically("~", c0/2, 1e-12))
		},
		Entry("first order, defaults", 1.0, 0.05, physics.FirstOrder),
		Entry("first order, slow", 0.2, 0.01, physics.FirstOrder),
		Entry("first order, fast", 0.7, 0.1, physics.FirstOrder),
		Entry("zero order", 1.0, 0.05, physics.ZeroOrder),
		Entry("second order", 0.4, 0.08, physics.SecondOrder),
	)

	It("lets zero order go negative", func() {
		// k·t = 5 > C0 = 1
		c, err := physics.Concentration(1, 0.05, physics.ZeroOrder, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(BeNumerically("~", -4, 1e-12))
	})

	It("builds a profile over the time grid", func() {
		t := grid.MustLinear(0, 100, 100).Values()
		c, err := physics.ConcentrationProfile(1, 0.05, physics.SecondOrder, t)
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(HaveLen(100))
		Expect(c[0]).To(Equal(1.0))
		Expect(c[99]).To(BeNumerically("~", 1/(1+0.05*100), 1e-12))
	})

	Context("with an order outside {0, 1, 2}", func() {
		bad := physics.Order(3)

		It("reports UnsupportedOrder from every entry point", func() {
			_, err := physics.Concentration(1, 0.05, bad, 1)
			Expect(err).To(MatchError(physics.ErrUnsupportedOrder))

			_, err = physics.ConcentrationProfile(1, 0.05, bad, []float64{0, 1})
			Expect(err).To(MatchError(physics.ErrUnsupportedOrder))

			_, err = physics.HalfLife(1, 0.05, bad)
			Expect(err).To(MatchError(physics.ErrUnsupportedOrder))
		})

		It("carries the offending order", func() {
			_, err := physics.ParseOrder(-1)
			var oe *physics.OrderError
			Expect(errors.As(err, &oe)).To(BeTrue())
			Expect(oe.Order).To(Equal(-1))
		})
	})

	It("parses the supported orders", func() {
		for _, o := range physics.Orders() {
			got, err := physics.ParseOrder(int(o))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(o))
		}
	})
})
