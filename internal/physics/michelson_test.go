package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/grid"
	"github.com/san-kum/physlab/internal/physics"
)

var _ = Describe("Michelson intensity", func() {
	mesh, _ := grid.Square(-0.5, 0.5, 50)

	DescribeTable("centre value and bounds",
		func(lambda, e float64) {
			centre := physics.Intensity(0, 0, lambda, e)
			Expect(centre).To(BeNumerically("~", 1+math.Cos(4*math.Pi*e/lambda), 1e-12))

			field := mesh.Map(func(x, y float64) float64 {
				return physics.Intensity(x, y, lambda, e)
			})
			for _, row := range field {
				for _, v := range row {
					Expect(v).To(BeNumerically(">=", 0))
					Expect(v).To(BeNumerically("<=", 2))
				}
			}
		},
		Entry("defaults", 500e-9, 1e-5),
		Entry("red, thick", 750e-9, 5e-4),
		Entry("violet, thin", 400e-9, 1e-5),
	)

	It("is radially symmetric", func() {
		a := physics.Intensity(0.3, 0.4, 600e-9, 2e-4)
		b := physics.Intensity(-0.5, 0, 600e-9, 2e-4)
		Expect(a).To(BeNumerically("~", b, 1e-12))
	})

	It("reports the centre order", func() {
		Expect(physics.CentreOrder(500e-9, 1e-5)).To(BeNumerically("~", 40, 1e-9))
	})
})
