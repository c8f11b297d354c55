package physics

import "math"

// ScreenDistance is the lens focal distance (in screen units) used by the
// air-gap fringe formula; (x²+y²)/(2·ScreenDistance²) approximates 1 − cos i.
const ScreenDistance = 10.0

// Intensity is the normalised two-beam intensity of a Michelson interferometer
// set as an air gap of thickness e, lit with wavelength lambda, seen at screen
// position (x, y): 1 + cos((4πe/λ)·(1 − (x²+y²)/200)). Result lies in [0, 2].
func Intensity(x, y, lambda, e float64) float64 {
	r2 := x*x + y*y
	return 1 + math.Cos(2*math.Pi/lambda*2*e*(1-r2/(2*ScreenDistance*ScreenDistance)))
}

// CentreOrder is the interference order 2e/λ at the centre of the rings.
func CentreOrder(lambda, e float64) float64 {
	return 2 * e / lambda
}
