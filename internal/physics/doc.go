// Package physics provides the closed-form models behind each demo.
//
// Every function is pure: it maps parameters and a sample grid to fresh
// slices and never retains state between calls.
//
//   - [Beat]: two superposed sines, their sum and beat envelope
//   - [ConcentrationProfile], [HalfLife]: order 0, 1 and 2 reaction kinetics
//   - [RC], [RLC]: filter transfer functions, evaluated with [Bode]
//   - [Intensity]: Michelson air-gap fringe intensity
//
// # Errors
//
// Discrete choices are closed enumerations ([Order], [FilterKind]). Values
// outside them are reported, never silently ignored:
//
//	c, err := physics.ConcentrationProfile(c0, k, order, t)
//	if errors.Is(err, physics.ErrUnsupportedOrder) {
//	    // keep the previous curve on screen
//	}
package physics
