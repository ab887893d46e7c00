// Package thermal models the air temperature of an enclosed chamber heated
// at a constant rate and losing heat by convection to its surroundings:
//
//	dT/dt = (Q - h*A*(T - Tamb)) / (m*c)
//
// Parameters are bound explicitly through [Params]; the derivative returned
// by [Params.Derivative] closes over a copy, so distinct parameter sets never
// share state.
//
// # Example
//
//	p := thermal.DefaultParams()
//	traj, err := integrators.Integrate(p.Derivative(), 50, 0, 100, 1)
//
// The system is linear and time-invariant, so [Params.Exact] gives the
// closed-form solution used to check integrator output.
package thermal
