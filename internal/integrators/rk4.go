package integrators

import "github.com/san-kum/chambertherm/internal/sim"

// RK4 is the classical fourth-order Runge-Kutta stepper.
type RK4 struct{}

// rk4Limit is where |R(z)| = 1 on the negative real axis for
// R(z) = 1 + z + z^2/2 + z^3/6 + z^4/24.
const rk4Limit = 2.785

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) StabilityLimit() float64 { return rk4Limit }

func (r *RK4) Step(f sim.Func, t, x, dt float64) float64 {
	half := dt * 0.5

	k1 := dt * f(t, x)
	k2 := dt * f(t+half, x+k1*0.5)
	k3 := dt * f(t+half, x+k2*0.5)
	k4 := dt * f(t+dt, x+k3)

	return x + (k1+2*k2+2*k3+k4)/6.0
}

// Integrate runs RK4 from (t0, x0) to tEnd with fixed step dt.
func Integrate(f sim.Func, x0, t0, tEnd, dt float64) (sim.Trajectory, error) {
	return sim.Integrate(NewRK4(), f, x0, t0, tEnd, dt)
}
