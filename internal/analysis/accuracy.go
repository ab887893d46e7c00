package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/chambertherm/internal/sim"
)

// MaxAbsError returns max_i |x_i - exact(t_i)|.
func MaxAbsError(traj sim.Trajectory, exact func(t float64) float64) float64 {
	if len(traj) == 0 {
		return 0
	}
	ref := make([]float64, len(traj))
	for i, s := range traj {
		ref[i] = exact(s.T)
	}
	return floats.Distance(traj.Values(), ref, math.Inf(1))
}

type Convergence struct {
	Dt       float64
	Err      float64
	HalfErr  float64
	Observed float64
}

// ConvergenceOrder integrates at dt and dt/2 and reports log2 of the error
// ratio. A fourth-order method should give a value close to 4.
func ConvergenceOrder(step sim.Stepper, f sim.Func, exact func(t float64) float64, x0, t0, tEnd, dt float64) (Convergence, error) {
	coarse, err := sim.Integrate(step, f, x0, t0, tEnd, dt)
	if err != nil {
		return Convergence{}, err
	}
	fine, err := sim.Integrate(step, f, x0, t0, tEnd, dt/2)
	if err != nil {
		return Convergence{}, err
	}

	c := Convergence{
		Dt:      dt,
		Err:     MaxAbsError(coarse, exact),
		HalfErr: MaxAbsError(fine, exact),
	}
	if c.HalfErr > 0 {
		c.Observed = math.Log2(c.Err / c.HalfErr)
	}
	return c, nil
}
