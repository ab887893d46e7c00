package sim

import "math"

// MaxSteps bounds N so the sample buffer stays allocatable (about 1 GiB).
const MaxSteps = 1 << 26

// snapUlps is how many units of rounding error (tEnd-t0)/dt may fall short of
// an integer and still count as that integer, so an interval of 0.3 with dt
// 0.1 yields three steps, not two.
const snapUlps = 4

const epsilon = 0x1p-52

// Steps returns N = floor((tEnd-t0)/dt), validating the arguments.
func Steps(t0, tEnd, dt float64) (int, error) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return 0, &ArgError{Field: "dt", Value: dt, Wrapped: ErrInvalidStep}
	}
	if math.IsNaN(t0) || math.IsInf(t0, 0) {
		return 0, &ArgError{Field: "t0", Value: t0, Wrapped: ErrInvalidInterval}
	}
	if math.IsNaN(tEnd) || math.IsInf(tEnd, 0) || tEnd < t0 {
		return 0, &ArgError{Field: "t_end", Value: tEnd, Wrapped: ErrInvalidInterval}
	}

	ratio := (tEnd - t0) / dt
	if ratio > MaxSteps || math.IsInf(ratio, 1) {
		return 0, &ArgError{Field: "t_end", Value: tEnd, Wrapped: ErrTooManySteps}
	}

	n := int(math.Floor(ratio))
	if c := math.Ceil(ratio); c-ratio <= snapUlps*epsilon*c {
		n = int(c)
	}
	if n > MaxSteps {
		return 0, &ArgError{Field: "t_end", Value: tEnd, Wrapped: ErrTooManySteps}
	}
	if n <= 0 {
		return 0, &ArgError{Field: "t_end", Value: tEnd, Wrapped: ErrEmptyInterval}
	}
	return n, nil
}

// Integrate runs step over [t0, tEnd] and returns N+1 samples starting at
// (t0, x0). Non-finite values produced by an unstable step size are not
// trapped; callers can check Trajectory.IsFinite.
func Integrate(step Stepper, f Func, x0, t0, tEnd, dt float64) (Trajectory, error) {
	n, err := Steps(t0, tEnd, dt)
	if err != nil {
		return nil, err
	}

	traj := make(Trajectory, n+1)
	traj[0] = Sample{T: t0, X: x0}

	x := x0
	for i := 0; i < n; i++ {
		x = step.Step(f, traj[i].T, x, dt)
		traj[i+1] = Sample{T: t0 + float64(i+1)*dt, X: x}
	}

	return traj, nil
}
