package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Func is the right-hand side of a scalar ODE dx/dt = f(t, x).
type Func func(t, x float64) float64

// Stepper advances a scalar ODE by one fixed step.
type Stepper interface {
	Step(f Func, t, x, dt float64) float64
}

type Sample struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
}

// Trajectory is an evenly spaced sequence of samples, index 0 being the
// initial condition.
type Trajectory []Sample

func (tr Trajectory) Len() int { return len(tr) }

func (tr Trajectory) Times() []float64 {
	ts := make([]float64, len(tr))
	for i, s := range tr {
		ts[i] = s.T
	}
	return ts
}

func (tr Trajectory) Values() []float64 {
	xs := make([]float64, len(tr))
	for i, s := range tr {
		xs[i] = s.X
	}
	return xs
}

func (tr Trajectory) Final() Sample {
	if len(tr) == 0 {
		return Sample{}
	}
	return tr[len(tr)-1]
}

// FirstNonFinite returns the index of the first NaN/Inf value, or -1.
func (tr Trajectory) FirstNonFinite() int {
	for i, s := range tr {
		if math.IsNaN(s.X) || math.IsInf(s.X, 0) {
			return i
		}
	}
	return -1
}

func (tr Trajectory) IsFinite() bool {
	return tr.FirstNonFinite() < 0
}

type Stats struct {
	Min  float64
	Max  float64
	Mean float64
}

func (tr Trajectory) Stats() Stats {
	if len(tr) == 0 {
		return Stats{}
	}
	xs := tr.Values()
	return Stats{
		Min:  floats.Min(xs),
		Max:  floats.Max(xs),
		Mean: floats.Sum(xs) / float64(len(xs)),
	}
}
