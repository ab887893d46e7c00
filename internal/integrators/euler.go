package integrators

import "github.com/san-kum/chambertherm/internal/sim"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) StabilityLimit() float64 { return 2 }

func (e *Euler) Step(f sim.Func, t, x, dt float64) float64 {
	return x + dt*f(t, x)
}
