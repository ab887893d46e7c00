package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/chambertherm/internal/sim"
)

// Bounded is implemented by explicit steppers with a finite stability
// interval [-StabilityLimit, 0] for dx/dt = lambda*x, in units of lambda*dt.
type Bounded interface {
	StabilityLimit() float64
}

type Registry struct {
	steppers map[string]func() sim.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		steppers: make(map[string]func() sim.Stepper),
	}

	r.steppers["rk4"] = func() sim.Stepper { return NewRK4() }
	r.steppers["euler"] = func() sim.Stepper { return NewEuler() }

	return r
}

func (r *Registry) Get(name string) (sim.Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.List())
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.steppers))
	for name := range r.steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
