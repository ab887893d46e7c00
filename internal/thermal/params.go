package thermal

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/chambertherm/internal/sim"
)

// ErrParams indicates a parameter set that cannot define the model.
var ErrParams = errors.New("thermal: invalid parameters")

type Params struct {
	HeatInput     float64 `yaml:"heat_input" json:"heat_input"`         // Q, W
	TransferCoeff float64 `yaml:"transfer_coeff" json:"transfer_coeff"` // h, W/(m^2 K)
	Area          float64 `yaml:"area" json:"area"`                     // A, m^2
	Mass          float64 `yaml:"mass" json:"mass"`                     // m, kg
	SpecificHeat  float64 `yaml:"specific_heat" json:"specific_heat"`   // c, J/(kg K)
	Ambient       float64 `yaml:"ambient" json:"ambient"`               // Tamb, degC
}

// DefaultParams is a small air-filled chamber with a 50 W heater.
func DefaultParams() Params {
	return Params{
		HeatInput:     50,
		TransferCoeff: 100,
		Area:          0.2,
		Mass:          0.5,
		SpecificHeat:  600,
		Ambient:       25,
	}
}

func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"heat_input", p.HeatInput},
		{"transfer_coeff", p.TransferCoeff},
		{"area", p.Area},
		{"mass", p.Mass},
		{"specific_heat", p.SpecificHeat},
		{"ambient", p.Ambient},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrParams, f.name)
		}
	}

	if p.ThermalMass() <= 0 {
		return fmt.Errorf("%w: mass*specific_heat must be positive, got %g", ErrParams, p.ThermalMass())
	}
	if p.Conductance() < 0 {
		return fmt.Errorf("%w: transfer_coeff*area must be non-negative, got %g", ErrParams, p.Conductance())
	}
	return nil
}

// ThermalMass returns m*c in J/K.
func (p Params) ThermalMass() float64 {
	return p.Mass * p.SpecificHeat
}

// Conductance returns h*A in W/K.
func (p Params) Conductance() float64 {
	return p.TransferCoeff * p.Area
}

// Derivative returns dT/dt for this parameter set. The time argument is
// accepted for the sim.Func contract and ignored.
func (p Params) Derivative() sim.Func {
	q := p.HeatInput
	ha := p.Conductance()
	mc := p.ThermalMass()
	amb := p.Ambient

	return func(_, temp float64) float64 {
		return (q - ha*(temp-amb)) / mc
	}
}

// Equilibrium is the temperature at which heat input equals heat loss.
// Without convective loss there is none and the result is ±Inf, or the
// ambient temperature when Q is also zero.
func (p Params) Equilibrium() float64 {
	ha := p.Conductance()
	if ha == 0 {
		if p.HeatInput == 0 {
			return p.Ambient
		}
		return math.Inf(sign(p.HeatInput))
	}
	return p.Ambient + p.HeatInput/ha
}

// TimeConstant returns m*c/(h*A) in seconds, +Inf without convective loss.
func (p Params) TimeConstant() float64 {
	ha := p.Conductance()
	if ha == 0 {
		return math.Inf(1)
	}
	return p.ThermalMass() / ha
}

// StableStep is the largest dt for which an explicit method whose stability
// region reaches -limit on the real axis does not amplify the deviation from
// equilibrium.
func (p Params) StableStep(limit float64) float64 {
	return limit * p.TimeConstant()
}

// Exact returns the closed-form temperature for initial condition (t0, temp0).
func (p Params) Exact(temp0, t0 float64) func(t float64) float64 {
	ha := p.Conductance()
	mc := p.ThermalMass()

	if ha == 0 {
		rate := p.HeatInput / mc
		return func(t float64) float64 {
			return temp0 + rate*(t-t0)
		}
	}

	k := ha / mc
	rise := p.HeatInput / ha
	amb := p.Ambient
	return func(t float64) float64 {
		decay := math.Exp(-k * (t - t0))
		return amb + (temp0-amb)*decay + rise*(1-decay)
	}
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
