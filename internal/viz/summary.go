package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/chambertherm/internal/sim"
	"github.com/san-kum/chambertherm/internal/thermal"
)

type RunSummary struct {
	Integrator string
	Params     thermal.Params
	Dt         float64
	// StableStep is the integrator's stability bound for these params;
	// zero means none is known.
	StableStep float64
	Trajectory sim.Trajectory
	// Settled is the settling time into a 0.1 °C band, if reached.
	Settled   float64
	IsSettled bool
}

// Summary renders the run statistics panel.
func Summary(s RunSummary) string {
	var b strings.Builder
	p := s.Params
	final := s.Trajectory.Final()

	b.WriteString(Title.Render("CHAMBER RUN") + "\n\n")
	b.WriteString(metricLine("integrator", s.Integrator) + "\n")
	b.WriteString(metricLine("samples", fmt.Sprintf("%d", len(s.Trajectory))) + "\n")
	b.WriteString(metricLine("dt", fmt.Sprintf("%gs", s.Dt)) + "\n")
	b.WriteString(metricLine("final", fmt.Sprintf("%.4f°C at %gs", final.X, final.T)) + "\n")
	b.WriteString(metricLine("equilibrium", fmt.Sprintf("%.4f°C", p.Equilibrium())) + "\n")
	b.WriteString(metricLine("time const", fmt.Sprintf("%.2fs", p.TimeConstant())) + "\n")

	if s.Trajectory.IsFinite() {
		st := s.Trajectory.Stats()
		b.WriteString(metricLine("range", fmt.Sprintf("%.4f .. %.4f°C", st.Min, st.Max)) + "\n")
		b.WriteString(metricLine("mean", fmt.Sprintf("%.4f°C", st.Mean)) + "\n")
	}
	if s.IsSettled {
		b.WriteString(metricLine("settled", fmt.Sprintf("%gs", s.Settled)) + "\n")
	}

	if s.StableStep > 0 && s.Dt > s.StableStep {
		b.WriteString("\n" + Warning.Render(fmt.Sprintf("dt exceeds %s stability limit %.2fs", s.Integrator, s.StableStep)) + "\n")
	}
	if !s.Trajectory.IsFinite() {
		b.WriteString(Warning.Render("trajectory diverged (NaN/Inf)") + "\n")
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}
