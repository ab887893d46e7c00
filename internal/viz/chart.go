package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chambertherm/internal/sim"
)

// Chart plots temperature and the ambient reference as two series.
func Chart(traj sim.Trajectory, ambient float64, width, height int) (string, error) {
	if len(traj) == 0 {
		return "", fmt.Errorf("no data to plot")
	}
	if idx := traj.FirstNonFinite(); idx >= 0 {
		return "", fmt.Errorf("cannot plot non-finite sample %d (t=%g)", idx, traj[idx].T)
	}

	temps := traj.Values()
	amb := make([]float64, len(temps))
	for i := range amb {
		amb[i] = ambient
	}

	caption := fmt.Sprintf("Temperature (°C) vs Time (s), %g to %g", traj[0].T, traj.Final().T)
	return asciigraph.PlotMany([][]float64{temps, amb},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Yellow, asciigraph.Blue),
		asciigraph.SeriesLegends("Internal Temperature", "Ambient"),
	), nil
}
