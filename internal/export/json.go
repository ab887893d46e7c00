package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/chambertherm/internal/sim"
	"github.com/san-kum/chambertherm/internal/thermal"
)

type RunMetadata struct {
	Integrator  string         `json:"integrator"`
	Params      thermal.Params `json:"params"`
	InitialTemp float64        `json:"initial_temp"`
	T0          float64        `json:"t0"`
	TEnd        float64        `json:"t_end"`
	Dt          float64        `json:"dt"`
	Equilibrium float64        `json:"equilibrium"`
}

type Document struct {
	Meta    RunMetadata    `json:"meta"`
	Samples sim.Trajectory `json:"samples"`
}

// WriteJSON encodes meta and samples as an indented document. JSON has no
// NaN or Inf, so a diverged trajectory is an error here.
func WriteJSON(w io.Writer, meta RunMetadata, traj sim.Trajectory) error {
	if idx := traj.FirstNonFinite(); idx >= 0 {
		return fmt.Errorf("sample %d (t=%g) is not finite", idx, traj[idx].T)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Meta: meta, Samples: traj})
}
