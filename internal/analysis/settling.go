package analysis

import (
	"math"

	"github.com/san-kum/chambertherm/internal/sim"
)

// SettlingTime returns the earliest sample time after which every sample
// stays within band of target. ok is false if the final sample is outside.
func SettlingTime(traj sim.Trajectory, target, band float64) (t float64, ok bool) {
	idx := -1
	for i := len(traj) - 1; i >= 0; i-- {
		if math.Abs(traj[i].X-target) > band || math.IsNaN(traj[i].X) {
			break
		}
		idx = i
	}
	if idx < 0 {
		return 0, false
	}
	return traj[idx].T, true
}
