package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/chambertherm/internal/sim"
)

// WriteCSV writes a time,temperature header followed by one row per sample.
func WriteCSV(w io.Writer, traj sim.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "temperature"}); err != nil {
		return err
	}
	for _, s := range traj {
		row := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.X, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
