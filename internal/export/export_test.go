package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/chambertherm/internal/integrators"
	"github.com/san-kum/chambertherm/internal/sim"
	"github.com/san-kum/chambertherm/internal/thermal"
)

func chamberRun(t *testing.T) (thermal.Params, sim.Trajectory) {
	t.Helper()
	p := thermal.DefaultParams()
	traj, err := integrators.Integrate(p.Derivative(), 50, 0, 100, 1)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	return p, traj
}

func TestWriteCSV(t *testing.T) {
	_, traj := chamberRun(t)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, traj); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(rows) != len(traj)+1 {
		t.Fatalf("expected %d rows, got %d", len(traj)+1, len(rows))
	}
	if rows[0][0] != "time" || rows[0][1] != "temperature" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "0.000000" || rows[1][1] != "50.000000" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
}

func TestWriteJSON(t *testing.T) {
	p, traj := chamberRun(t)
	meta := RunMetadata{Integrator: "rk4", Params: p, InitialTemp: 50, TEnd: 100, Dt: 1, Equilibrium: p.Equilibrium()}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, traj); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if doc.Meta.Params != p {
		t.Errorf("params mismatch: %+v", doc.Meta.Params)
	}
	if len(doc.Samples) != len(traj) {
		t.Errorf("expected %d samples, got %d", len(traj), len(doc.Samples))
	}
	if !strings.Contains(buf.String(), `"heat_input": 50`) {
		t.Error("expected snake_case param keys")
	}
}

func TestWriteJSON_NonFinite(t *testing.T) {
	traj := sim.Trajectory{{T: 0, X: 1}, {T: 1, X: math.Inf(1)}}
	if err := WriteJSON(&bytes.Buffer{}, RunMetadata{}, traj); err == nil {
		t.Error("expected error for non-finite sample")
	}
}

func TestFigure(t *testing.T) {
	p, traj := chamberRun(t)

	fig, err := Figure(traj, FigureOptions{Ambient: p.Ambient})
	if err != nil {
		t.Fatalf("figure failed: %v", err)
	}
	if fig.Title.Text != DefaultTitle {
		t.Errorf("title = %q", fig.Title.Text)
	}
	if fig.X.Label.Text != "Time (s)" || fig.Y.Label.Text != "Temperature (°C)" {
		t.Errorf("labels = %q / %q", fig.X.Label.Text, fig.Y.Label.Text)
	}

	var buf bytes.Buffer
	if err := WriteFigure(&buf, fig, "svg"); err != nil {
		t.Fatalf("write svg failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Error("expected svg output")
	}
	if !strings.Contains(out, "Ambient Temp") {
		t.Error("expected ambient legend entry")
	}
}

func TestFigure_Errors(t *testing.T) {
	if _, err := Figure(sim.Trajectory{{T: 0, X: 1}}, FigureOptions{}); err == nil {
		t.Error("expected error for single sample")
	}
	if _, err := Figure(sim.Trajectory{{T: 0, X: 1}, {T: 1, X: math.NaN()}}, FigureOptions{}); err == nil {
		t.Error("expected error for NaN sample")
	}
}

func TestSaveFigure(t *testing.T) {
	_, traj := chamberRun(t)
	fig, err := Figure(traj, FigureOptions{Ambient: 25, HideAmbient: true})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "plots", "chamber.png")
	if err := SaveFigure(fig, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("png is empty")
	}
}
