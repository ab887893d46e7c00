package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/chambertherm/internal/sim"
)

const (
	DefaultTitle  = "Thermal Response of an Enclosed Chamber"
	TimeLabel     = "Time (s)"
	TempLabel     = "Temperature (°C)"
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var (
	temperatureColor = color.RGBA{R: 0xff, G: 0xa5, A: 0xff}
	ambientColor     = color.RGBA{B: 0xff, A: 0xff}
)

type FigureOptions struct {
	Title   string
	Ambient float64
	// HideAmbient drops the dashed reference line.
	HideAmbient bool
}

// Figure plots temperature against time with a dashed line at the ambient
// temperature.
func Figure(traj sim.Trajectory, opts FigureOptions) (*plot.Plot, error) {
	if len(traj) < 2 {
		return nil, fmt.Errorf("need at least 2 samples to plot, got %d", len(traj))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = DefaultTitle
	}
	p.X.Label.Text = TimeLabel
	p.Y.Label.Text = TempLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(traj))
	for i, s := range traj {
		pts[i].X = s.T
		pts[i].Y = s.X
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("temperature series: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = temperatureColor
	p.Add(line)
	p.Legend.Add("Internal Temperature (°C)", line)

	if !opts.HideAmbient {
		first, last := traj[0].T, traj.Final().T
		amb, err := plotter.NewLine(plotter.XYs{{X: first, Y: opts.Ambient}, {X: last, Y: opts.Ambient}})
		if err != nil {
			return nil, fmt.Errorf("ambient line: %w", err)
		}
		amb.LineStyle.Width = vg.Points(1.5)
		amb.LineStyle.Color = ambientColor
		amb.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(amb)
		p.Legend.Add(fmt.Sprintf("Ambient Temp (%g°C)", opts.Ambient), amb)
	}

	p.Legend.Top = true
	return p, nil
}

// SaveFigure writes p to path; the extension selects png, svg, pdf, eps,
// jpg or tif.
func SaveFigure(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}
	return p.Save(DefaultWidth, DefaultHeight, path)
}

// WriteFigure encodes p in the given format ("png", "svg", ...) to w.
func WriteFigure(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, strings.ToLower(format))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
