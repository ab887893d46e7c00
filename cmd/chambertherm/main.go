package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/chambertherm/internal/analysis"
	"github.com/san-kum/chambertherm/internal/config"
	"github.com/san-kum/chambertherm/internal/export"
	"github.com/san-kum/chambertherm/internal/integrators"
	"github.com/san-kum/chambertherm/internal/logging"
	"github.com/san-kum/chambertherm/internal/sim"
	"github.com/san-kum/chambertherm/internal/viz"
)

const settleBand = 0.1

var (
	logLevel   string
	configFile string
	preset     string
	integrator string
	// Model parameters
	heatInput     float64
	transferCoeff float64
	area          float64
	mass          float64
	specificHeat  float64
	ambient       float64
	// Integration parameters
	initialTemp float64
	t0          float64
	tEnd        float64
	dt          float64
	// Output
	plotOut   string
	csvOut    string
	jsonOut   string
	noChart   bool
	chartW    int
	chartH    int
	frameRate int

	logger = logging.Discard()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chambertherm",
		Short:         "thermal response of an enclosed chamber",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, os.Stderr)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the chamber model and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runChamber,
	}
	addModelFlags(runCmd)
	runCmd.Flags().BoolVar(&noChart, "no-chart", false, "skip the terminal chart")
	runCmd.Flags().IntVar(&chartW, "width", 80, "chart width")
	runCmd.Flags().IntVar(&chartH, "height", 15, "chart height")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "render temperature vs time to an image (png, svg, pdf)",
		Args:  cobra.NoArgs,
		RunE:  plotChamber,
	}
	addModelFlags(plotCmd)
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "chamber.png", "output image path")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "write the trajectory as CSV",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}
	addModelFlags(exportCSVCmd)
	exportCSVCmd.Flags().StringVarP(&csvOut, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "write the trajectory and run metadata as JSON",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}
	addModelFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators against the closed-form solution",
		RunE:  compareIntegrators,
	}
	addModelFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay the trajectory in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	addModelFlags(configInitCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, plotCmd, exportCSVCmd, exportJSONCmd, compareCmd, liveCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (rk4, euler)")

	f.Float64Var(&heatInput, "q", 50, "heat input Q (W)")
	f.Float64Var(&transferCoeff, "h", 100, "heat transfer coefficient h (W/m^2K)")
	f.Float64Var(&area, "area", 0.2, "surface area A (m^2)")
	f.Float64Var(&mass, "mass", 0.5, "mass of air m (kg)")
	f.Float64Var(&specificHeat, "c", 600, "specific heat capacity c (J/kgK)")
	f.Float64Var(&ambient, "ambient", 25, "ambient temperature (°C)")

	f.Float64Var(&initialTemp, "temp0", config.DefaultInitialTemp, "initial temperature (°C)")
	f.Float64Var(&t0, "t0", config.DefaultT0, "start time (s)")
	f.Float64Var(&tEnd, "t-end", config.DefaultTEnd, "end time (s)")
	f.Float64Var(&dt, "dt", config.DefaultDt, "time step (s)")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	overrides := []struct {
		name string
		src  float64
		dst  *float64
	}{
		{"q", heatInput, &cfg.Params.HeatInput},
		{"h", transferCoeff, &cfg.Params.TransferCoeff},
		{"area", area, &cfg.Params.Area},
		{"mass", mass, &cfg.Params.Mass},
		{"c", specificHeat, &cfg.Params.SpecificHeat},
		{"ambient", ambient, &cfg.Params.Ambient},
		{"temp0", initialTemp, &cfg.Run.InitialTemp},
		{"t0", t0, &cfg.Run.T0},
		{"t-end", tEnd, &cfg.Run.TEnd},
		{"dt", dt, &cfg.Run.Dt},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.dst = o.src
		}
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func integrate(cfg *config.Config) (sim.Trajectory, error) {
	stepper, err := integrators.NewRegistry().Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	if limit := stableStep(stepper, cfg); limit > 0 && cfg.Run.Dt > limit {
		logger.Warn("step exceeds stability limit, expect divergence",
			"integrator", cfg.Integrator, "dt", cfg.Run.Dt, "limit", limit, "time_constant", cfg.Params.TimeConstant())
	}

	logger.Debug("integrating",
		"integrator", cfg.Integrator,
		"temp0", cfg.Run.InitialTemp,
		"t0", cfg.Run.T0,
		"t_end", cfg.Run.TEnd,
		"dt", cfg.Run.Dt)

	traj, err := sim.Integrate(stepper, cfg.Params.Derivative(), cfg.Run.InitialTemp, cfg.Run.T0, cfg.Run.TEnd, cfg.Run.Dt)
	if err != nil {
		return nil, err
	}

	if idx := traj.FirstNonFinite(); idx >= 0 {
		logger.Warn("trajectory diverged", "sample", idx, "t", traj[idx].T)
	}
	return traj, nil
}

// stableStep returns the step bound of stepper for cfg's params, or 0 when
// the stepper reports none.
func stableStep(stepper sim.Stepper, cfg *config.Config) float64 {
	b, ok := stepper.(integrators.Bounded)
	if !ok {
		return 0
	}
	return cfg.Params.StableStep(b.StabilityLimit())
}

func resolveAndIntegrate(cmd *cobra.Command) (*config.Config, sim.Trajectory, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	traj, err := integrate(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, traj, nil
}

func runChamber(cmd *cobra.Command, args []string) error {
	cfg, traj, err := resolveAndIntegrate(cmd)
	if err != nil {
		return err
	}

	stepper, err := integrators.NewRegistry().Get(cfg.Integrator)
	if err != nil {
		return err
	}

	settled, ok := analysis.SettlingTime(traj, cfg.Params.Equilibrium(), settleBand)
	fmt.Println(viz.Summary(viz.RunSummary{
		Integrator: cfg.Integrator,
		Params:     cfg.Params,
		Dt:         cfg.Run.Dt,
		StableStep: stableStep(stepper, cfg),
		Trajectory: traj,
		Settled:    settled,
		IsSettled:  ok,
	}))

	if noChart {
		return nil
	}
	chart, err := viz.Chart(traj, cfg.Params.Ambient, chartW, chartH)
	if err != nil {
		logger.Warn("chart skipped", "err", err)
		return nil
	}
	fmt.Println()
	fmt.Println(chart)
	return nil
}

func plotChamber(cmd *cobra.Command, args []string) error {
	cfg, traj, err := resolveAndIntegrate(cmd)
	if err != nil {
		return err
	}

	fig, err := export.Figure(traj, export.FigureOptions{Ambient: cfg.Params.Ambient})
	if err != nil {
		return err
	}
	if err := export.SaveFigure(fig, plotOut); err != nil {
		return err
	}
	logger.Info("figure written", "path", plotOut, "samples", len(traj))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, traj, err := resolveAndIntegrate(cmd)
	if err != nil {
		return err
	}
	return withOutput(csvOut, func(w io.Writer) error {
		return export.WriteCSV(w, traj)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, traj, err := resolveAndIntegrate(cmd)
	if err != nil {
		return err
	}
	meta := export.RunMetadata{
		Integrator:  cfg.Integrator,
		Params:      cfg.Params,
		InitialTemp: cfg.Run.InitialTemp,
		T0:          cfg.Run.T0,
		TEnd:        cfg.Run.TEnd,
		Dt:          cfg.Run.Dt,
		Equilibrium: cfg.Params.Equilibrium(),
	}
	return withOutput(jsonOut, func(w io.Writer) error {
		return export.WriteJSON(w, meta, traj)
	})
}

func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("export written", "path", path)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = []string{"rk4", "euler"}
	}

	registry := integrators.NewRegistry()
	exact := cfg.Params.Exact(cfg.Run.InitialTemp, cfg.Run.T0)
	f := cfg.Params.Derivative()

	fmt.Printf("comparing on [%g, %g] dt=%g, equilibrium %.4f°C\n\n", cfg.Run.T0, cfg.Run.TEnd, cfg.Run.Dt, cfg.Params.Equilibrium())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL\tMAX ERR\tERR(dt/2)\tORDER")

	for _, name := range names {
		stepper, err := registry.Get(name)
		if err != nil {
			return err
		}

		conv, err := analysis.ConvergenceOrder(stepper, f, exact, cfg.Run.InitialTemp, cfg.Run.T0, cfg.Run.TEnd, cfg.Run.Dt)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		traj, err := sim.Integrate(stepper, f, cfg.Run.InitialTemp, cfg.Run.T0, cfg.Run.TEnd, cfg.Run.Dt)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		logger.Debug("compared", slog.String("integrator", name), slog.Float64("order", conv.Observed))
		fmt.Fprintf(w, "%s\t%.6f\t%.3e\t%.3e\t%.2f\n", name, traj.Final().X, conv.Err, conv.HalfErr, conv.Observed)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, traj, err := resolveAndIntegrate(cmd)
	if err != nil {
		return err
	}
	title := "chamber"
	if preset != "" {
		title = preset
	}
	return viz.RunReplay(viz.NewReplay(traj, cfg.Params, title, frameRate))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tQ\tT0\tT_END\tDT\tTAU\tEQUILIBRIUM")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%gW\t%g°C\t%gs\t%gs\t%.1fs\t%.2f°C\n",
			name,
			p.Params.HeatInput,
			p.Run.InitialTemp,
			p.Run.TEnd,
			p.Run.Dt,
			p.Params.TimeConstant(),
			p.Params.Equilibrium(),
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	path := "chamber.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
