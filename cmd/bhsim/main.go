package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/analysis"
	"github.com/lorenzo-frittoli/black-hole-sim/internal/config"
	"github.com/lorenzo-frittoli/black-hole-sim/internal/export"
	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
	"github.com/lorenzo-frittoli/black-hole-sim/internal/storage"
	"github.com/lorenzo-frittoli/black-hole-sim/internal/viz"
)

var (
	dataDir string
	// Orbit parameters
	mass     float64
	energy   float64
	angMom   float64
	distance float64
	angle    float64
	speed    float64
	// Run options
	stepSize      float64
	captureRadius float64
	maxSteps      int
	validateState bool
	// Config file / preset
	configFile string
	preset     string
	// SVG output
	svgOut   string
	svgScale float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bhsim",
		Short: "black hole infall simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bhsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate an orbit until capture",
		RunE:  runOrbit,
	}
	addOrbitFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored orbit to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&svgOut, "out", "orbit.svg", "output file")
	svgCmd.Flags().Float64Var(&svgScale, "scale", 4.0, "svg units per dot")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the fall in the terminal",
		RunE:  runLive,
	}
	addOrbitFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [step_size...]",
		Short: "run the same orbit across several step sizes",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareStepSizes,
	}
	addOrbitFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset orbits",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, svgCmd, liveCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addOrbitFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "central body mass")
	cmd.Flags().Float64Var(&energy, "energy", config.DefaultEnergy, "specific energy")
	cmd.Flags().Float64Var(&angMom, "angmom", config.DefaultAngularMomentum, "specific angular momentum")
	cmd.Flags().Float64Var(&distance, "distance", config.DefaultStartDistance, "starting distance")
	cmd.Flags().Float64Var(&angle, "angle", config.DefaultStartAngle, "starting angle (radians)")
	cmd.Flags().Float64Var(&speed, "speed", 0.0, "starting radial speed")
	cmd.Flags().Float64Var(&stepSize, "dtau", config.DefaultStepSize, "proper-time step")
	cmd.Flags().Float64Var(&captureRadius, "capture", config.DefaultCaptureRadius, "capture radius")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step ceiling (0 = unbounded)")
	cmd.Flags().BoolVar(&validateState, "validate", false, "stop on NaN/Inf samples")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset orbit")
}

// resolveConfig merges preset, config file, and explicit flags, in that order
// of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("energy") {
		cfg.Energy = energy
	}
	if cmd.Flags().Changed("angmom") {
		cfg.AngularMomentum = angMom
	}
	if cmd.Flags().Changed("distance") {
		cfg.InitState.Distance = distance
	}
	if cmd.Flags().Changed("angle") {
		cfg.InitState.Angle = angle
	}
	if cmd.Flags().Changed("speed") {
		cfg.InitState.Speed = speed
	}
	if cmd.Flags().Changed("dtau") {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("capture") {
		cfg.CaptureRadius = captureRadius
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("validate") {
		cfg.ValidateState = validateState
	}

	return cfg, nil
}

func runOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	in, err := geodesic.New(cfg.Params(), cfg.RunConfig())
	if err != nil {
		return err
	}

	fmt.Println("integrating orbit...")
	start := time.Now()

	tr, runErr := in.Run(context.Background())
	elapsed := time.Since(start)

	if runErr != nil {
		fmt.Printf("run stopped early: %v\n", runErr)
	}

	runID, err := st.Save(cfg.Params(), cfg.RunConfig(), tr, in.Captured())
	if err != nil {
		return err
	}

	s := analysis.Summarize(tr, cfg.StepSize, cfg.CaptureRadius)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", s.Steps)
	fmt.Println("\nsummary:")
	fmt.Printf("  captured: %v\n", s.Captured)
	fmt.Printf("  proper time: %.4f\n", s.ProperTime)
	fmt.Printf("  coordinate time: %.4f\n", s.CoordinateTime)
	fmt.Printf("  periapsis: %.4f\n", s.Periapsis)
	fmt.Printf("  windings: %.2f\n", s.Windings)
	if !s.Finite {
		fmt.Println("  warning: trajectory contains non-finite samples")
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMASS\tENERGY\tANGMOM\tDTAU\tSTEPS\tCAPTURED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.4f\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mass,
			run.Energy,
			run.AngularMomentum,
			run.StepSize,
			run.Steps,
			run.Captured,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", tr.Len())

	series := []struct {
		caption string
		data    []float64
	}{
		{"distance", tr.Distances},
		{"radial speed", tr.Speeds},
		{"coordinate time", tr.Times},
	}

	for _, s := range series {
		graph := asciigraph.Plot(downsample(s.data, 400),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	view := viz.NewOrbitView(70, 30, viz.Extent(tr), meta.CaptureRadius)
	fmt.Println(view.Render(tr, tr.Len()))

	return nil
}

// downsample keeps plots readable for long runs; asciigraph gets slow and
// noisy past a few hundred points per column.
func downsample(data []float64, max int) []float64 {
	if len(data) <= max {
		return data
	}
	stride := len(data) / max
	out := make([]float64, 0, max+1)
	for i := 0; i < len(data); i += stride {
		out = append(out, data[i])
	}
	return out
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, taus, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"tau", "distance", "angle", "speed", "time"}); err != nil {
		return err
	}

	for i := 0; i < tr.Len(); i++ {
		smp := tr.At(i)
		row := []string{
			strconv.FormatFloat(taus[i], 'f', 6, 64),
			strconv.FormatFloat(smp.Distance, 'f', 6, 64),
			strconv.FormatFloat(smp.Angle, 'f', 6, 64),
			strconv.FormatFloat(smp.Speed, 'f', 6, 64),
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, taus, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, tr, taus)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to render")
	}

	view := viz.NewOrbitView(100, 50, viz.Extent(tr), meta.CaptureRadius)
	view.Render(tr, tr.Len())

	if err := export.WriteSVG(svgOut, view.Canvas(), svgScale); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.Params(), cfg.RunConfig())
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareStepSizes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	stepSizes := make([]float64, 0, len(args))
	for _, arg := range args {
		dtau, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid step size %q: %w", arg, err)
		}
		stepSizes = append(stepSizes, dtau)
	}

	runCfg := cfg.RunConfig()
	if runCfg.MaxSteps == 0 {
		// Keep a sweep from spinning forever on a bound orbit.
		runCfg.MaxSteps = 10_000_000
	}

	sw := geodesic.NewSweep(cfg.Params(), stepSizes)

	start := time.Now()
	trajectories, err := sw.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DTAU\tSTEPS\tFINAL_R\tPROPER_TIME\tCOORD_TIME\tCAPTURED")

	for i, tr := range trajectories {
		s := analysis.Summarize(tr, stepSizes[i], runCfg.CaptureRadius)
		fmt.Fprintf(w, "%.6f\t%d\t%.4f\t%.4f\t%.4f\t%v\n",
			stepSizes[i], s.Steps, tr.Last().Distance, s.ProperTime, s.CoordinateTime, s.Captured)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}
