package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avray/plife/internal/config"
	"github.com/avray/plife/internal/experiment"
	"github.com/avray/plife/internal/gui"
	"github.com/avray/plife/internal/life"
	"github.com/avray/plife/internal/metrics"
	"github.com/avray/plife/internal/rules"
	"github.com/avray/plife/internal/sim"
	"github.com/avray/plife/internal/storage"
	"github.com/avray/plife/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	particles  int
	types      int
	matrixArg  string
	rMin       float64
	radius     float64
	dt         float64
	drag       float64
	maxSpeed   float64
	wrap       bool
	cellSize   float64
	mutualOnly bool
	settleOn   bool
	settleGain float64
	settleR    float64
	placement  string
	seed       int64

	steps     int
	frameRate int
	series    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plife",
		Short: "particle-life simulation lab",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plife", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the result",
		RunE:  runSimulation,
	}
	addSpecFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", 1000, "number of steps")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSpecFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run with a graphical window",
		RunE:  runGUI,
	}
	addSpecFlags(guiCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure steps per second",
		RunE:  benchSimulation,
	}
	addSpecFlags(benchCmd)
	benchCmd.Flags().IntVar(&steps, "steps", 500, "number of steps")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's diagnostics history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "kinetic", "series to plot (kinetic, max-speed, pairs)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	matrixCmd := &cobra.Command{
		Use:   "matrix [file]",
		Short: "generate a rule matrix file",
		Args:  cobra.ExactArgs(1),
		RunE:  generateMatrix,
	}
	matrixCmd.Flags().IntVar(&types, "types", life.DefaultK, "type count")
	matrixCmd.Flags().StringVar(&matrixArg, "preset", life.MatrixRandom, "generator (random, ring)")
	matrixCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	showCmd := &cobra.Command{
		Use:   "show [file]",
		Short: "print a rule matrix file as a table",
		Args:  cobra.ExactArgs(1),
		RunE:  showMatrix,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, benchCmd, listCmd, plotCmd, exportCmd, matrixCmd, showCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSpecFlags(cmd *cobra.Command) {
	defaults := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
	cmd.Flags().IntVar(&particles, "particles", defaults.Particles, "particle count")
	cmd.Flags().IntVar(&types, "types", defaults.Types, "type count")
	cmd.Flags().StringVar(&matrixArg, "matrix", defaults.Matrix, "rule matrix (random, ring, or file path)")
	cmd.Flags().Float64Var(&rMin, "r-min", defaults.RMin, "repulsion threshold")
	cmd.Flags().Float64Var(&radius, "radius", defaults.Radius, "interaction cutoff")
	cmd.Flags().Float64Var(&dt, "dt", defaults.Dt, "timestep")
	cmd.Flags().Float64Var(&drag, "drag", defaults.Drag, "velocity decay rate")
	cmd.Flags().Float64Var(&maxSpeed, "max-speed", defaults.MaxSpeed, "speed clamp")
	cmd.Flags().BoolVar(&wrap, "wrap", defaults.Wrap, "toroidal world")
	cmd.Flags().Float64Var(&cellSize, "cell-size", defaults.CellSize, "spatial index cell side")
	cmd.Flags().BoolVar(&mutualOnly, "mutual-only", defaults.MutualOnly, "act only on mutual attraction")
	cmd.Flags().BoolVar(&settleOn, "settle", defaults.Settle.Enabled, "enable settling dashpot")
	cmd.Flags().Float64Var(&settleGain, "settle-gain", defaults.Settle.Gain, "dashpot gain")
	cmd.Flags().Float64Var(&settleR, "settle-radius", defaults.Settle.Radius, "dashpot range")
	cmd.Flags().StringVar(&placement, "placement", defaults.Placement, "initial placement (uniform, disk, noise)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

// resolveConfig layers preset < config file < explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("types") {
		cfg.Types = types
	}
	if flags.Changed("matrix") {
		cfg.Matrix = matrixArg
	}
	if flags.Changed("r-min") {
		cfg.RMin = rMin
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("drag") {
		cfg.Drag = drag
	}
	if flags.Changed("max-speed") {
		cfg.MaxSpeed = maxSpeed
	}
	if flags.Changed("wrap") {
		cfg.Wrap = wrap
	}
	if flags.Changed("cell-size") {
		cfg.CellSize = cellSize
	}
	if flags.Changed("mutual-only") {
		cfg.MutualOnly = mutualOnly
	}
	if flags.Changed("settle") {
		cfg.Settle.Enabled = settleOn
	}
	if flags.Changed("settle-gain") {
		cfg.Settle.Gain = settleGain
	}
	if flags.Changed("settle-radius") {
		cfg.Settle.Radius = settleR
	}
	if flags.Changed("placement") {
		cfg.Placement = placement
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

// buildState turns a resolved config into a live engine, loading a
// matrix file when the matrix field names one.
func buildState(cfg *config.Config) (*sim.State, error) {
	spec := cfg.ToSpec()

	if cfg.Matrix != life.MatrixRandom && cfg.Matrix != life.MatrixRing {
		m, err := rules.Load(cfg.Matrix, spec.K)
		if err != nil {
			return nil, fmt.Errorf("matrix file %s: %w", cfg.Matrix, err)
		}
		spec.A = m
	}

	state, repairs := sim.Init(spec, cfg.Seed)
	for _, r := range repairs {
		fmt.Fprintf(os.Stderr, "config repaired: %v\n", r)
	}
	return state, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	state, err := buildState(cfg)
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	runner := experiment.NewRunner(state)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d particles, %d types, %d steps...\n", state.N(), state.K(), steps)
	start := time.Now()

	result, err := runner.Run(ctx, steps)
	if err != nil {
		fmt.Printf("interrupted after %d steps\n", result.Frames)
	}
	elapsed := time.Since(start)

	runID, err := store.Save(state.Spec(), cfg.Seed, result, state.Snapshot(), state.Matrix())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	state, err := buildState(cfg)
	if err != nil {
		return err
	}
	return viz.Run(state, frameRate)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	state, err := buildState(cfg)
	if err != nil {
		return err
	}
	return gui.Run(state)
}

func benchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	state, err := buildState(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		state.Step()
	}
	elapsed := time.Since(start)

	fmt.Printf("%d particles, %d steps in %v\n", state.N(), steps, elapsed)
	fmt.Printf("%.1f steps/sec\n", float64(steps)/elapsed.Seconds())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tTYPES\tSTEPS\tWRAP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%v\n",
			run.ID, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles, run.Types, run.Steps, run.Wrap)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	maxSpeeds, kinetic, pairs, err := store.Diagnostics(args[0])
	if err != nil {
		return err
	}

	var data []float64
	switch series {
	case "max-speed":
		data = maxSpeeds
	case "pairs":
		data = pairs
	case "kinetic":
		data = kinetic
	default:
		return fmt.Errorf("unknown series: %s", series)
	}
	if len(data) == 0 {
		return fmt.Errorf("run %s has no diagnostics", args[0])
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(series),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func generateMatrix(cmd *cobra.Command, args []string) error {
	var m rules.Matrix
	switch matrixArg {
	case life.MatrixRing:
		m = rules.NewRing(types)
	case life.MatrixRandom:
		m = rules.NewRandom(types, newSeededRand())
	default:
		return fmt.Errorf("unknown generator: %s", matrixArg)
	}

	if err := rules.Save(args[0], m); err != nil {
		return err
	}
	fmt.Printf("wrote %dx%d matrix to %s\n", types, types, args[0])
	return nil
}

func showMatrix(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var rec rules.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "receiver\\source")
	for j := 0; j < rec.K; j++ {
		fmt.Fprintf(w, "\t%d", j)
	}
	fmt.Fprintln(w)
	for i, row := range rec.A {
		fmt.Fprintf(w, "%d", i)
		for _, v := range row {
			fmt.Fprintf(w, "\t%+.2f", v)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func newSeededRand() *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
