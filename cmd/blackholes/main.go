package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/blackholes/internal/config"
	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/physics"
	"github.com/san-kum/blackholes/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	theme      string
	preset     string

	// orbit
	mass            float64
	angularMomentum float64
	energy          float64
	integrator      string
	dt              float64
	duration        float64
	adaptive        bool

	// binary
	firstMass  float64
	secondMass float64
	angle      float64
	playback   float64
	fps        float64
	ratio      float64
	magnitude  float64

	sweepPoints  int
	exportOutput string
	presetKind   string
	output       string
	sampleRate   int
	noSave       bool
	orbitSVG     string
	width        int
	height       int
)

var logger = log.NewNopLogger()

func main() {
	rootCmd := &cobra.Command{
		Use:          "blackholes",
		Short:        "orbits and inspirals around black holes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			viz.SetTheme(theme)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".blackholes", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "cyberpunk",
		"color theme: "+strings.Join(viz.ThemeNames(), ", "))

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "show the orbit parameters selected by the controls",
		RunE:  showParams,
	}
	orbitFlags(paramsCmd)

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "integrate a particle under Schwarzschild and Newtonian gravity",
		RunE:  runOrbit,
	}
	orbitFlags(orbitCmd)
	integrationFlags(orbitCmd)
	orbitCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	orbitCmd.Flags().StringVar(&orbitSVG, "svg", "", "also draw both tracks to this SVG file")
	orbitCmd.Flags().IntVar(&svgSize, "svg-size", 800, "SVG width and height in pixels")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the Schwarzschild orbit",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	orbitFlags(compareCmd)
	integrationFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "map trajectory kinds over both controls",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "black hole mass")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 21, "grid points per control")

	inspiralCmd := &cobra.Command{
		Use:   "inspiral",
		Short: "trace a binary black hole inspiral",
		RunE:  runInspiral,
	}
	binaryFlags(inspiralCmd)
	inspiralCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sonifyCmd := &cobra.Command{
		Use:   "sonify",
		Short: "render the inspiral chirp to a WAV file",
		RunE:  runSonify,
	}
	binaryFlags(sonifyCmd)
	sonifyCmd.Flags().StringVarP(&output, "output", "o", "chirp.wav", "output file")
	sonifyCmd.Flags().IntVar(&sampleRate, "rate", 44100, "sample rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&width, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 12, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "precession, phase portrait and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "output file, - for stdout")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "output file, - for stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw an orbit run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOutput, "output", "o", "-", "output file, - for stdout")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "width and height in pixels")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of orbits and inspirals",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "capture statistics for perturbed controls",
		RunE:  runMonteCarlo,
	}
	orbitFlags(monteCarloCmd)
	integrationFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "spread", 0.05, "maximum perturbation of each control")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	monteCarloCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "concurrent orbits")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "find the closest approach that escapes capture",
		RunE:  runSearch,
	}
	orbitFlags(searchCmd)
	integrationFlags(searchCmd)
	searchCmd.Flags().IntVar(&searchPoints, "points", 11, "grid points per control")

	configCmd := &cobra.Command{
		Use:   "config [file]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}
	orbitFlags(configCmd)
	integrationFlags(configCmd)
	binaryControlFlags(configCmd)
	configCmd.Flags().StringVar(&presetKind, "kind", "orbit", "preset kind: "+strings.Join(config.ListKinds(), ", "))

	rootCmd.AddCommand(paramsCmd, orbitCmd, compareCmd, sweepCmd, inspiralCmd, sonifyCmd,
		listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		presetsCmd, scenarioCmd, monteCarloCmd, searchCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func orbitFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "black hole mass")
	cmd.Flags().Float64VarP(&angularMomentum, "angular-momentum", "l", 0.5, "angular momentum control in [0, 1]")
	cmd.Flags().Float64VarP(&energy, "energy", "e", 0.25, "energy control in [0, 1]")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func integrationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&integrator, "integrator", "rk4",
		"integrator: "+strings.Join(experiment.NewRegistry().ListIntegrators(), ", "))
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in orbital timescales")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in orbital timescales")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive step size (rk45)")
}

func binaryFlags(cmd *cobra.Command) {
	binaryControlFlags(cmd)
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func binaryControlFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&firstMass, "m1", config.DefaultFirstMass, "first black hole mass")
	cmd.Flags().Float64Var(&secondMass, "m2", config.DefaultSecondMass, "second black hole mass")
	cmd.Flags().Float64Var(&angle, "angle", 0, "initial rotation angle")
	cmd.Flags().Float64Var(&playback, "playback", config.DefaultPlayback, "playback length in seconds")
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frames per second")
	cmd.Flags().Float64Var(&ratio, "ratio", 0.5, "mass ratio control in [0, 1], replaces --m1 and --m2")
	cmd.Flags().Float64Var(&magnitude, "magnitude", 0.5, "total mass control in [0, 1], replaces --m1 and --m2")
}

// loadConfig layers the defaults, a preset of kind, the config file and
// finally any flags set on the command line.
func loadConfig(cmd *cobra.Command, kind string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(kind, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
	}

	// config file overrides preset
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		cfg.Orbit.Mass = mass
	}
	if flags.Changed("angular-momentum") {
		cfg.Orbit.AngularMomentum = angularMomentum
	}
	if flags.Changed("energy") {
		cfg.Orbit.Energy = energy
	}
	if flags.Changed("integrator") {
		cfg.Orbit.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Orbit.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Orbit.Duration = duration
	}
	if flags.Changed("adaptive") {
		cfg.Orbit.Adaptive = adaptive
	}
	if flags.Changed("m1") {
		cfg.Binary.FirstMass = firstMass
	}
	if flags.Changed("m2") {
		cfg.Binary.SecondMass = secondMass
	}
	if flags.Changed("ratio") || flags.Changed("magnitude") {
		b, err := physics.BinaryFromControls(ratio, magnitude)
		if err != nil {
			return nil, err
		}
		cfg.Binary.FirstMass, cfg.Binary.SecondMass = b.FirstMass, b.SecondMass
	}
	if flags.Changed("angle") {
		cfg.Binary.InitialAngle = angle
	}
	if flags.Changed("playback") {
		cfg.Binary.Duration = playback
	}
	if flags.Changed("fps") {
		cfg.Binary.FPS = fps
	}
	if flags.Changed("rate") {
		cfg.Audio.SampleRate = sampleRate
	}
	// a mass change from the controls restarts the binary on the x axis
	if (flags.Changed("ratio") || flags.Changed("magnitude")) && !flags.Changed("angle") {
		if err := cfg.Binary.Align(); err != nil {
			return nil, err
		}
	}
	if cmd.Root().PersistentFlags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cmd.Root().PersistentFlags().Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger = newLogger(cfg.LogLevel)
	level.Debug(logger).Log("msg", "config loaded", "kind", kind, "preset", preset, "file", configFile)
	return cfg, nil
}

func newLogger(name string) log.Logger {
	var opt level.Option
	switch name {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = level.NewFilter(l, opt)
	return log.With(l, "ts", log.DefaultTimestampUTC)
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := config.ListKinds()
	if len(args) > 0 {
		kinds = args
	}
	for _, kind := range kinds {
		presets := config.ListPresets(kind)
		if len(presets) == 0 {
			fmt.Printf("no presets for kind: %s\n", kind)
			continue
		}
		fmt.Printf("presets for %s:\n", kind)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, presetKind)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "config written", "file", args[0])
	return nil
}
