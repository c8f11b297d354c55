package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/demo"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/viz"
)

var (
	// Global flags
	configFile string
	logLevel   string
	logFile    string

	// Parameter selection
	preset    string
	setValues []string
	themeName string

	// Export
	formatName   string
	exportFormat string
	outPath      string
	outDir       string

	// Plot size
	plotHeight int
	plotWidth  int

	benchIters int

	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepLog   bool
	sweepOut   string

	// Tune
	tuneTargets []string
	tuneOver    []string
	tuneSteps   int
	tuneWorkers int

	cfg     *config.Config
	logSink *os.File
)

// main is the entry point for the physlab CLI. Without a subcommand it opens
// the demo menu. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "physlab",
		Short:             "interactive physics demos",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runMenu,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or ini)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "color theme")
	rootCmd.Flags().StringVar(&formatName, "format", "svg", "format for the export key")
	rootCmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for the export key")

	runCmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "open the live view of one demo",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDemo,
	}
	paramFlags(runCmd)
	runCmd.Flags().StringVar(&themeName, "theme", "", "color theme")
	runCmd.Flags().StringVar(&formatName, "format", "svg", "format for the export key")
	runCmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for the export key")

	plotCmd := &cobra.Command{
		Use:   "plot [demo]",
		Short: "print the current figure once",
		Args:  cobra.ExactArgs(1),
		RunE:  plotDemo,
	}
	paramFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	exportCmd := &cobra.Command{
		Use:   "export [demo]",
		Short: "save the current figure or its data",
		Args:  cobra.ExactArgs(1),
		RunE:  exportDemo,
	}
	paramFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "svg, html, png, csv, json or xlsx (default from --out, else svg)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <demo>.<format>)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [demo]",
		Short: "derived values and spectrum of each time-domain curve",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeDemo,
	}
	paramFlags(analyzeCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [demo]",
		Short: "measure recompute latency",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchDemo,
	}
	benchCmd.Flags().IntVar(&benchIters, "iter", 200, "recomputes per demo")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list demos and their parameters",
		RunE:  listDemos,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [demo]",
		Short: "list available presets for a demo",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [demo]",
		Short: "tabulate derived values across a parameter range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "start value (default: parameter minimum)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0, "end value (default: parameter maximum)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of points")
	sweepCmd.Flags().BoolVar(&sweepLog, "log", false, "logarithmic spacing (default: from parameter scale)")
	sweepCmd.Flags().StringArrayVar(&setValues, "set", nil, "fixed parameter key=value (repeatable)")
	sweepCmd.Flags().StringVarP(&sweepOut, "out", "o", "", "also write the table to a .csv or .json file")
	sweepCmd.MarkFlagRequired("param")

	tuneCmd := &cobra.Command{
		Use:   "tune [demo]",
		Short: "search parameters for target derived values",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	paramFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVarP(&tuneTargets, "target", "t", nil, "derived value name=value (repeatable)")
	tuneCmd.Flags().StringSliceVar(&tuneOver, "over", nil, "parameters to search over")
	tuneCmd.Flags().IntVar(&tuneSteps, "steps", 50, "points per parameter")
	tuneCmd.Flags().IntVar(&tuneWorkers, "workers", 4, "parallel workers")
	tuneCmd.MarkFlagRequired("target")
	tuneCmd.MarkFlagRequired("over")

	rootCmd.AddCommand(runCmd, plotCmd, exportCmd, analyzeCmd, benchCmd, listCmd, presetsCmd, scenarioCmd, sweepCmd, tuneCmd)

	err := rootCmd.Execute()
	closeLogSink()
	if err != nil {
		os.Exit(1)
	}
}

// closeLogSink closes the --log-file handle. It runs after Execute so
// failed commands still release it.
func closeLogSink() {
	if logSink == nil {
		return
	}
	log.SetOutput(io.Discard)
	logSink.Close()
	logSink = nil
}

func paramFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset parameters")
	cmd.Flags().StringArrayVarP(&setValues, "set", "s", nil, "parameter key=value, SI units or with a unit suffix like 600nm (repeatable)")
}

// setup loads the config and configures logging. The TUI commands log to
// --log-file or nowhere, since stderr would corrupt the alternate screen.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if themeName != "" {
		cfg.Theme = themeName
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	tui := cmd.Name() == "physlab" || cmd.Name() == "run"
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logSink = f
		log.SetOutput(f)
	case tui:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}

	log.WithFields(log.Fields{
		"command": cmd.Name(),
		"config":  configFile,
		"preset":  preset,
	}).Debug("physlab starting")
	return nil
}

func newRegistry() (*demo.Registry, error) {
	return demo.NewRegistry(cfg.Options())
}

// demoParams resolves the starting parameters of d: defaults, then config
// preset and overrides, then --set values checked strictly. An explicit
// --preset must exist for d.
func demoParams(d demo.Demo) (*params.Set, error) {
	c := cfg
	if preset != "" {
		c = cfg.WithPreset(d.Name(), preset)
	}
	p, err := c.ParamsFor(d)
	if err != nil {
		return nil, err
	}
	for _, assign := range setValues {
		if err := p.ParseAssignment(assign); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// loadFrame builds the registry and recomputes one demo with the resolved
// parameters.
func loadFrame(name string) (demo.Demo, *demo.Frame, error) {
	reg, err := newRegistry()
	if err != nil {
		return nil, nil, err
	}
	d, err := reg.Get(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (available: %v)", err, reg.List())
	}
	p, err := demoParams(d)
	if err != nil {
		return nil, nil, err
	}
	f, err := d.Recompute(p)
	if err != nil {
		return nil, nil, err
	}
	return d, f, nil
}

// tuiOptions wires the theme and the export key of the live view.
func tuiOptions() ([]viz.Option, error) {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	exporter := func(f *demo.Frame) (string, error) {
		name := fmt.Sprintf("%s-%s%s", f.Demo, time.Now().Format("20060102-150405"), format.Ext())
		path := filepath.Join(outDir, name)
		if err := export.WriteFile(path, f, format); err != nil {
			return "", err
		}
		return path, nil
	}
	return []viz.Option{viz.WithTheme(cfg.Theme), viz.WithExporter(exporter)}, nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	opts, err := tuiOptions()
	if err != nil {
		return err
	}
	return viz.RunInteractive(reg, cfg.ParamsFor, opts...)
}

func runDemo(cmd *cobra.Command, args []string) error {
	name := cfg.Demo
	if len(args) > 0 {
		name = args[0]
	}
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	d, err := reg.Get(name)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, reg.List())
	}
	p, err := demoParams(d)
	if err != nil {
		return err
	}
	s, err := demo.NewSession(d, p)
	if err != nil {
		return err
	}
	opts, err := tuiOptions()
	if err != nil {
		return err
	}
	return viz.RunLive(s, opts...)
}
