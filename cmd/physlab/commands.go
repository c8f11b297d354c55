package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/automation"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/demo"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/optim"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/viz"
)

func plotDemo(cmd *cobra.Command, args []string) error {
	_, f, err := loadFrame(args[0])
	if err != nil {
		return err
	}

	for _, p := range f.Panels {
		if f.Field != nil && f.Field.Panel == p.ID {
			fmt.Println(p.Title)
			fmt.Println(viz.RenderField(f.Field, plotWidth, plotHeight*2, viz.FieldShade))
			fmt.Println()
			continue
		}
		curves := f.CurvesIn(p.ID)
		if len(curves) == 0 {
			continue
		}
		data := make([][]float64, len(curves))
		names := make([]string, len(curves))
		for i, c := range curves {
			data[i] = make([]float64, len(c.Y))
			for j, v := range c.Y {
				if p.LogY {
					v = math.Log10(v)
				}
				data[i][j] = v
			}
			names[i] = c.Name
		}
		caption := fmt.Sprintf("%s (%s)", p.Title, p.XLabel)
		if p.LogY {
			caption += ", log10 " + p.YLabel
		}
		graph := asciigraph.PlotMany(data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.SeriesLegends(names...),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return printScalars(f)
}

func printScalars(f *demo.Frame) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tVALUE\tUNIT")
	for _, s := range f.Scalars {
		fmt.Fprintf(w, "%s\t%.6g\t%s\n", s.Name, s.Value, s.Unit)
	}
	return w.Flush()
}

func exportDemo(cmd *cobra.Command, args []string) error {
	_, f, err := loadFrame(args[0])
	if err != nil {
		return err
	}

	var format export.Format
	switch {
	case exportFormat != "":
		format, err = export.ParseFormat(exportFormat)
	case outPath != "":
		format, err = export.FormatFromPath(outPath)
	default:
		format = export.SVG
	}
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = f.Demo + format.Ext()
	}
	if err := export.WriteFile(path, f, format); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", path)
	return nil
}

func analyzeDemo(cmd *cobra.Command, args []string) error {
	_, f, err := loadFrame(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n\n", f.Demo)
	if err := printScalars(f); err != nil {
		return err
	}

	reports := analysis.Analyze(f)
	if len(reports) == 0 {
		fmt.Println("\nno time-domain curves")
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CURVE\tPANEL\tSAMPLES\tMIN\tMAX\tRMS\tDOMINANT\tRESOLUTION")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g hz\t%.4g hz\n",
			r.Curve, r.Panel, r.Samples, r.Min, r.Max, r.RMS, r.DominantHz, r.Resolution)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// spectrum of the first curve, up to four times its peak
	first := reports[0]
	c, _ := f.Curve(first.Curve)
	rate, err := analysis.SampleRate(c.X)
	if err != nil {
		return err
	}
	spec, err := analysis.PowerSpectrum(c.Y, rate)
	if err != nil {
		return err
	}
	n := len(spec.Power)
	if first.DominantHz > 0 && spec.Resolution > 0 {
		n = min(n, int(4*first.DominantHz/spec.Resolution)+2)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(spec.Power[:n],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s), 0..%.0f hz", first.Curve, spec.Freqs[n-1])),
	))
	return nil
}

func benchDemo(cmd *cobra.Command, args []string) error {
	if benchIters < 1 {
		return fmt.Errorf("--iter must be positive")
	}
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	names := reg.List()
	if len(args) > 0 {
		if _, err := reg.Get(args[0]); err != nil {
			return err
		}
		names = args[:1]
	}

	fmt.Printf("recompute latency, %d iterations\n\n", benchIters)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEMO\tMEAN\tMIN\tMAX\tRECOMPUTES/SEC")

	for _, name := range names {
		d, _ := reg.Get(name)
		p := d.Params()
		keys := p.Keys()

		var total, lo, hi time.Duration
		for i := 0; i < benchIters; i++ {
			// alternate slider moves so each recompute sees a new value
			dir := 1
			if i%2 == 1 {
				dir = -1
			}
			if err := p.Step(keys[i%len(keys)], dir); err != nil {
				return err
			}
			start := time.Now()
			if _, err := d.Recompute(p); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			elapsed := time.Since(start)

			total += elapsed
			if i == 0 || elapsed < lo {
				lo = elapsed
			}
			hi = max(hi, elapsed)
		}
		mean := total / time.Duration(benchIters)
		fmt.Fprintf(w, "%s\t%v\t%v\t%v\t%.0f\n", name, mean, lo, hi, float64(benchIters)/total.Seconds())
	}

	return w.Flush()
}

func listDemos(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEMO\tPARAM\tUNIT\tRANGE\tDEFAULT\tSCALE")
	for _, name := range reg.List() {
		d, _ := reg.Get(name)
		fmt.Fprintf(w, "%s\t\t\t\t\t%s\n", name, d.Description())
		for _, sp := range d.Params().Specs() {
			fmt.Fprintf(w, "\t%s\t%s\t%s\t%s\t%s\n", sp.Key, sp.Unit, specRange(sp), sp.Format(sp.Default), scaleName(sp.Scale))
		}
	}
	return w.Flush()
}

func specRange(sp params.Spec) string {
	if sp.Scale == params.Choice {
		labels := make([]string, len(sp.Choices))
		for i, c := range sp.Choices {
			labels[i] = sp.Format(c)
		}
		return "{" + strings.Join(labels, ", ") + "}"
	}
	return fmt.Sprintf("[%s, %s]", sp.Format(sp.Min), sp.Format(sp.Max))
}

func scaleName(s params.Scale) string {
	switch s {
	case params.Log:
		return "log"
	case params.Choice:
		return "choice"
	}
	return "linear"
}

func listPresets(cmd *cobra.Command, args []string) error {
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for demo: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, name := range presets {
		values := config.GetPreset(args[0], name)
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%g", k, values[k])
		}
		fmt.Printf("  %-10s %s\n", name, strings.Join(parts, " "))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, err := automation.RunScenario(cmd.Context(), sc, reg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tDEMO\tOUTPUT")
	for _, r := range results {
		out := r.Path
		if out == "" {
			out = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.Step, r.Demo, out)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	d, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	sp, ok := d.Params().Spec(sweepParam)
	if !ok {
		return fmt.Errorf("%w: %s", params.ErrUnknownParam, sweepParam)
	}
	if !cmd.Flags().Changed("min") {
		sweepMin = sp.Min
	}
	if !cmd.Flags().Changed("max") {
		sweepMax = sp.Max
	}
	if !cmd.Flags().Changed("log") {
		sweepLog = sp.Scale == params.Log
	}

	base := make(map[string]float64)
	for _, assign := range setValues {
		key, text, _ := strings.Cut(assign, "=")
		ksp, ok := d.Params().Spec(strings.TrimSpace(key))
		if !ok {
			return fmt.Errorf("%w: %s", params.ErrUnknownParam, key)
		}
		v, err := ksp.Parse(text)
		if err != nil {
			return err
		}
		base[ksp.Key] = v
	}

	sweep := &automation.ParameterSweep{
		Demo:     d.Name(),
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Log:      sweepLog,
		Base:     base,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, reg)
	if err != nil {
		return err
	}

	ref, err := d.Recompute(d.Params())
	if err != nil {
		return err
	}
	names := make([]string, len(ref.Scalars))
	for i, s := range ref.Scalars {
		names[i] = s.Name
	}
	table := automation.NewSweepTable(sweep, names, results)
	if sweepOut != "" {
		if err := table.WriteFile(sweepOut); err != nil {
			return err
		}
		fmt.Printf("saved %s\n\n", sweepOut)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{strings.ToUpper(sweepParam)}
	for _, name := range names {
		header = append(header, strings.ToUpper(name))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for i, row := range table.Rows {
		cells := []string{sp.Format(table.Values[i])}
		for _, v := range row {
			cells = append(cells, fmt.Sprintf("%.5g", v))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	d, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	base, err := demoParams(d)
	if err != nil {
		return err
	}

	targets := make([]optim.Target, 0, len(tuneTargets))
	for _, t := range tuneTargets {
		name, text, ok := strings.Cut(t, "=")
		if !ok {
			return fmt.Errorf("target %q: expected name=value", t)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("target %q: %w", t, err)
		}
		targets = append(targets, optim.Target{Scalar: strings.TrimSpace(name), Value: v})
	}

	axes := make([]optim.Axis, 0, len(tuneOver))
	for _, key := range tuneOver {
		sp, ok := base.Spec(key)
		if !ok {
			return fmt.Errorf("%w: %s", params.ErrUnknownParam, key)
		}
		a, err := optim.AxisFor(sp, tuneSteps)
		if err != nil {
			return err
		}
		axes = append(axes, a)
	}

	gs := optim.NewGridSearch(axes).Workers(tuneWorkers)
	fmt.Printf("searching %d points\n\n", gs.Size())
	res, err := gs.Search(cmd.Context(), d, base, targets)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tVALUE")
	for _, sp := range base.Specs() {
		fmt.Fprintf(w, "%s\t%s\n", sp.Key, sp.Format(res.Params[sp.Key]))
	}
	fmt.Fprintln(w, "\t")
	fmt.Fprintln(w, "TARGET\tWANTED\tGOT")
	for _, t := range targets {
		fmt.Fprintf(w, "%s\t%.5g\t%.5g\n", t.Scalar, t.Value, res.Scalars[t.Scalar])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nevaluated %d points, cost %.3g\n", res.Evaluated, res.Cost)
	return nil
}
