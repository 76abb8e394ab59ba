package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/blackholes/internal/analysis"
	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/storage"
	"github.com/san-kum/blackholes/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTHEORY\tTIME\tDURATION\tDT\tINTEG\tTRAJECTORY\tCAPTURED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%.4g\t%s\t%s\t%v\n",
			run.ID,
			run.Kind,
			orDash(run.Theory),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			orDash(run.Integrator),
			orDash(run.Trajectory),
			run.Captured,
		)
	}

	return w.Flush()
}

// openStore opens the run store named by the config file or --data.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(res.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(res.States))

	if meta.Kind == "orbit" {
		p := analysis.TrackPortrait(res)
		c := viz.NewCanvas(width/2, height)
		c.Fit(0.1, [2][]float64{p.X, p.Y})
		horizon := viz.Subtle
		c.DrawDisk(0, 0, 2*meta.Params["mass"], &horizon)
		th, err := experiment.NewRegistry().GetTheory(meta.Theory)
		if err != nil {
			return err
		}
		style := viz.TheoryStyle(th)
		c.DrawPath(p.X, p.Y, &style)
		fmt.Println(viz.BoxWithTitle("track", c.String(), width/2+2))
		fmt.Println()
	}

	numVars := min(len(res.States[0]), 7)
	for i := 0; i < numVars; i++ {
		data := make([]float64, len(res.States))
		for j, x := range res.States {
			data[j] = x[i]
		}
		caption := fmt.Sprintf("x%d vs time", i)
		if i < len(meta.Columns) {
			caption = meta.Columns[i] + " vs time"
		}
		fmt.Println(viz.Plot(caption, width, height, data))
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(res.States) < 2 || len(res.States[0]) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Println(viz.Title.Render("analysis: " + meta.ID))
	fmt.Println()

	// inspiral runs are stored at the frame rate; orbits may be adaptive, so
	// use the mean sample spacing
	span := res.Times[len(res.Times)-1] - res.Times[0]
	rate := float64(len(res.Times)-1) / span

	switch meta.Kind {
	case "orbit":
		p := analysis.TrackPortrait(res)
		radius := make([]float64, p.Len())
		for i := range radius {
			radius[i] = math.Hypot(p.X[i], p.Y[i])
		}
		fmt.Println(viz.Metric("min radius", floats.Min(radius)))
		fmt.Println(viz.Metric("max radius", floats.Max(radius)))
		fmt.Println("radius  " + viz.Sparkline(radius, 60))
		fmt.Println()

		if prec, err := analysis.MeasurePrecession(res.Times, p.X, p.Y); err == nil {
			fmt.Println(viz.Metric("periapses", float64(len(prec.Azimuths))))
			fmt.Println(viz.Metric("precession per orbit", prec.PerOrbit))
			fmt.Println(viz.Metric("precession per orbit deg", prec.PerOrbit*180/math.Pi))
		} else {
			fmt.Println(viz.Subtle.Render("precession: " + err.Error()))
		}
		if f, err := analysis.DominantFrequency(radius, rate); err == nil && f > 0 {
			fmt.Println(viz.Metric("radial frequency", f))
			fmt.Println(viz.Metric("radial period", 1/f))
		}
		fmt.Println()

		fmt.Println("radial phase portrait (r, dr/dt):")
		fmt.Println(analysis.PortraitToASCII(analysis.RadialPortrait(res, r3.Vec{}), 60, 16, false))

	default:
		// track of the first component about the center of mass
		x := make([]float64, len(res.States))
		for i, s := range res.States {
			x[i] = s[0]
		}
		if f, err := analysis.DominantFrequency(x, rate); err == nil {
			fmt.Println(viz.Metric("dominant frequency x0", f))
		} else {
			fmt.Println(viz.Subtle.Render("frequency: " + err.Error()))
		}
		ps := analysis.PowerSpectrum(x)
		fmt.Println(viz.Plot("power spectrum (x0)", 80, 12, ps[:max(len(ps)/4, 1)]))
		fmt.Println()
		fmt.Println("track of first component:")
		fmt.Println(analysis.PortraitToASCII(analysis.TrackPortrait(res), 40, 16, true))
	}
	return nil
}

func sortedMetricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(res.States) == 0 {
		return fmt.Errorf("no data to export")
	}
	if exportOutput == "-" {
		return storage.WriteCSV(os.Stdout, meta, res)
	}
	return storage.ExportCSV(exportOutput, meta, res)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if exportOutput == "-" {
		return storage.WriteJSON(os.Stdout, meta, res)
	}
	return storage.ExportJSON(exportOutput, meta, res)
}
