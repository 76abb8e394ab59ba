package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/blackholes/internal/analysis"
	"github.com/san-kum/blackholes/internal/automation"
	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/export"
	"github.com/san-kum/blackholes/internal/optim"
	"github.com/san-kum/blackholes/internal/physics"
	"github.com/san-kum/blackholes/internal/storage"
	"github.com/san-kum/blackholes/internal/viz"
)

var (
	trials       int
	perturbation float64
	seed         int64
	workers      int
	searchPoints int
	svgOutput    string
	svgSize      int
)

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(sc.Name))
	if sc.Description != "" {
		fmt.Println(viz.Subtle.Render(sc.Description))
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), sc, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tKIND\tOUTCOME\tRUN")
	for i, r := range results {
		name := r.Step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		switch {
		case r.Orbit != nil:
			gr := r.Orbit.Schwarzschild
			outcome := r.Orbit.Parameters.Kind.String()
			if gr.Captured {
				outcome += fmt.Sprintf(", captured at t=%.4g", gr.CaptureTime)
			}
			id := "-"
			if st != nil {
				if id, err = st.Save(orbitMetadata(r.Config, r.Orbit.Parameters, gr), gr.Result); err != nil {
					return err
				}
			}
			fmt.Fprintf(w, "%s\torbit\t%s\t%s\n", name, outcome, id)
		default:
			b := r.Config.Binary
			fmt.Fprintf(w, "%s\tbinary\t%d frames, m1=%g m2=%g\t-\n", name, len(r.Frames), b.FirstMass, b.SecondMass)
		}
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "orbit")
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:         cfg.Orbit.Experiment(),
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
		Workers:      workers,
	}
	results, err := automation.RunMonteCarlo(context.Background(), mc, experiment.NewRegistry())
	if err != nil {
		return err
	}
	s := automation.Stats(results)

	fmt.Println(viz.Title.Render(fmt.Sprintf("monte carlo: l=%g±%g  e=%g±%g",
		cfg.Orbit.AngularMomentum, perturbation, cfg.Orbit.Energy, perturbation)))
	fmt.Println(viz.Metric("trials", float64(len(results))))
	fmt.Println(viz.Metric("captured", float64(s.Captured)))
	fmt.Println(viz.Metric("capture rate", s.CaptureRate))
	if s.Survived > 0 {
		fmt.Println(viz.Metric("mean periapsis", s.MeanPeriapsis))
		fmt.Println(viz.Metric("periapsis std dev", s.StdPeriapsis))
	}
	fmt.Println()
	for k := physics.NearCircular; k <= physics.FallIn; k++ {
		if n := s.Kinds[k]; n > 0 {
			fmt.Printf("  %s %-14s %d\n", viz.KindStyle(k).Render(viz.KindGlyph(k)), k, n)
		}
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "orbit")
	if err != nil {
		return err
	}

	a, err := optim.ClosestApproach(context.Background(), cfg.Orbit.Experiment(), searchPoints, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}
	p, err := physics.SelectParameters(cfg.Orbit.Mass, a.AngularMomentumMagnitude, a.EnergyMagnitude)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("closest approach without capture"))
	fmt.Println(viz.Metric("angular momentum control", a.AngularMomentumMagnitude))
	fmt.Println(viz.Metric("energy control", a.EnergyMagnitude))
	fmt.Println(viz.Metric("periapsis", a.Periapsis))
	fmt.Println(viz.Metric("periapsis / M", a.Periapsis/cfg.Orbit.Mass))
	fmt.Printf("%-24s%s\n", viz.MetricLabel.Render("trajectory"), viz.KindStyle(p.Kind).Render(p.Kind.String()))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if meta.Kind != "orbit" {
		return fmt.Errorf("svg export needs an orbit run, got %s", meta.Kind)
	}
	th, err := experiment.NewRegistry().GetTheory(meta.Theory)
	if err != nil {
		return err
	}

	p := analysis.TrackPortrait(res)
	scene := export.TrackScene(p.X, p.Y, th, 2*meta.Params["mass"], svgSize, svgSize)
	return writeScene(scene, svgOutput)
}

func writeScene(scene *export.Scene, path string) error {
	if path == "" || path == "-" {
		return scene.WriteSVG(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scene.WriteSVG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
