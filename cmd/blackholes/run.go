package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/blackholes/internal/analysis"
	"github.com/san-kum/blackholes/internal/audio"
	"github.com/san-kum/blackholes/internal/config"
	"github.com/san-kum/blackholes/internal/dynamo"
	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/export"
	"github.com/san-kum/blackholes/internal/physics"
	"github.com/san-kum/blackholes/internal/storage"
	"github.com/san-kum/blackholes/internal/viz"
)

func showParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "orbit")
	if err != nil {
		return err
	}
	o := cfg.Orbit
	p, err := physics.SelectParameters(o.Mass, o.AngularMomentum, o.Energy)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("M=%g  l=%g  e=%g", o.Mass, o.AngularMomentum, o.Energy)))
	fmt.Println(viz.Metric("schwarzschild radius", p.Source.SchwarzschildRadius()))
	fmt.Println(viz.Metric("capture radius", p.Source.CaptureRadius()))
	fmt.Println(viz.Metric("angular momentum", p.AngularMomentum))
	fmt.Println(viz.Metric("saddle angular momentum", p.SaddleAngularMomentum))
	fmt.Println(viz.Metric("energy", p.Energy))
	fmt.Println(viz.Metric("circular orbit radius", p.CircularOrbitRadius))
	fmt.Println(viz.Metric("circular orbit energy", p.CircularOrbitEnergy))
	fmt.Println(viz.Metric("inner orbit radius", p.InnerOrbitRadius))
	fmt.Println(viz.Metric("inner orbit energy", p.InnerOrbitEnergy))
	fmt.Println(viz.Metric("newtonian orbit radius", p.NewtonianOrbitRadius))
	fmt.Println(viz.Metric("newtonian orbit energy", p.NewtonianOrbitEnergy))
	fmt.Println(viz.Metric("scene scale", p.Scale))
	fmt.Printf("%-24s%s\n", viz.MetricLabel.Render("trajectory"), viz.KindStyle(p.Kind).Render(p.Kind.String()))
	fmt.Println()

	// log-spaced from just outside the horizon to twice the circular radius
	g, n := p.Geodesics()
	lo, hi := 1.1*p.Source.SchwarzschildRadius(), 2*p.CircularOrbitRadius
	const samples = 80
	gr, newton := make([]float64, samples), make([]float64, samples)
	for i := range gr {
		r := lo * math.Pow(hi/lo, float64(i)/(samples-1))
		gr[i] = g.EffectivePotential(r)
		newton[i] = n.EffectivePotential(r)
	}
	caption := fmt.Sprintf("effective potential, r from %.3g to %.3g (log)", lo, hi)
	fmt.Println(viz.Plot(caption, samples, 12, gr, newton))
	return nil
}

func runOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "orbit")
	if err != nil {
		return err
	}

	o, err := experiment.NewOrbit(cfg.Orbit.Experiment(), experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}
	p := o.Parameters()

	fmt.Printf("running orbit: %s (timescale %.4g)\n", p.Kind, o.Timescale())
	start := time.Now()
	res, err := o.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	fmt.Print(viz.OrbitView(res, 60, 24))
	fmt.Println(viz.Schwarzschild.Render("━ schwarzschild") + "  " + viz.Newtonian.Render("━ newtonian"))
	fmt.Println(viz.Separator(60))

	for _, b := range res.Bodies() {
		fmt.Println(viz.TheoryStyle(b.Theory).Bold(true).Render(b.Theory.String()))
		fmt.Printf("  steps: %d\n", b.Result.StepsTaken)
		if b.Captured {
			fmt.Println("  " + viz.Warning.Render(fmt.Sprintf("captured at t=%.4g", b.CaptureTime)))
		}
		for _, name := range sortedMetricNames(b.Result.Metrics) {
			fmt.Println("  " + viz.Metric(name, b.Result.Metrics[name]))
		}
		if !b.Captured {
			xs, ys := b.Path()
			if prec, err := analysis.MeasurePrecession(b.Result.Times, xs, ys); err == nil {
				fmt.Println("  " + viz.Metric("precession per orbit", prec.PerOrbit))
			}
		}
		fmt.Printf("  periapsis passages: %d, apoapsis passages: %d\n", len(b.Periapses), len(b.Apoapses))
		fmt.Println()
	}

	if orbitSVG != "" {
		if err := writeScene(export.OrbitScene(res, svgSize, svgSize), orbitSVG); err != nil {
			return err
		}
		level.Info(logger).Log("msg", "svg written", "file", orbitSVG)
	}

	if noSave {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, b := range res.Bodies() {
		id, err := st.Save(orbitMetadata(cfg, p, b), b.Result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}
	return nil
}

func orbitMetadata(cfg *config.Config, p physics.Parameters, b *experiment.Body) storage.RunMetadata {
	return storage.RunMetadata{
		Kind:        "orbit",
		Theory:      b.Theory.String(),
		Dt:          cfg.Orbit.Dt,
		Duration:    cfg.Orbit.Duration,
		Integrator:  cfg.Orbit.Integrator,
		Trajectory:  p.Kind.String(),
		Captured:    b.Captured,
		CaptureTime: b.CaptureTime,
		Columns:     []string{"x", "y", "vx", "vy"},
		Params: map[string]float64{
			"mass":                   p.Source.Mass,
			"angular_momentum_ctl":   p.AngularMomentumMagnitude,
			"energy_ctl":             p.EnergyMagnitude,
			"angular_momentum":       p.AngularMomentum,
			"energy":                 p.Energy,
			"circular_orbit_radius":  p.CircularOrbitRadius,
			"newtonian_orbit_radius": p.NewtonianOrbitRadius,
		},
	}
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "orbit")
	if err != nil {
		return err
	}

	o, err := experiment.NewOrbit(cfg.Orbit.Experiment(), experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators for %s orbit (dt=%.4g, duration=%.4g timescales)\n\n",
		o.Parameters().Kind, cfg.Orbit.Dt, cfg.Orbit.Duration)

	start := time.Now()
	cmp, err := o.Compare(context.Background(), args)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "comparison done", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tENERGY_DRIFT\tL_DRIFT\tPERIAPSIS\tCAPTURED")
	for _, c := range cmp {
		m := c.Result.Metrics
		captured := "-"
		if c.Result.Halted {
			captured = fmt.Sprintf("t=%.4g", c.Result.HaltTime)
		}
		fmt.Fprintf(w, "%s\t%d\t%.2e\t%.2e\t%.6g\t%s\n",
			c.Integrator, c.Result.StepsTaken, m["energy_drift"], m["angular_momentum_drift"], m["periapsis"], captured)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "orbit")
	if err != nil {
		return err
	}

	res, err := experiment.Sweep(cfg.Orbit.Mass, sweepPoints)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("trajectory kinds, M=%g", cfg.Orbit.Mass)))
	fmt.Print(viz.SweepMap(res))
	fmt.Println()

	counts := res.Counts()
	total := sweepPoints * sweepPoints
	for k := physics.NearCircular; k <= physics.FallIn; k++ {
		fmt.Printf("  %-14s %5d  %5.1f%%\n", k, counts[k], 100*float64(counts[k])/float64(total))
	}
	return nil
}

func runInspiral(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "binary")
	if err != nil {
		return err
	}
	tl, err := cfg.Binary.Timeline()
	if err != nil {
		return err
	}

	frames, err := tl.Frames(cfg.Binary.FPS)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "inspiral sampled", "frames", len(frames), "chirp_mass", tl.Binary.ChirpMass())

	fmt.Println(viz.Title.Render(fmt.Sprintf("m1=%g  m2=%g", tl.Binary.FirstMass, tl.Binary.SecondMass)))
	fmt.Println(viz.Metric("total mass", tl.Binary.TotalMass()))
	fmt.Println(viz.Metric("chirp mass", tl.Binary.ChirpMass()))
	fmt.Println(viz.Metric("final mass", tl.Binary.FinalBlackHole().Mass))
	fmt.Println(viz.Metric("initial time", tl.InitialTime()))
	fmt.Println()

	var freq, dist []float64
	for _, f := range frames {
		if f.Merged {
			break
		}
		freq = append(freq, f.AudioFrequency)
		dist = append(dist, f.Distance)
	}
	fmt.Println(viz.Plot("audio frequency (Hz)", 80, 10, freq))
	fmt.Println()
	fmt.Println(viz.Plot("separation", 80, 8, dist))
	fmt.Println()

	// last frame before merger
	last := frames[max(len(freq)-1, 0)]
	fmt.Print(viz.InspiralView(last, 40, 16))
	fmt.Printf("t=%.3gs before merger\n\n", (tl.Duration - last.Elapsed).Seconds())

	if noSave {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	result := inspiralResult(frames)
	id, err := st.Save(storage.RunMetadata{
		Kind:     "inspiral",
		Dt:       1 / cfg.Binary.FPS,
		Duration: cfg.Binary.Duration,
		Columns:  []string{"x1", "y1", "x2", "y2", "frequency", "audio_frequency", "distance"},
		Params: map[string]float64{
			"first_mass":    tl.Binary.FirstMass,
			"second_mass":   tl.Binary.SecondMass,
			"initial_angle": tl.Binary.InitialAngle,
			"chirp_mass":    tl.Binary.ChirpMass(),
			"timescale":     tl.Timescale,
		},
		Metrics: map[string]float64{},
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", id)
	return nil
}

// inspiralResult keeps the frames up to merger as a stored trajectory.
func inspiralResult(frames []experiment.Frame) *dynamo.Result {
	res := &dynamo.Result{}
	for _, f := range frames {
		if f.Merged {
			break
		}
		res.Times = append(res.Times, f.Elapsed.Seconds())
		res.States = append(res.States, dynamo.State{
			f.First.X, f.First.Y, f.Second.X, f.Second.Y,
			f.Frequency, f.AudioFrequency, f.Distance,
		})
	}
	res.StepsTaken = max(len(res.States)-1, 0)
	return res
}

func runSonify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "binary")
	if err != nil {
		return err
	}
	tl, err := cfg.Binary.Timeline()
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := audio.Render(f, tl, cfg.Audio.Audio()); err != nil {
		f.Close()
		return errors.Join(err, os.Remove(output))
	}
	if err := f.Close(); err != nil {
		return err
	}

	level.Info(logger).Log("msg", "chirp rendered", "file", output, "elapsed", time.Since(start))
	fmt.Printf("wrote %s (%gs of inspiral at %d Hz)\n", output, cfg.Binary.Duration, cfg.Audio.SampleRate)
	return nil
}
