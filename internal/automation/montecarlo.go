package automation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/physics"
)

// MonteCarloConfig perturbs both controls of Base uniformly by up to
// Perturbation and integrates NumTrials orbits.
type MonteCarloConfig struct {
	Base         experiment.OrbitConfig
	Perturbation float64
	NumTrials    int
	Seed         int64
	// Workers bounds the concurrent orbits; zero means one per trial.
	Workers int
}

// MonteCarloResult is one perturbed trial.
type MonteCarloResult struct {
	TrialID                  int
	AngularMomentumMagnitude float64
	EnergyMagnitude          float64
	Kind                     physics.Kind
	Captured                 bool
	Periapsis                float64
}

// RunMonteCarlo executes the trials concurrently. Perturbed controls are
// clamped to [0, 1]; the same seed gives the same trials.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", cfg.NumTrials)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, cfg.NumTrials)
	for i := range results {
		results[i] = MonteCarloResult{
			TrialID:                  i,
			AngularMomentumMagnitude: clamp01(cfg.Base.AngularMomentumMagnitude + (rng.Float64()-0.5)*2*cfg.Perturbation),
			EnergyMagnitude:          clamp01(cfg.Base.EnergyMagnitude + (rng.Float64()-0.5)*2*cfg.Perturbation),
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := range results {
		g.Go(func() error {
			trial := &results[i]
			oc := cfg.Base
			oc.AngularMomentumMagnitude = trial.AngularMomentumMagnitude
			oc.EnergyMagnitude = trial.EnergyMagnitude

			o, err := experiment.NewOrbit(oc, registry, nil)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			res, err := o.Run(ctx)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			trial.Kind = o.Parameters().Kind
			trial.Captured = res.Schwarzschild.Captured
			trial.Periapsis = res.Schwarzschild.Result.Metrics["periapsis"]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloStats summarizes a set of trials.
type MonteCarloStats struct {
	Captured      int
	Survived      int
	CaptureRate   float64
	MeanPeriapsis float64
	StdPeriapsis  float64
	Kinds         map[physics.Kind]int
}

// Stats counts captures and averages the periapsis of the surviving trials.
func Stats(results []MonteCarloResult) MonteCarloStats {
	s := MonteCarloStats{Kinds: make(map[physics.Kind]int)}
	var periapses []float64
	for _, r := range results {
		s.Kinds[r.Kind]++
		if r.Captured {
			s.Captured++
			continue
		}
		s.Survived++
		periapses = append(periapses, r.Periapsis)
	}
	if len(results) > 0 {
		s.CaptureRate = float64(s.Captured) / float64(len(results))
	}
	switch len(periapses) {
	case 0:
	case 1:
		s.MeanPeriapsis = periapses[0]
	default:
		s.MeanPeriapsis, s.StdPeriapsis = stat.MeanStdDev(periapses, nil)
	}
	return s
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
