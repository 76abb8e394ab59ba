package optim

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log"

	"github.com/san-kum/blackholes/internal/experiment"
)

// ErrCaptured rejects a grid point whose Schwarzschild body fell in.
var ErrCaptured = errors.New("optim: particle captured")

// Approach is the closest pass found by ClosestApproach.
type Approach struct {
	AngularMomentumMagnitude float64
	EnergyMagnitude          float64
	Periapsis                float64
}

// ClosestApproach searches an n x n grid of controls for the orbit that
// dips deepest towards the black hole without being captured. base supplies
// the mass and integration settings.
func ClosestApproach(ctx context.Context, base experiment.OrbitConfig, n int, registry *experiment.Registry, logger log.Logger) (Approach, error) {
	if n < 2 {
		return Approach{}, fmt.Errorf("optim: need at least 2 points per control, got %d", n)
	}
	grid := Linspace(0, 1, n)
	gs := NewGridSearch([]string{"angular_momentum", "energy"}, [][]float64{grid, grid})

	best, periapsis, err := gs.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		cfg := base
		cfg.AngularMomentumMagnitude = p["angular_momentum"]
		cfg.EnergyMagnitude = p["energy"]
		o, err := experiment.NewOrbit(cfg, registry, logger)
		if err != nil {
			return 0, err
		}
		res, err := o.Run(ctx)
		if err != nil {
			return 0, err
		}
		if res.Schwarzschild.Captured {
			return 0, ErrCaptured
		}
		return res.Schwarzschild.Result.Metrics["periapsis"], nil
	})
	if err != nil {
		return Approach{}, err
	}
	return Approach{
		AngularMomentumMagnitude: best["angular_momentum"],
		EnergyMagnitude:          best["energy"],
		Periapsis:                periapsis,
	}, nil
}
