package experiment

import (
	"fmt"

	"github.com/san-kum/blackholes/internal/dynamo"
	"github.com/san-kum/blackholes/internal/physics"
)

// SweepCell is the outcome of one pair of controls.
type SweepCell struct {
	AngularMomentumMagnitude float64
	EnergyMagnitude          float64
	Energy                   float64
	Kind                     physics.Kind
}

// SweepResult is an n x n grid over both controls. Cells[i][j] has angular
// momentum control i/(n-1) and energy control j/(n-1).
type SweepResult struct {
	Mass  float64
	Cells [][]SweepCell
}

// Counts tallies the trajectory kinds in the grid.
func (r *SweepResult) Counts() map[physics.Kind]int {
	counts := make(map[physics.Kind]int)
	for _, row := range r.Cells {
		for _, c := range row {
			counts[c.Kind]++
		}
	}
	return counts
}

// Sweep selects parameters over an n x n grid of controls in parallel.
func Sweep(mass float64, n int) (*SweepResult, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 points per axis, got %d", dynamo.ErrInvalidConfig, n)
	}

	cells := make([][]SweepCell, n)
	for i := range cells {
		cells[i] = make([]SweepCell, n)
	}
	errs := make([]error, n*n)

	dynamo.ParallelFor(n*n, n, func(start, end int) {
		for k := start; k < end; k++ {
			i, j := k/n, k%n
			a := float64(i) / float64(n-1)
			e := float64(j) / float64(n-1)
			p, err := physics.SelectParameters(mass, a, e)
			if err != nil {
				errs[k] = err
				continue
			}
			cells[i][j] = SweepCell{
				AngularMomentumMagnitude: a,
				EnergyMagnitude:          e,
				Energy:                   p.Energy,
				Kind:                     p.Kind,
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &SweepResult{Mass: mass, Cells: cells}, nil
}
