package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BlackHole is a Schwarzschild black hole: a point mass at a fixed position.
type BlackHole struct {
	Mass     float64
	Position r3.Vec
}

// NewBlackHole returns a black hole of the given mass, which must be positive
// and finite.
func NewBlackHole(mass float64, position r3.Vec) (BlackHole, error) {
	if err := checkMass("mass", mass); err != nil {
		return BlackHole{}, err
	}
	return BlackHole{Mass: mass, Position: position}, nil
}

// DefaultBlackHole has unit mass and sits at the origin.
func DefaultBlackHole() BlackHole {
	return BlackHole{Mass: 1}
}

// SchwarzschildRadius is the horizon radius 2M.
func (b BlackHole) SchwarzschildRadius() float64 {
	return 2 * b.Mass
}

// CaptureRadius is the photon sphere at 3M. Test particles crossing it are
// treated as swallowed.
func (b BlackHole) CaptureRadius() float64 {
	return 3 * b.Mass
}

// Captures reports whether a particle at radius r has been swallowed.
func (b BlackHole) Captures(r float64) bool {
	return r <= b.CaptureRadius()
}

func checkMass(name string, m float64) error {
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParameter, name, m)
	}
	return nil
}
