package physics

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Theory selects the gravitational model a geodesic is evaluated in.
type Theory int

const (
	Schwarzschild Theory = iota
	Newtonian
)

func (t Theory) String() string {
	switch t {
	case Schwarzschild:
		return "schwarzschild"
	case Newtonian:
		return "newtonian"
	default:
		return fmt.Sprintf("theory(%d)", int(t))
	}
}

// ParseTheory accepts a theory name or one of its aliases.
func ParseTheory(s string) (Theory, error) {
	switch strings.ToLower(s) {
	case "schwarzschild", "gr", "relativistic":
		return Schwarzschild, nil
	case "newtonian", "newton":
		return Newtonian, nil
	}
	return 0, fmt.Errorf("%w: unknown theory %q", ErrInvalidParameter, s)
}

// FieldCategory is a bitmask pairing bodies with the force fields that act
// on them.
type FieldCategory uint32

const (
	SchwarzschildCategory FieldCategory = 1 << 1
	NewtonCategory        FieldCategory = 1 << 2
)

// Geodesic is the trajectory of a test particle around a spherically
// symmetric source. Every method is a closed-form function of the radius.
type Geodesic interface {
	Particle() Particle
	Source() BlackHole
	Theory() Theory
	Category() FieldCategory

	RadialVelocity(r float64) float64
	AngularVelocity(r float64) float64
	EffectivePotential(r float64) float64
	// EffectiveRadialForce is the radial acceleration at r, for use as a
	// per-step force callback by an integrator.
	EffectiveRadialForce(r float64) float64
	InitialVelocity() r3.Vec
}

// NewGeodesic builds the geodesic of p around src in the given theory.
func NewGeodesic(theory Theory, p Particle, src BlackHole) (Geodesic, error) {
	if err := checkMass("source mass", src.Mass); err != nil {
		return nil, err
	}
	switch theory {
	case Schwarzschild:
		return SchwarzschildGeodesic{particle: p, source: src}, nil
	case Newtonian:
		return NewtonGeodesic{particle: p, source: src}, nil
	}
	return nil, fmt.Errorf("%w: unknown theory %d", ErrInvalidParameter, int(theory))
}

// initialVelocity combines the radial and tangential speeds at the
// particle's starting point into a planar velocity vector.
func initialVelocity(g Geodesic) r3.Vec {
	r, phi := polar(g.Particle().InitialPosition, g.Source().Position)
	return r3.Add(
		r3.Scale(g.RadialVelocity(r), radialUnit(phi)),
		r3.Scale(r*g.AngularVelocity(r), azimuthalUnit(phi)),
	)
}

// SimulationTimescale is the time the particle would need to cross its
// initial radius at its initial speed. It is zero for a particle at rest.
func SimulationTimescale(g Geodesic) float64 {
	speed := r3.Norm(g.InitialVelocity())
	if speed == 0 {
		return 0
	}
	return r3.Norm(r3.Sub(g.Particle().InitialPosition, g.Source().Position)) / speed
}

// InitialState is the planar state [x, y, vx, vy] of the particle at t=0,
// the layout used by Field.
func InitialState(g Geodesic) []float64 {
	p := g.Particle().InitialPosition
	v := g.InitialVelocity()
	return []float64{p.X, p.Y, v.X, v.Y}
}
