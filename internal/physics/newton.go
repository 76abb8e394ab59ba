package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NewtonGeodesic is the Keplerian trajectory under inverse-square gravity,
// with the rest energy of 1 kept in the potential so energies compare
// directly with SchwarzschildGeodesic.
type NewtonGeodesic struct {
	particle Particle
	source   BlackHole
}

func (g NewtonGeodesic) Particle() Particle      { return g.particle }
func (g NewtonGeodesic) Source() BlackHole       { return g.source }
func (g NewtonGeodesic) Theory() Theory          { return Newtonian }
func (g NewtonGeodesic) Category() FieldCategory { return NewtonCategory }

func (g NewtonGeodesic) InitialVelocity() r3.Vec {
	return initialVelocity(g)
}

func (g NewtonGeodesic) AngularVelocity(r float64) float64 {
	return g.particle.AngularMomentum / (r * r)
}

func (g NewtonGeodesic) EffectivePotential(r float64) float64 {
	l := g.particle.AngularMomentum / r
	return l*l/2 - g.source.Mass/r + 1
}

func (g NewtonGeodesic) RadialVelocity(r float64) float64 {
	e := g.particle.Energy
	v := g.EffectivePotential(r)
	if !(e > v) {
		return 0
	}
	return -math.Sqrt(2*e - 2*v)
}

func (g NewtonGeodesic) EffectiveRadialForce(r float64) float64 {
	return -g.source.Mass / (r * r)
}
