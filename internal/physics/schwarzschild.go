package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SchwarzschildGeodesic is a timelike geodesic of the Schwarzschild metric.
type SchwarzschildGeodesic struct {
	particle Particle
	source   BlackHole
}

func (g SchwarzschildGeodesic) Particle() Particle      { return g.particle }
func (g SchwarzschildGeodesic) Source() BlackHole       { return g.source }
func (g SchwarzschildGeodesic) Theory() Theory          { return Schwarzschild }
func (g SchwarzschildGeodesic) Category() FieldCategory { return SchwarzschildCategory }

func (g SchwarzschildGeodesic) InitialVelocity() r3.Vec {
	return initialVelocity(g)
}

func (g SchwarzschildGeodesic) AngularVelocity(r float64) float64 {
	return g.particle.AngularMomentum / (r * r)
}

// EffectivePotentialSquared is (1 - 2M/r)(1 + (L/r)^2). It turns negative
// inside the horizon.
func (g SchwarzschildGeodesic) EffectivePotentialSquared(r float64) float64 {
	l := g.particle.AngularMomentum / r
	return (1 - 2*g.source.Mass/r) * (1 + l*l)
}

// EffectivePotential is the signed square root of EffectivePotentialSquared.
func (g SchwarzschildGeodesic) EffectivePotential(r float64) float64 {
	v2 := g.EffectivePotentialSquared(r)
	return math.Copysign(math.Sqrt(math.Abs(v2)), v2)
}

// RadialVelocity is inward and vanishes wherever E^2 <= V^2, the turning
// points and the classically forbidden region.
func (g SchwarzschildGeodesic) RadialVelocity(r float64) float64 {
	v2 := g.EffectivePotentialSquared(r)
	e2 := g.particle.Energy * g.particle.Energy
	if !(e2 > v2) {
		return 0
	}
	return -math.Sqrt(e2 - v2)
}

func (g SchwarzschildGeodesic) EffectiveRadialForce(r float64) float64 {
	fm := -g.source.Mass / (r * r)
	l := g.particle.AngularMomentum / r
	return fm + 3*fm*l*l
}
