package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// angularMomentumSpan is the width of the angular momentum range above
	// the saddle value, in units of the source mass.
	angularMomentumSpan = 6.0

	// innerOrbitEnergyMagnitude is the energy control value that lands
	// exactly on the top of the potential barrier.
	innerOrbitEnergyMagnitude = 0.8

	// energyEasing concentrates control resolution near the circular-orbit
	// and capture energies.
	energyEasing = 5.0
)

// SaddleAngularMomentum is sqrt(12) M, the angular momentum of the innermost
// stable circular orbit. Below it the effective potential has no minimum.
func SaddleAngularMomentum(mass float64) float64 {
	return math.Sqrt(12) * mass
}

// CircularOrbit returns the radii of the stable (outer) and unstable (inner)
// circular orbits for angular momentum l, the roots of dV/dr = 0.
func CircularOrbit(mass, l float64) (outer, inner float64, err error) {
	if err := checkMass("mass", mass); err != nil {
		return 0, 0, err
	}
	if l < SaddleAngularMomentum(mass) {
		return 0, 0, fmt.Errorf("%w: angular momentum %g below saddle value %g", ErrNoStableOrbit, l, SaddleAngularMomentum(mass))
	}
	m := mass / l
	// rounds slightly negative at exactly the saddle value
	disc := math.Sqrt(math.Max(0, 1-12*m*m))
	base := l * l / (2 * mass)
	return base * (1 + disc), base * (1 - disc), nil
}

// Parameters are the initial conditions chosen for a pair of control values,
// together with the landmarks of the effective potential they were chosen from.
type Parameters struct {
	Source BlackHole

	AngularMomentumMagnitude float64
	EnergyMagnitude          float64

	AngularMomentum       float64
	SaddleAngularMomentum float64
	Energy                float64

	CircularOrbitRadius  float64
	CircularOrbitEnergy  float64
	InnerOrbitRadius     float64
	InnerOrbitEnergy     float64
	NewtonianOrbitRadius float64
	NewtonianOrbitEnergy float64

	Particle Particle
	Kind     Kind
	// Scale is the size of the scene relative to the innermost stable orbit.
	Scale float64
}

// SelectParameters maps an angular momentum control and an energy control,
// both in [0, 1], onto initial conditions around a black hole of the given
// mass. The angular momentum control spans [L_saddle, L_saddle + 6M]. The
// energy control eases from the circular-orbit energy up to the top of the
// potential barrier at 0.8 and beyond it towards fall-in above.
//
// The particle starts on the stable circular-orbit radius at (-r, 0, 0).
func SelectParameters(mass, angularMomentumMagnitude, energyMagnitude float64) (Parameters, error) {
	src, err := NewBlackHole(mass, r3.Vec{})
	if err != nil {
		return Parameters{}, err
	}
	if err := checkMagnitude("angular momentum magnitude", angularMomentumMagnitude); err != nil {
		return Parameters{}, err
	}
	if err := checkMagnitude("energy magnitude", energyMagnitude); err != nil {
		return Parameters{}, err
	}

	saddle := SaddleAngularMomentum(mass)
	l := saddle + angularMomentumMagnitude*angularMomentumSpan*mass

	outer, inner, err := CircularOrbit(mass, l)
	if err != nil {
		return Parameters{}, err
	}

	gr := SchwarzschildGeodesic{particle: Particle{AngularMomentum: l}, source: src}
	circularEnergy := math.Sqrt(gr.EffectivePotentialSquared(outer))
	innerEnergy := math.Sqrt(gr.EffectivePotentialSquared(inner))

	newtonRadius := l * l / mass
	newtonAt := NewtonGeodesic{particle: Particle{AngularMomentum: l}, source: src}

	energy := EaseEnergy(energyMagnitude, circularEnergy, innerEnergy)

	return Parameters{
		Source:                   src,
		AngularMomentumMagnitude: angularMomentumMagnitude,
		EnergyMagnitude:          energyMagnitude,
		AngularMomentum:          l,
		SaddleAngularMomentum:    saddle,
		Energy:                   energy,
		CircularOrbitRadius:      outer,
		CircularOrbitEnergy:      circularEnergy,
		InnerOrbitRadius:         inner,
		InnerOrbitEnergy:         innerEnergy,
		NewtonianOrbitRadius:     newtonRadius,
		NewtonianOrbitEnergy:     newtonAt.EffectivePotential(newtonRadius),
		Particle: Particle{
			InitialPosition: r3.Vec{X: -outer},
			Energy:          energy,
			AngularMomentum: l,
		},
		Kind:  Classify(energy, circularEnergy, innerEnergy),
		Scale: outer / (saddle * saddle) * mass,
	}, nil
}

// EaseEnergy maps an energy control in [0, 1] onto an energy. Up to 0.8 it
// rises from circularEnergy to innerEnergy along a fifth-power curve; above
// 0.8 it continues past innerEnergy by up to (innerEnergy - 1).
func EaseEnergy(magnitude, circularEnergy, innerEnergy float64) float64 {
	if magnitude <= innerOrbitEnergyMagnitude {
		s := math.Pow(magnitude/innerOrbitEnergyMagnitude, energyEasing)
		return circularEnergy + s*(innerEnergy-circularEnergy)
	}
	s := math.Pow((magnitude-innerOrbitEnergyMagnitude)/(1-innerOrbitEnergyMagnitude), energyEasing)
	return innerEnergy + s*(innerEnergy-1)
}

// Geodesics returns the Schwarzschild and Newtonian geodesics of the
// selected particle.
func (p Parameters) Geodesics() (SchwarzschildGeodesic, NewtonGeodesic) {
	return SchwarzschildGeodesic{particle: p.Particle, source: p.Source},
		NewtonGeodesic{particle: p.Particle, source: p.Source}
}

func checkMagnitude(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be in [0, 1], got %g", ErrInvalidParameter, name, v)
	}
	return nil
}
