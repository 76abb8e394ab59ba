package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Particle holds the initial conditions of a test body. Energy and angular
// momentum are conserved along the geodesic.
type Particle struct {
	InitialPosition r3.Vec
	Energy          float64
	AngularMomentum float64
}

// polar returns the in-plane radius and azimuth of p relative to origin.
// Motion is planar, so the z component is ignored.
func polar(p, origin r3.Vec) (r, phi float64) {
	d := r3.Sub(p, origin)
	return math.Hypot(d.X, d.Y), math.Atan2(d.Y, d.X)
}

func radialUnit(phi float64) r3.Vec {
	s, c := math.Sincos(phi)
	return r3.Vec{X: c, Y: s}
}

func azimuthalUnit(phi float64) r3.Vec {
	s, c := math.Sincos(phi)
	return r3.Vec{X: -s, Y: c}
}
