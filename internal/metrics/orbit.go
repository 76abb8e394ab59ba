package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/blackholes/internal/dynamo"
)

// Orbit metrics read planar states laid out as [x, y, vx, vy] and measure
// them about a fixed center.

type AngularMomentumDrift struct {
	center   r3.Vec
	initial  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift(center r3.Vec) *AngularMomentumDrift {
	return &AngularMomentumDrift{center: center}
}

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(x dynamo.State, t float64) {
	if len(x) < 4 {
		return
	}
	l := (x[0]-a.center.X)*x[3] - (x[1]-a.center.Y)*x[2]
	if a.samples == 0 {
		a.initial = l
	}
	a.samples++
	if a.initial != 0 {
		a.maxDrift = math.Max(a.maxDrift, math.Abs(l-a.initial)/math.Abs(a.initial))
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.samples = 0
}

// radii collects the distance of every observed state from center.
type radii struct {
	center r3.Vec
	values []float64
}

func (r *radii) observe(x dynamo.State) {
	if len(x) < 2 {
		return
	}
	r.values = append(r.values, math.Hypot(x[0]-r.center.X, x[1]-r.center.Y))
}

// Periapsis is the closest approach to the center.
type Periapsis struct{ radii }

func NewPeriapsis(center r3.Vec) *Periapsis {
	return &Periapsis{radii{center: center}}
}

func (p *Periapsis) Name() string                      { return "periapsis" }
func (p *Periapsis) Observe(x dynamo.State, t float64) { p.observe(x) }
func (p *Periapsis) Reset()                            { p.values = p.values[:0] }

func (p *Periapsis) Value() float64 {
	if len(p.values) == 0 {
		return 0
	}
	return floats.Min(p.values)
}

// Apoapsis is the farthest excursion from the center.
type Apoapsis struct{ radii }

func NewApoapsis(center r3.Vec) *Apoapsis {
	return &Apoapsis{radii{center: center}}
}

func (a *Apoapsis) Name() string                      { return "apoapsis" }
func (a *Apoapsis) Observe(x dynamo.State, t float64) { a.observe(x) }
func (a *Apoapsis) Reset()                            { a.values = a.values[:0] }

func (a *Apoapsis) Value() float64 {
	if len(a.values) == 0 {
		return 0
	}
	return floats.Max(a.values)
}

// Orbit returns the standard set of orbit metrics about center.
func Orbit(center r3.Vec) []dynamo.Metric {
	return []dynamo.Metric{
		NewAngularMomentumDrift(center),
		NewPeriapsis(center),
		NewApoapsis(center),
	}
}
