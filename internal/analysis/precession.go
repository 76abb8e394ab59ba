package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Precession describes the advance of the periapsis of a planar orbit.
type Precession struct {
	// Azimuths are the unwrapped angles of successive periapses.
	Azimuths []float64
	Times    []float64
	// PerOrbit is the mean advance per orbit in radians, positive in the
	// direction of motion. A closed Keplerian ellipse gives zero.
	PerOrbit float64
}

// MeasurePrecession locates periapses as local minima of the radius of the
// track (xs[i], ys[i]) sampled at times, refining each with a parabola
// through its neighbours. It needs at least two periapses.
func MeasurePrecession(times, xs, ys []float64) (Precession, error) {
	n := len(xs)
	if len(ys) != n || len(times) != n {
		return Precession{}, fmt.Errorf("%w: series lengths differ", ErrInsufficientData)
	}
	if n < 3 {
		return Precession{}, fmt.Errorf("%w: need at least 3 samples, got %d", ErrInsufficientData, n)
	}

	r := make([]float64, n)
	phi := make([]float64, n)
	for i := range xs {
		r[i] = math.Hypot(xs[i], ys[i])
		phi[i] = math.Atan2(ys[i], xs[i])
		if i > 0 {
			phi[i] = phi[i-1] + wrap(phi[i]-math.Atan2(ys[i-1], xs[i-1]))
		}
	}

	var p Precession
	for i := 1; i < n-1; i++ {
		if r[i-1] > r[i] && r[i] <= r[i+1] {
			p.Azimuths = append(p.Azimuths, vertex(phi[i-1:i+2], r[i-1:i+2]))
			p.Times = append(p.Times, times[i])
		}
	}
	if len(p.Azimuths) < 2 {
		return p, fmt.Errorf("%w: found %d periapses, need 2", ErrInsufficientData, len(p.Azimuths))
	}

	advances := make([]float64, len(p.Azimuths)-1)
	for i := range advances {
		advances[i] = math.Abs(p.Azimuths[i+1]-p.Azimuths[i]) - 2*math.Pi
	}
	p.PerOrbit = floats.Sum(advances) / float64(len(advances))
	return p, nil
}

// wrap maps an angle difference onto (-pi, pi].
func wrap(d float64) float64 {
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// vertex is the abscissa of the minimum of the parabola through three
// points, or the middle point when they are collinear.
func vertex(x, y []float64) float64 {
	den := (x[0] - x[1]) * (x[0] - x[2]) * (x[1] - x[2])
	if den == 0 {
		return x[1]
	}
	a := (x[2]*(y[1]-y[0]) + x[1]*(y[0]-y[2]) + x[0]*(y[2]-y[1])) / den
	b := (x[2]*x[2]*(y[0]-y[1]) + x[1]*x[1]*(y[2]-y[0]) + x[0]*x[0]*(y[1]-y[2])) / den
	if a <= 0 {
		return x[1]
	}
	return -b / (2 * a)
}
