package physics

import (
	"math"

	"github.com/san-kum/blackholes/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Field is the central force of a geodesic, expressed as a planar ODE over
// the state [x, y, vx, vy]. Integrating it from InitialState traces the
// particle's trajectory.
type Field struct {
	Geodesic Geodesic
}

func NewField(g Geodesic) *Field {
	return &Field{Geodesic: g}
}

func (f *Field) StateDim() int { return 4 }

func (f *Field) Derive(x dynamo.State, t float64) dynamo.State {
	a := f.Acceleration(r3.Vec{X: x[0], Y: x[1]})
	return dynamo.State{x[2], x[3], a.X, a.Y}
}

// Acceleration is EffectiveRadialForce(r) along the radial unit vector from
// the source.
func (f *Field) Acceleration(pos r3.Vec) r3.Vec {
	r, phi := polar(pos, f.Geodesic.Source().Position)
	return r3.Scale(f.Geodesic.EffectiveRadialForce(r), radialUnit(phi))
}

// Radius is the in-plane distance of state x from the source.
func (f *Field) Radius(x dynamo.State) float64 {
	r, _ := polar(r3.Vec{X: x[0], Y: x[1]}, f.Geodesic.Source().Position)
	return r
}

// AngularMomentum is the specific angular momentum x*vy - y*vx of state x
// about the source.
func (f *Field) AngularMomentum(x dynamo.State) float64 {
	src := f.Geodesic.Source().Position
	return (x[0]-src.X)*x[3] - (x[1]-src.Y)*x[2]
}

// Energy is the specific orbital energy of state x under this field: the
// kinetic term plus the potential whose gradient is EffectiveRadialForce.
// It is conserved along an exact trajectory.
func (f *Field) Energy(x dynamo.State) float64 {
	src := f.Geodesic.Source()
	r := f.Radius(x)
	u := -src.Mass / r
	if f.Geodesic.Theory() == Schwarzschild {
		l := f.Geodesic.Particle().AngularMomentum
		u -= src.Mass * l * l / (r * r * r)
	}
	v := Speed(x)
	return 0.5*v*v + u
}

// Captured reports whether state x lies inside the source's capture radius.
func (f *Field) Captured(x dynamo.State) bool {
	return f.Geodesic.Source().Captures(f.Radius(x))
}

// CaptureHalter stops a run once the particle crosses the capture radius.
func (f *Field) CaptureHalter() dynamo.Halter {
	return dynamo.HaltFunc(func(x dynamo.State, _ float64) bool {
		return f.Captured(x)
	})
}

// FieldSet holds several force fields. A body feels every field whose
// category shares a bit with the body's mask.
type FieldSet struct {
	fields []*Field
}

func NewFieldSet(fields ...*Field) *FieldSet {
	return &FieldSet{fields: fields}
}

func (s *FieldSet) Add(f *Field) { s.fields = append(s.fields, f) }

func (s *FieldSet) Acceleration(mask FieldCategory, pos r3.Vec) r3.Vec {
	var a r3.Vec
	for _, f := range s.fields {
		if f.Geodesic.Category()&mask == 0 {
			continue
		}
		a = r3.Add(a, f.Acceleration(pos))
	}
	return a
}

// Body binds a FieldSet to one mask, giving the ODE of a single body.
func (s *FieldSet) Body(mask FieldCategory) dynamo.System {
	return &maskedBody{set: s, mask: mask}
}

type maskedBody struct {
	set  *FieldSet
	mask FieldCategory
}

func (b *maskedBody) StateDim() int { return 4 }

func (b *maskedBody) Derive(x dynamo.State, t float64) dynamo.State {
	a := b.set.Acceleration(b.mask, r3.Vec{X: x[0], Y: x[1]})
	return dynamo.State{x[2], x[3], a.X, a.Y}
}

// Speed is the magnitude of the velocity part of a planar state.
func Speed(x dynamo.State) float64 {
	return math.Hypot(x[2], x[3])
}
