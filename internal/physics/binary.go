package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BinarySystem is a pair of black holes in the late inspiral. Every query
// takes t, the time remaining until coalescence; t -> 0 at merger and the
// formulas are singular there.
type BinarySystem struct {
	FirstMass    float64
	SecondMass   float64
	InitialAngle float64
}

// NewBinarySystem validates both masses.
func NewBinarySystem(firstMass, secondMass, initialAngle float64) (BinarySystem, error) {
	if err := checkMass("first mass", firstMass); err != nil {
		return BinarySystem{}, err
	}
	if err := checkMass("second mass", secondMass); err != nil {
		return BinarySystem{}, err
	}
	return BinarySystem{FirstMass: firstMass, SecondMass: secondMass, InitialAngle: initialAngle}, nil
}

func DefaultBinarySystem() BinarySystem {
	return BinarySystem{FirstMass: 3, SecondMass: 1.5}
}

// BinaryFromControls distributes mass from two controls in [0, 1]: ratio
// splits the mass between the components and magnitude scales the total
// from 2 to 8. The initial angle is zero; use AlignedAt to start the
// binary on the x axis.
func BinaryFromControls(ratio, magnitude float64) (BinarySystem, error) {
	ratio = clamp01(ratio)
	m := 1 + 3*clamp01(magnitude)
	return NewBinarySystem(2*ratio*m, 2*(1-ratio)*m, 0)
}

func (b BinarySystem) TotalMass() float64 {
	return b.FirstMass + b.SecondMass
}

// ChirpMass is (m1 m2)^(3/5) / M^(1/5), the mass combination that sets the
// rate of the frequency sweep.
func (b BinarySystem) ChirpMass() float64 {
	return math.Pow(b.FirstMass*b.SecondMass, 3.0/5.0) / math.Pow(b.TotalMass(), 1.0/5.0)
}

// RadiationFrequency is the gravitational-wave frequency t before
// coalescence. It rises without bound as t -> 0.
func (b BinarySystem) RadiationFrequency(t float64) (float64, error) {
	if err := checkTime(t); err != nil {
		return 0, err
	}
	return b.radiationFrequency(t), nil
}

// Distance is the orbital separation t before coalescence.
func (b BinarySystem) Distance(t float64) (float64, error) {
	if err := checkTime(t); err != nil {
		return 0, err
	}
	return b.distance(b.radiationFrequency(t)), nil
}

// RotationAngle is the orbital phase t before coalescence.
func (b BinarySystem) RotationAngle(t float64) (float64, error) {
	if err := checkTime(t); err != nil {
		return 0, err
	}
	return b.rotationAngle(b.radiationFrequency(t)), nil
}

// AlignedAt returns b with InitialAngle chosen so that RotationAngle(t) is
// zero, which puts both components on the x axis at t.
func (b BinarySystem) AlignedAt(t float64) (BinarySystem, error) {
	b.InitialAngle = 0
	phi, err := b.RotationAngle(t)
	if err != nil {
		return BinarySystem{}, err
	}
	b.InitialAngle = phi
	return b, nil
}

// FirstRadius is the distance of the first component from the barycenter.
func (b BinarySystem) FirstRadius(t float64) (float64, error) {
	d, err := b.Distance(t)
	if err != nil {
		return 0, err
	}
	return b.SecondMass / b.TotalMass() * d, nil
}

// SecondRadius is the distance of the second component from the barycenter.
func (b BinarySystem) SecondRadius(t float64) (float64, error) {
	d, err := b.Distance(t)
	if err != nil {
		return 0, err
	}
	return b.FirstMass / b.TotalMass() * d, nil
}

func (b BinarySystem) FirstBlackHole(t float64) (BlackHole, error) {
	s, err := b.State(t)
	if err != nil {
		return BlackHole{}, err
	}
	return s.First, nil
}

func (b BinarySystem) SecondBlackHole(t float64) (BlackHole, error) {
	s, err := b.State(t)
	if err != nil {
		return BlackHole{}, err
	}
	return s.Second, nil
}

// FinalRadiatedEnergy is the mass-energy carried away by gravitational
// waves during the merger. It is not modeled and is always zero.
func (b BinarySystem) FinalRadiatedEnergy() float64 {
	return 0
}

// FinalBlackHole is the merger remnant at the barycenter.
func (b BinarySystem) FinalBlackHole() BlackHole {
	return BlackHole{Mass: b.TotalMass() - b.FinalRadiatedEnergy()}
}

// BinaryState is a snapshot of the binary at one instant.
type BinaryState struct {
	Time      float64
	Frequency float64
	Distance  float64
	Angle     float64
	First     BlackHole
	Second    BlackHole
}

// State evaluates every time-dependent quantity at t in one pass.
func (b BinarySystem) State(t float64) (BinaryState, error) {
	if err := checkTime(t); err != nil {
		return BinaryState{}, err
	}
	f := b.radiationFrequency(t)
	d := b.distance(f)
	phi := b.rotationAngle(f)
	u := radialUnit(phi)
	total := b.TotalMass()

	return BinaryState{
		Time:      t,
		Frequency: f,
		Distance:  d,
		Angle:     phi,
		First:     BlackHole{Mass: b.FirstMass, Position: r3.Scale(b.SecondMass/total*d, u)},
		Second:    BlackHole{Mass: b.SecondMass, Position: r3.Scale(-b.FirstMass/total*d, u)},
	}, nil
}

func (b BinarySystem) radiationFrequency(t float64) float64 {
	return math.Pow(b.ChirpMass(), -5.0/8.0) * math.Pow(t, -3.0/8.0)
}

func (b BinarySystem) distance(f float64) float64 {
	return math.Pow(b.ChirpMass()/4, 1.0/3.0) * math.Pow(math.Pi*f, -2.0/3.0)
}

func (b BinarySystem) rotationAngle(f float64) float64 {
	return math.Pi*math.Pow(f*b.ChirpMass(), -5.0/3.0) - b.InitialAngle
}

func checkTime(t float64) error {
	if math.IsNaN(t) || t <= 0 {
		return fmt.Errorf("%w: got t=%g", ErrTemporalSingularity, t)
	}
	return nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
