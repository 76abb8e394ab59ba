package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/blackholes/internal/physics"
)

var _ = Describe("BinarySystem", func() {
	var equal physics.BinarySystem

	BeforeEach(func() {
		var err error
		equal, err = physics.NewBinarySystem(1, 1, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects massless components", func() {
		_, err := physics.NewBinarySystem(0, 1, 0)
		Expect(err).To(MatchError(physics.ErrInvalidParameter))
		_, err = physics.NewBinarySystem(1, -2, 0)
		Expect(err).To(MatchError(physics.ErrInvalidParameter))
	})

	It("computes the chirp mass", func() {
		Expect(equal.ChirpMass()).To(BeNumerically("~", math.Pow(2, -0.2), 1e-12))
		Expect(physics.DefaultBinarySystem().ChirpMass()).To(BeNumerically("~", 1.8250930257, 1e-9))
	})

	It("keeps the chirp mass symmetric and below the total mass", func() {
		for _, m := range [][2]float64{{1, 1}, {3, 1.5}, {7.5, 0.5}, {0.01, 100}} {
			a, _ := physics.NewBinarySystem(m[0], m[1], 0)
			b, _ := physics.NewBinarySystem(m[1], m[0], 0)
			Expect(a.ChirpMass()).To(BeNumerically("~", b.ChirpMass(), 1e-12))
			Expect(a.ChirpMass()).To(BeNumerically("<=", a.TotalMass()))
		}
	})

	It("radiates at the chirp frequency", func() {
		f, err := equal.RadiationFrequency(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(BeNumerically("~", 1.0905077327, 1e-9))

		d, err := equal.Distance(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeNumerically("~", 0.2646827196, 1e-9))
	})

	It("sweeps upward in frequency and inward in separation", func() {
		b := physics.DefaultBinarySystem()
		prevF, prevD := 0.0, math.Inf(1)
		for _, t := range []float64{400, 100, 10, 1, 0.1, 0.001} {
			s, err := b.State(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Frequency).To(BeNumerically(">", prevF))
			Expect(s.Distance).To(BeNumerically("<", prevD))
			prevF, prevD = s.Frequency, s.Distance
		}
	})

	It("refuses queries at or after coalescence", func() {
		for _, t := range []float64{0, -1, math.NaN()} {
			_, err := equal.RadiationFrequency(t)
			Expect(err).To(MatchError(physics.ErrTemporalSingularity))
			_, err = equal.Distance(t)
			Expect(err).To(MatchError(physics.ErrTemporalSingularity))
			_, err = equal.RotationAngle(t)
			Expect(err).To(MatchError(physics.ErrTemporalSingularity))
			_, err = equal.FirstBlackHole(t)
			Expect(err).To(MatchError(physics.ErrTemporalSingularity))
			_, err = equal.State(t)
			Expect(err).To(MatchError(physics.ErrTemporalSingularity))
		}
	})

	It("keeps the barycenter at the origin", func() {
		b := physics.DefaultBinarySystem()
		for _, t := range []float64{300, 12, 0.5} {
			s, err := b.State(t)
			Expect(err).NotTo(HaveOccurred())
			com := r3.Add(r3.Scale(s.First.Mass, s.First.Position), r3.Scale(s.Second.Mass, s.Second.Position))
			Expect(r3.Norm(com)).To(BeNumerically("~", 0, 1e-9))
			sep := r3.Norm(r3.Sub(s.First.Position, s.Second.Position))
			Expect(sep).To(BeNumerically("~", s.Distance, 1e-9))

			r1, err := b.FirstRadius(t)
			Expect(err).NotTo(HaveOccurred())
			r2, err := b.SecondRadius(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(r1 + r2).To(BeNumerically("~", s.Distance, 1e-12))
			// the lighter hole swings wider
			Expect(r2).To(BeNumerically(">", r1))
		}
	})

	It("rotates by the initial angle", func() {
		b, err := physics.NewBinarySystem(1, 1, 0.5)
		Expect(err).NotTo(HaveOccurred())
		a0, _ := equal.RotationAngle(3)
		a1, _ := b.RotationAngle(3)
		Expect(a0 - a1).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("aligns the start of playback with the x axis", func() {
		b, err := physics.BinaryFromControls(0.5, 0.5)
		Expect(err).NotTo(HaveOccurred())
		aligned, err := b.AlignedAt(400)
		Expect(err).NotTo(HaveOccurred())
		Expect(aligned.FirstMass).To(Equal(b.FirstMass))

		phi, err := aligned.RotationAngle(400)
		Expect(err).NotTo(HaveOccurred())
		Expect(phi).To(BeNumerically("~", 0, 1e-12))
		first, err := aligned.FirstBlackHole(400)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Position.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(first.Position.X).To(BeNumerically(">", 0))

		_, err = b.AlignedAt(0)
		Expect(err).To(MatchError(physics.ErrTemporalSingularity))
	})

	It("merges into one hole of the total mass", func() {
		b := physics.DefaultBinarySystem()
		Expect(b.FinalRadiatedEnergy()).To(BeZero())
		final := b.FinalBlackHole()
		Expect(final.Mass).To(Equal(4.5))
		Expect(final.Position).To(Equal(r3.Vec{}))
	})

	It("distributes mass from the controls", func() {
		b, err := physics.BinaryFromControls(0.5, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.FirstMass).To(Equal(1.0))
		Expect(b.SecondMass).To(Equal(1.0))

		b, err = physics.BinaryFromControls(0.25, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.FirstMass).To(Equal(2.0))
		Expect(b.SecondMass).To(Equal(6.0))

		_, err = physics.BinaryFromControls(1, 0.5)
		Expect(err).To(MatchError(physics.ErrInvalidParameter))
		_, err = physics.BinaryFromControls(-3, 0.5)
		Expect(err).To(MatchError(physics.ErrInvalidParameter))
	})
})
