package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/blackholes/internal/physics"
)

var _ = Describe("SelectParameters", func() {
	It("puts the zero control on the innermost stable orbit", func() {
		p, err := physics.SelectParameters(0.2, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.AngularMomentum).To(BeNumerically("~", math.Sqrt(12)*0.2, 1e-12))
		Expect(p.CircularOrbitRadius).To(BeNumerically("~", 1.2, 1e-9))
		Expect(p.InnerOrbitRadius).To(BeNumerically("~", 1.2, 1e-9))
		Expect(p.CircularOrbitEnergy).To(BeNumerically("~", math.Sqrt(8.0/9.0), 1e-9))
		Expect(p.Scale).To(BeNumerically("~", 1.2/(12*0.04)*0.2, 1e-9))
	})

	It("spans six masses of angular momentum", func() {
		p, err := physics.SelectParameters(1, 1, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.AngularMomentum).To(BeNumerically("~", 9.464101615, 1e-8))
		Expect(p.CircularOrbitRadius).To(BeNumerically("~", 86.46138508, 1e-6))
		Expect(p.InnerOrbitRadius).To(BeNumerically("~", 3.10783430, 1e-6))
		Expect(p.CircularOrbitEnergy).To(BeNumerically("~", 0.99426994, 1e-7))
		Expect(p.InnerOrbitEnergy).To(BeNumerically("~", 1.91367163, 1e-7))
	})

	It("places the particle on the negative x axis", func() {
		p, err := physics.SelectParameters(1, 0.5, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Particle.InitialPosition.X).To(Equal(-p.CircularOrbitRadius))
		Expect(p.Particle.InitialPosition.Y).To(BeZero())
		Expect(p.Particle.Energy).To(Equal(p.Energy))
		Expect(p.Particle.AngularMomentum).To(Equal(p.AngularMomentum))
	})

	It("lands the barrier control on the barrier energy", func() {
		p, err := physics.SelectParameters(1, 0.5, 0.8)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Energy).To(BeNumerically("~", p.InnerOrbitEnergy, 1e-12))
	})

	It("makes energy monotone in the control", func() {
		prev := 0.0
		for i := 0; i <= 20; i++ {
			p, err := physics.SelectParameters(1, 0.7, float64(i)/20)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Energy).To(BeNumerically(">=", prev))
			prev = p.Energy
		}
	})

	It("scales with the source mass", func() {
		a, err := physics.SelectParameters(1, 0.3, 0.4)
		Expect(err).NotTo(HaveOccurred())
		b, err := physics.SelectParameters(5, 0.3, 0.4)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.CircularOrbitRadius).To(BeNumerically("~", 5*a.CircularOrbitRadius, 1e-9))
		Expect(b.Energy).To(BeNumerically("~", a.Energy, 1e-12))
		Expect(b.Kind).To(Equal(a.Kind))
	})

	It("rejects out-of-range inputs", func() {
		for _, in := range [][3]float64{
			{0, 0.5, 0.5},
			{-1, 0.5, 0.5},
			{1, -0.1, 0.5},
			{1, 1.1, 0.5},
			{1, 0.5, 2},
			{1, math.NaN(), 0.5},
		} {
			_, err := physics.SelectParameters(in[0], in[1], in[2])
			Expect(err).To(MatchError(physics.ErrInvalidParameter), "input %v", in)
		}
	})
})

var _ = Describe("CircularOrbit", func() {
	It("has no stable orbit below the saddle", func() {
		_, _, err := physics.CircularOrbit(1, physics.SaddleAngularMomentum(1)*0.99)
		Expect(err).To(MatchError(physics.ErrNoStableOrbit))
	})

	It("merges both orbits at the saddle", func() {
		outer, inner, err := physics.CircularOrbit(1, physics.SaddleAngularMomentum(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(outer).To(BeNumerically("~", 6, 1e-9))
		Expect(inner).To(BeNumerically("~", 6, 1e-9))
	})

	It("places orbits at extrema of the potential", func() {
		l := 5.0
		outer, inner, err := physics.CircularOrbit(1, l)
		Expect(err).NotTo(HaveOccurred())
		p := physics.Particle{AngularMomentum: l}
		g, err := physics.NewGeodesic(physics.Schwarzschild, p, physics.DefaultBlackHole())
		Expect(err).NotTo(HaveOccurred())
		gr := g.(physics.SchwarzschildGeodesic)
		for _, r := range []float64{outer, inner} {
			h := 1e-5 * r
			slope := (gr.EffectivePotentialSquared(r+h) - gr.EffectivePotentialSquared(r-h)) / (2 * h)
			Expect(slope).To(BeNumerically("~", 0, 1e-7))
		}
	})
})

var _ = Describe("EaseEnergy", func() {
	It("interpolates along a fifth-power curve", func() {
		Expect(physics.EaseEnergy(0, 0.9, 1.2)).To(Equal(0.9))
		Expect(physics.EaseEnergy(0.4, 0.9, 1.2)).To(BeNumerically("~", 0.9+0.3/32, 1e-12))
		Expect(physics.EaseEnergy(0.8, 0.9, 1.2)).To(BeNumerically("~", 1.2, 1e-12))
		Expect(physics.EaseEnergy(1, 0.9, 1.2)).To(BeNumerically("~", 1.4, 1e-12))
	})
})

var _ = Describe("Classify", func() {
	DescribeTable("bands of the slider grid",
		func(a, e, energy float64, want physics.Kind) {
			p, err := physics.SelectParameters(1, a, e)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Energy).To(BeNumerically("~", energy, 1e-5))
			Expect(p.Kind).To(Equal(want))
			Expect(physics.Classify(p.Energy, p.CircularOrbitEnergy, p.InnerOrbitEnergy)).To(Equal(want))
		},
		Entry("isco at rest", 0.0, 0.0, 0.942809, physics.NearCircular),
		Entry("isco at full energy", 0.0, 1.0, 0.885618, physics.NearCircular),
		Entry("wide circular", 0.5, 0.0, 0.987308, physics.NearCircular),
		Entry("slightly excited", 0.5, 0.25, 0.988480, physics.NearCircular),
		Entry("bound eccentric", 1.0, 0.25, 0.997010, physics.Elliptic),
		Entry("unbound", 0.5, 0.5, 1.024820, physics.FlyBy),
		Entry("fast fly-by", 1.0, 0.6, 1.212448, physics.FlyBy),
		Entry("on the barrier", 1.0, 0.8, 1.913672, physics.NearCatch),
		Entry("just above the barrier", 1.0, 0.9, 1.942223, physics.NearCatch),
		Entry("plunge", 1.0, 1.0, 2.827343, physics.FallIn),
	)

	It("names every kind", func() {
		Expect(physics.NearCircular.String()).To(Equal("near-circular"))
		Expect(physics.Elliptic.String()).To(Equal("elliptic"))
		Expect(physics.FlyBy.String()).To(Equal("fly-by"))
		Expect(physics.NearCatch.String()).To(Equal("near-catch"))
		Expect(physics.FallIn.String()).To(Equal("fall-in"))
		Expect(physics.Kind(42).String()).To(Equal("unknown"))
	})
})
