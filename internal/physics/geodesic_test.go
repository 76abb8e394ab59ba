package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/blackholes/internal/physics"
)

var _ = Describe("BlackHole", func() {
	It("has a horizon at twice its mass", func() {
		for _, m := range []float64{0.1, 1, 2.5, 40} {
			bh, err := physics.NewBlackHole(m, r3.Vec{})
			Expect(err).NotTo(HaveOccurred())
			Expect(bh.SchwarzschildRadius()).To(Equal(2 * m))
			Expect(bh.CaptureRadius()).To(BeNumerically("~", 3*m, 1e-12))
		}
	})

	It("rejects non-positive and non-finite masses", func() {
		for _, m := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			_, err := physics.NewBlackHole(m, r3.Vec{})
			Expect(err).To(MatchError(physics.ErrInvalidParameter))
		}
	})

	It("captures particles inside the photon sphere", func() {
		bh := physics.DefaultBlackHole()
		Expect(bh.Captures(2.9)).To(BeTrue())
		Expect(bh.Captures(3)).To(BeTrue())
		Expect(bh.Captures(3.1)).To(BeFalse())
	})
})

var _ = Describe("Geodesic", func() {
	var (
		params physics.Parameters
		gr     physics.SchwarzschildGeodesic
		newton physics.NewtonGeodesic
	)

	BeforeEach(func() {
		var err error
		params, err = physics.SelectParameters(1, 0.5, 0.25)
		Expect(err).NotTo(HaveOccurred())
		gr, newton = params.Geodesics()
	})

	It("selects the variant at construction", func() {
		g, err := physics.NewGeodesic(physics.Schwarzschild, params.Particle, params.Source)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Category()).To(Equal(physics.SchwarzschildCategory))
		Expect(g.Theory()).To(Equal(physics.Schwarzschild))

		g, err = physics.NewGeodesic(physics.Newtonian, params.Particle, params.Source)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Category()).To(Equal(physics.NewtonCategory))

		_, err = physics.NewGeodesic(physics.Theory(7), params.Particle, params.Source)
		Expect(err).To(MatchError(physics.ErrInvalidParameter))

		_, err = physics.NewGeodesic(physics.Newtonian, params.Particle, physics.BlackHole{})
		Expect(err).To(MatchError(physics.ErrInvalidParameter))
	})

	It("parses theory names", func() {
		for name, want := range map[string]physics.Theory{
			"schwarzschild": physics.Schwarzschild,
			"GR":            physics.Schwarzschild,
			"newton":        physics.Newtonian,
			"Newtonian":     physics.Newtonian,
		} {
			got, err := physics.ParseTheory(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
			Expect(physics.ParseTheory(got.String())).To(Equal(want))
		}
		_, err := physics.ParseTheory("mond")
		Expect(err).To(MatchError(physics.ErrInvalidParameter))
	})

	It("keeps the field categories disjoint", func() {
		Expect(physics.SchwarzschildCategory & physics.NewtonCategory).To(BeZero())
	})

	It("conserves angular momentum in the angular velocity", func() {
		l := params.AngularMomentum
		for _, r := range []float64{3.5, 10, 38.5, 200} {
			Expect(r * r * gr.AngularVelocity(r)).To(BeNumerically("~", l, 1e-9))
			Expect(r * r * newton.AngularVelocity(r)).To(BeNumerically("~", l, 1e-9))
		}
	})

	It("starts with the selected angular momentum", func() {
		for _, g := range []physics.Geodesic{gr, newton} {
			p := g.Particle().InitialPosition
			v := g.InitialVelocity()
			Expect(v.Z).To(BeZero())
			Expect(r3.Cross(p, v).Z).To(BeNumerically("~", params.AngularMomentum, 1e-9))
		}
	})

	It("starts moving inward or tangentially", func() {
		for _, g := range []physics.Geodesic{gr, newton} {
			// the particle sits on the negative x axis, so inward is +x
			Expect(g.InitialVelocity().X).To(BeNumerically(">=", 0))
		}
	})

	It("has zero radial velocity in the forbidden region", func() {
		// far outside the outer turning point of a bound orbit
		Expect(gr.RadialVelocity(1e4)).To(Equal(0.0))
		Expect(newton.RadialVelocity(1e-3)).To(Equal(0.0))

		// a particle sitting exactly at the potential minimum has E == V
		r := params.CircularOrbitRadius
		circ := physics.Particle{
			InitialPosition: r3.Vec{X: -r},
			Energy:          params.CircularOrbitEnergy,
			AngularMomentum: params.AngularMomentum,
		}
		g, err := physics.NewGeodesic(physics.Schwarzschild, circ, params.Source)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.RadialVelocity(r * 2)).To(Equal(0.0))
	})

	It("has inward radial velocity where motion is allowed", func() {
		Expect(gr.RadialVelocity(params.CircularOrbitRadius * 0.95)).To(BeNumerically("<", 0))
	})

	It("has a minimum of the potential at the stable circular orbit", func() {
		r := params.CircularOrbitRadius
		e := params.CircularOrbitEnergy
		Expect(gr.EffectivePotentialSquared(r)).To(BeNumerically("~", e*e, 1e-12))
		Expect(gr.EffectivePotential(r)).To(BeNumerically("<", gr.EffectivePotential(r*0.9)))
		Expect(gr.EffectivePotential(r)).To(BeNumerically("<", gr.EffectivePotential(r*1.1)))
	})

	It("has a signed potential inside the horizon", func() {
		Expect(gr.EffectivePotential(1)).To(BeNumerically("<", 0))
		Expect(gr.EffectivePotentialSquared(2)).To(BeNumerically("~", 0, 1e-15))
	})

	It("gives the Newtonian potential with rest energy", func() {
		r := params.NewtonianOrbitRadius
		l := params.AngularMomentum
		Expect(newton.EffectivePotential(r)).To(BeNumerically("~", 1-1/(2*l*l), 1e-12))
		Expect(params.NewtonianOrbitEnergy).To(BeNumerically("~", newton.EffectivePotential(r), 1e-12))
	})

	It("adds the relativistic correction to the radial force", func() {
		r := 10.0
		l := params.AngularMomentum
		Expect(newton.EffectiveRadialForce(r)).To(BeNumerically("~", -1/(r*r), 1e-15))
		want := -1/(r*r) - 3*(l*l)/(r*r*r*r)
		Expect(gr.EffectiveRadialForce(r)).To(BeNumerically("~", want, 1e-12))
	})

	It("reports the crossing time of the initial radius", func() {
		ts := physics.SimulationTimescale(newton)
		speed := r3.Norm(newton.InitialVelocity())
		Expect(ts * speed).To(BeNumerically("~", params.CircularOrbitRadius, 1e-9))

		rest := physics.Particle{InitialPosition: r3.Vec{X: -5}}
		g, err := physics.NewGeodesic(physics.Newtonian, rest, physics.DefaultBlackHole())
		Expect(err).NotTo(HaveOccurred())
		Expect(physics.SimulationTimescale(g)).To(BeZero())
	})

	It("lays out the initial state as position then velocity", func() {
		x := physics.InitialState(gr)
		v := gr.InitialVelocity()
		Expect(x).To(HaveLen(4))
		Expect(x[0]).To(Equal(-params.CircularOrbitRadius))
		Expect(x[1]).To(BeZero())
		Expect(x[2]).To(Equal(v.X))
		Expect(x[3]).To(Equal(v.Y))
	})
})
