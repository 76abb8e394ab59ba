package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/blackholes/internal/dynamo"
	"github.com/san-kum/blackholes/internal/physics"
)

var _ = Describe("Field", func() {
	var (
		params physics.Parameters
		gr     *physics.Field
		newton *physics.Field
	)

	BeforeEach(func() {
		var err error
		params, err = physics.SelectParameters(1, 0.5, 0)
		Expect(err).NotTo(HaveOccurred())
		g, n := params.Geodesics()
		gr, newton = physics.NewField(g), physics.NewField(n)
	})

	It("pulls toward the source", func() {
		a := newton.Acceleration(r3.Vec{X: -10})
		Expect(a.X).To(BeNumerically("~", 0.01, 1e-12))
		Expect(a.Y).To(BeNumerically("~", 0, 1e-15))

		a = gr.Acceleration(r3.Vec{Y: 10})
		Expect(a.X).To(BeNumerically("~", 0, 1e-15))
		Expect(a.Y).To(BeNumerically("<", -0.01))
	})

	It("derives velocity and acceleration", func() {
		x := dynamo.State{-10, 0, 0.1, 0.2}
		dx := newton.Derive(x, 0)
		Expect(dx).To(HaveLen(4))
		Expect(dx[0]).To(Equal(0.1))
		Expect(dx[1]).To(Equal(0.2))
		Expect(dx[2]).To(BeNumerically("~", 0.01, 1e-12))
	})

	It("measures the state about the source", func() {
		x := dynamo.State(physics.InitialState(gr.Geodesic))
		Expect(gr.Radius(x)).To(BeNumerically("~", params.CircularOrbitRadius, 1e-9))
		Expect(gr.AngularMomentum(x)).To(BeNumerically("~", params.AngularMomentum, 1e-9))
		Expect(gr.Captured(x)).To(BeFalse())
		Expect(gr.CaptureHalter().Halt(dynamo.State{2, 0, 0, 0}, 0)).To(BeTrue())
		Expect(physics.Speed(dynamo.State{0, 0, 3, 4})).To(Equal(5.0))
	})

	It("applies only the fields matching a body's mask", func() {
		set := physics.NewFieldSet(gr)
		set.Add(newton)
		pos := r3.Vec{X: 20}

		onlyGR := set.Acceleration(physics.SchwarzschildCategory, pos)
		onlyNewton := set.Acceleration(physics.NewtonCategory, pos)
		both := set.Acceleration(physics.SchwarzschildCategory|physics.NewtonCategory, pos)

		Expect(onlyGR).To(Equal(gr.Acceleration(pos)))
		Expect(onlyNewton).To(Equal(newton.Acceleration(pos)))
		Expect(both.X).To(BeNumerically("~", onlyGR.X+onlyNewton.X, 1e-15))
		Expect(set.Acceleration(1<<5, pos)).To(Equal(r3.Vec{}))

		body := set.Body(physics.NewtonCategory)
		Expect(body.StateDim()).To(Equal(4))
		dx := body.Derive(dynamo.State{20, 0, 0, 1}, 0)
		Expect(dx[2]).To(Equal(onlyNewton.X))
	})
})

var _ = Describe("Field energy", func() {
	It("is the gradient potential of the radial force", func() {
		p, err := physics.SelectParameters(1, 0.8, 0.3)
		Expect(err).NotTo(HaveOccurred())
		g, n := p.Geodesics()
		for _, f := range []*physics.Field{physics.NewField(g), physics.NewField(n)} {
			r, h := 12.0, 1e-5
			u := func(r float64) float64 { return f.Energy(dynamo.State{r, 0, 0, 0}) }
			slope := (u(r+h) - u(r-h)) / (2 * h)
			Expect(-slope).To(BeNumerically("~", f.Geodesic.EffectiveRadialForce(r), 1e-8))
			Expect(f.Energy(dynamo.State{r, 0, 3, 4}) - u(r)).To(BeNumerically("~", 12.5, 1e-12))
		}
	})

	It("implements the conserved-energy interface", func() {
		var _ dynamo.Hamiltonian = (*physics.Field)(nil)
	})
})
