package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/blackholes/internal/dynamo"
	"github.com/san-kum/blackholes/internal/physics"
)

// OrbitConfig describes one orbit experiment. Dt and Duration are measured
// in units of the Newtonian simulation timescale, so the same values give
// comparable runs for any choice of controls.
type OrbitConfig struct {
	Mass                     float64
	AngularMomentumMagnitude float64
	EnergyMagnitude          float64
	Integrator               string
	Dt                       float64
	Duration                 float64
	Adaptive                 bool
	Tolerance                float64
}

func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		Mass:                     1,
		AngularMomentumMagnitude: 0.5,
		EnergyMagnitude:          0.25,
		Integrator:               "rk4",
		Dt:                       0.01,
		Duration:                 40,
		Tolerance:                1e-9,
	}
}

// Body is the integrated trajectory of the particle under one theory.
type Body struct {
	Theory      physics.Theory
	Field       *physics.Field
	Result      *dynamo.Result
	Captured    bool
	CaptureTime float64
	// Periapses and Apoapses are the times of the radial turning points,
	// to within one step.
	Periapses []float64
	Apoapses  []float64
}

// At interpolates position and velocity at time t. Times past the end of
// the run, including after capture, clamp to the last recorded state.
func (b *Body) At(t float64) (pos, vel r3.Vec) {
	x := b.Result.At(t)
	if x == nil {
		return r3.Vec{}, r3.Vec{}
	}
	return r3.Vec{X: x[0], Y: x[1]}, r3.Vec{X: x[2], Y: x[3]}
}

// Path returns the recorded positions as parallel coordinate slices.
func (b *Body) Path() (xs, ys []float64) {
	xs = make([]float64, len(b.Result.States))
	ys = make([]float64, len(b.Result.States))
	for i, x := range b.Result.States {
		xs[i], ys[i] = x[0], x[1]
	}
	return xs, ys
}

type OrbitResult struct {
	Parameters physics.Parameters
	// Timescale converts the configured Dt and Duration to geometrized time.
	Timescale     float64
	Schwarzschild *Body
	Newtonian     *Body
}

// Bodies returns both bodies, Schwarzschild first.
func (r *OrbitResult) Bodies() []*Body {
	return []*Body{r.Schwarzschild, r.Newtonian}
}

// Orbit integrates the selected particle under both theories side by side.
// Both bodies share one FieldSet and each feels only its own theory's field.
type Orbit struct {
	cfg       OrbitConfig
	registry  *Registry
	logger    log.Logger
	params    physics.Parameters
	timescale float64
	fields    *physics.FieldSet
	gr        *physics.Field
	newton    *physics.Field
}

func NewOrbit(cfg OrbitConfig, registry *Registry, logger log.Logger) (*Orbit, error) {
	if !finitePositive(cfg.Dt) || !finitePositive(cfg.Duration) {
		return nil, fmt.Errorf("%w: dt and duration must be positive", dynamo.ErrInvalidConfig)
	}
	if _, err := registry.GetIntegrator(cfg.Integrator); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	params, err := physics.SelectParameters(cfg.Mass, cfg.AngularMomentumMagnitude, cfg.EnergyMagnitude)
	if err != nil {
		return nil, err
	}
	g, n := params.Geodesics()

	timescale := physics.SimulationTimescale(n)
	if timescale == 0 || math.IsInf(timescale, 0) {
		timescale = 1
	}

	o := &Orbit{
		cfg:       cfg,
		registry:  registry,
		logger:    log.With(logger, "component", "orbit"),
		params:    params,
		timescale: timescale,
		gr:        physics.NewField(g),
		newton:    physics.NewField(n),
	}
	o.fields = physics.NewFieldSet(o.gr, o.newton)

	level.Debug(o.logger).Log(
		"msg", "parameters selected",
		"kind", params.Kind,
		"angular_momentum", params.AngularMomentum,
		"energy", params.Energy,
		"radius", params.CircularOrbitRadius,
		"timescale", timescale,
	)
	return o, nil
}

func (o *Orbit) Parameters() physics.Parameters { return o.params }
func (o *Orbit) Timescale() float64             { return o.timescale }

func (o *Orbit) simConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Dt = o.cfg.Dt * o.timescale
	cfg.Duration = o.cfg.Duration * o.timescale
	cfg.MaxDt = 10 * cfg.Dt
	cfg.MinDt = 1e-9 * cfg.Dt
	cfg.Adaptive = o.cfg.Adaptive
	if o.cfg.Tolerance > 0 {
		cfg.Tolerance = o.cfg.Tolerance
	}
	return cfg
}

// Run integrates both bodies concurrently. The Schwarzschild body stops when
// it crosses the capture radius; either body stops on a non-finite state.
func (o *Orbit) Run(ctx context.Context) (*OrbitResult, error) {
	res := &OrbitResult{
		Parameters:    o.params,
		Timescale:     o.timescale,
		Schwarzschild: &Body{Theory: physics.Schwarzschild, Field: o.gr},
		Newtonian:     &Body{Theory: physics.Newtonian, Field: o.newton},
	}
	cfg := o.simConfig()

	g, ctx := errgroup.WithContext(ctx)
	for _, body := range res.Bodies() {
		g.Go(func() error {
			return o.runBody(ctx, body, cfg)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (o *Orbit) runBody(ctx context.Context, body *Body, cfg dynamo.Config) error {
	integ, err := o.registry.GetIntegrator(o.cfg.Integrator)
	if err != nil {
		return err
	}

	s := dynamo.New(o.fields.Body(body.Field.Geodesic.Category()), integ)
	for _, m := range o.registry.DefaultMetrics(body.Field) {
		s.AddMetric(m)
	}
	if body.Theory == physics.Schwarzschild {
		s.AddHalter(body.Field.CaptureHalter())
	}
	logger := log.With(o.logger, "theory", body.Theory)
	aps := newApsides(logger, body.Field)
	s.AddObserver(aps)

	result, err := s.Run(ctx, dynamo.State(physics.InitialState(body.Field.Geodesic)), cfg)
	if err != nil {
		return fmt.Errorf("%s body: %w", body.Theory, err)
	}
	body.Result = result
	body.Captured = result.Halted
	body.CaptureTime = result.HaltTime
	body.Periapses, body.Apoapses = aps.periapses, aps.apoapses

	for _, e := range result.Errors {
		level.Warn(logger).Log("msg", "integration stopped early", "err", e)
	}
	if body.Captured {
		level.Info(logger).Log("msg", "particle captured", "t", body.CaptureTime)
	}
	level.Debug(logger).Log("msg", "body finished", "steps", result.StepsTaken)
	return nil
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
