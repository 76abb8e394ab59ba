package experiment

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/san-kum/blackholes/internal/dynamo"
	"github.com/san-kum/blackholes/internal/physics"
)

// Comparison is the Schwarzschild body integrated with one integrator.
type Comparison struct {
	Integrator string
	Result     *dynamo.Result
}

// Compare integrates the Schwarzschild body once per named integrator, all
// runs concurrently and with the orbit's step settings.
func (o *Orbit) Compare(ctx context.Context, names []string) ([]Comparison, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no integrators to compare", dynamo.ErrInvalidConfig)
	}

	x0 := dynamo.State(physics.InitialState(o.gr.Geodesic))
	runs := make([]dynamo.Run, len(names))
	for i, name := range names {
		integ, err := o.registry.GetIntegrator(name)
		if err != nil {
			return nil, err
		}
		s := dynamo.New(o.gr, integ)
		for _, m := range o.registry.DefaultMetrics(o.gr) {
			s.AddMetric(m)
		}
		s.AddHalter(o.gr.CaptureHalter())
		runs[i] = dynamo.Run{Sim: s, X0: x0}
	}

	results, err := dynamo.NewEnsemble(runs...).Run(ctx, o.simConfig())
	if err != nil {
		return nil, err
	}

	out := make([]Comparison, len(names))
	for i, name := range names {
		out[i] = Comparison{Integrator: name, Result: results[i]}
		level.Debug(o.logger).Log("msg", "comparison finished", "integrator", name, "steps", results[i].StepsTaken)
	}
	return out, nil
}
