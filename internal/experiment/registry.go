package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/blackholes/internal/dynamo"
	"github.com/san-kum/blackholes/internal/integrators"
	"github.com/san-kum/blackholes/internal/metrics"
	"github.com/san-kum/blackholes/internal/physics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	theories    map[string]physics.Theory
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		theories:    make(map[string]physics.Theory),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }
	r.integrators["leapfrog"] = func() dynamo.Integrator { return integrators.NewLeapfrog() }

	for _, th := range []physics.Theory{physics.Schwarzschild, physics.Newtonian} {
		r.theories[th.String()] = th
	}

	return r
}

// GetIntegrator returns a fresh integrator. Integrators keep scratch space
// and must not be shared between concurrent runs.
func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) GetTheory(name string) (physics.Theory, error) {
	if th, ok := r.theories[name]; ok {
		return th, nil
	}
	th, err := physics.ParseTheory(name)
	if err != nil {
		return 0, fmt.Errorf("%w (available: %v)", err, r.ListTheories())
	}
	return th, nil
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) ListTheories() []string {
	return sortedKeys(r.theories)
}

// DefaultMetrics are the metrics recorded for a body moving in field.
func (r *Registry) DefaultMetrics(field *physics.Field) []dynamo.Metric {
	ms := []dynamo.Metric{metrics.NewEnergyDrift(field)}
	return append(ms, metrics.Orbit(field.Geodesic.Source().Position)...)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
