package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/blackholes/internal/config"
	"github.com/san-kum/blackholes/internal/experiment"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Kind is "orbit" or "binary". The step starts from
// the named preset, or the defaults, and any field set here overrides it.
type ScenarioStep struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Preset string `yaml:"preset"`

	Mass            *float64 `yaml:"mass"`
	AngularMomentum *float64 `yaml:"angular_momentum"`
	Energy          *float64 `yaml:"energy"`
	Integrator      string   `yaml:"integrator"`
	Dt              float64  `yaml:"dt"`
	Duration        float64  `yaml:"duration"`

	FirstMass  *float64 `yaml:"first_mass"`
	SecondMass *float64 `yaml:"second_mass"`
	FPS        float64  `yaml:"fps"`
}

// StepResult holds the outcome of one step; Orbit or Frames is set
// depending on the step kind.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Orbit  *experiment.OrbitResult
	Frames []experiment.Frame
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Resolve builds the validated config for the step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Kind, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets(s.Kind))
		}
	}

	setIf(&cfg.Orbit.Mass, s.Mass)
	setIf(&cfg.Orbit.AngularMomentum, s.AngularMomentum)
	setIf(&cfg.Orbit.Energy, s.Energy)
	if s.Integrator != "" {
		cfg.Orbit.Integrator = s.Integrator
	}
	if s.Dt > 0 {
		cfg.Orbit.Dt = s.Dt
	}
	if s.Duration > 0 {
		cfg.Orbit.Duration = s.Duration
		cfg.Binary.Duration = s.Duration
	}
	setIf(&cfg.Binary.FirstMass, s.FirstMass)
	setIf(&cfg.Binary.SecondMass, s.SecondMass)
	if s.FPS > 0 {
		cfg.Binary.FPS = s.FPS
	}

	return cfg, cfg.Validate()
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the results so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "scenario", scenario.Name)
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		level.Info(logger).Log("msg", "running step", "step", i+1, "of", len(scenario.Steps), "name", step.Name, "kind", step.Kind)

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res := StepResult{Step: step, Config: cfg}

		switch step.Kind {
		case "orbit":
			o, err := experiment.NewOrbit(cfg.Orbit.Experiment(), registry, logger)
			if err != nil {
				return results, fmt.Errorf("step %d setup: %w", i+1, err)
			}
			if res.Orbit, err = o.Run(ctx); err != nil {
				return results, fmt.Errorf("step %d run: %w", i+1, err)
			}
		case "binary":
			tl, err := cfg.Binary.Timeline()
			if err != nil {
				return results, fmt.Errorf("step %d setup: %w", i+1, err)
			}
			if res.Frames, err = tl.Frames(cfg.Binary.FPS); err != nil {
				return results, fmt.Errorf("step %d run: %w", i+1, err)
			}
		default:
			return results, fmt.Errorf("step %d: unknown kind %q", i+1, step.Kind)
		}

		results = append(results, res)
	}

	return results, nil
}
