package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
	halters    []Halter
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		halters:    make([]Halter, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) AddHalter(h Halter)     { s.halters = append(s.halters, h) }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if dim := s.dyn.StateDim(); dim != len(x0) {
		return nil, fmt.Errorf("%w: system wants %d, got %d", ErrDimensionMismatch, dim, len(x0))
	}

	steps := int(math.Ceil(cfg.Duration/cfg.Dt - 1e-9))
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt
	observed := false

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; t < cfg.Duration-1e-12; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}
		observed = true
		if s.halted(x, t) {
			result.Halted = true
			result.HaltTime = t
			break
		}

		if remaining := cfg.Duration - t; dt > remaining {
			dt = remaining
		}

		var newX State
		var stepErr error

		if cfg.Adaptive {
			var used, next float64
			newX, used, next, stepErr = s.adaptiveStep(x, t, dt, cfg)
			if stepErr != nil {
				result.Errors = append(result.Errors, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: stepErr})
				break
			}
			t += used
			dt = math.Max(cfg.MinDt, math.Min(next, cfg.MaxDt))
		} else {
			newX = s.integrator.Step(s.dyn, x, t, dt)
			t += dt
		}

		if cfg.ValidateState && !newX.IsValid() {
			result.Errors = append(result.Errors, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrInvalidState})
			break
		}

		x = newX
		observed = false
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	if !result.Halted && s.halted(x, t) {
		result.Halted = true
		result.HaltTime = t
	}

	for _, m := range s.metrics {
		m.Observe(x, t)
		result.Metrics[m.Name()] = m.Value()
	}
	if !observed {
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}
	}

	return result, nil
}

func (s *Simulator) halted(x State, t float64) bool {
	for _, h := range s.halters {
		if h.Halt(x, t) {
			return true
		}
	}
	return false
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !finitePositive(cfg.Dt) {
		return fmt.Errorf("%w: dt must be positive and finite, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if !finitePositive(cfg.Duration) {
		return fmt.Errorf("%w: duration must be positive and finite, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.Adaptive && !finitePositive(cfg.Tolerance) {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrInvalidConfig)
	}
	return nil
}

// adaptiveStep returns the accepted state, the timestep actually used and
// the timestep to try next. Integrators without their own error estimate
// fall back to step doubling.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(s.dyn, x, t, dt, cfg.Tolerance)
	}

	for {
		x1 := s.integrator.Step(s.dyn, x, t, dt)
		xHalf := s.integrator.Step(s.dyn, x, t, dt/2)
		x2 := s.integrator.Step(s.dyn, xHalf, t+dt/2, dt/2)

		errNorm := x1.Sub(x2).Norm()
		if errNorm <= cfg.Tolerance {
			next := dt
			if errNorm < cfg.Tolerance/10 {
				next = dt * 2
			}
			return x2, dt, next, nil
		}
		if dt/2 < cfg.MinDt {
			return nil, dt, dt, ErrStepTooSmall
		}
		dt /= 2
	}
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
