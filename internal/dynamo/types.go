package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is a first-order ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	// StepAdaptive advances x by at most dt, returning the accepted state,
	// the timestep actually used and a suggested next timestep.
	StepAdaptive(dyn System, x State, t, dt, tol float64) (next State, used, suggested float64, err error)
}

// Hamiltonian is implemented by systems with a conserved energy.
type Hamiltonian interface {
	Energy(x State) float64
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Halter ends a run early once the state reaches a terminal condition,
// e.g. a particle crossing a capture radius.
type Halter interface {
	Halt(x State, t float64) bool
}

// HaltFunc adapts a plain function to Halter.
type HaltFunc func(x State, t float64) bool

func (f HaltFunc) Halt(x State, t float64) bool { return f(x, t) }

type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

type Result struct {
	States     []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Halted     bool
	HaltTime   float64
	Errors     []error
}

// Final returns the last recorded state, or nil for an empty result.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// At linearly interpolates the recorded trajectory at time t. Times outside
// the recorded range clamp to the first or last state.
func (r *Result) At(t float64) State {
	n := len(r.Times)
	if n == 0 {
		return nil
	}
	if t <= r.Times[0] {
		return r.States[0].Clone()
	}
	if t >= r.Times[n-1] {
		return r.States[n-1].Clone()
	}

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if r.Times[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}

	span := r.Times[hi] - r.Times[lo]
	if span <= 0 {
		return r.States[lo].Clone()
	}
	frac := (t - r.Times[lo]) / span
	a, b := r.States[lo], r.States[hi]
	out := make(State, len(a))
	for i := range a {
		out[i] = a[i] + frac*(b[i]-a[i])
	}
	return out
}
