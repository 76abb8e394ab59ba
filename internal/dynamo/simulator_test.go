package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

type testDynamics struct{}

func (d *testDynamics) Derive(x State, t float64) State {
	return State{-x[0]}
}

func (d *testDynamics) StateDim() int { return 1 }

type testIntegrator struct{}

func (i *testIntegrator) Step(dyn System, x State, t float64, dt float64) State {
	dx := dyn.Derive(x, t)
	return State{x[0] + dt*dx[0]}
}

func TestSimulatorRun(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	cfg := Config{
		Dt:       0.1,
		Duration: 1.0,
	}

	result, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}

	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}

	finalState := result.Final()[0]
	expected := math.Exp(-1.0)
	if math.Abs(finalState-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, finalState)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
		{"nan dt", Config{Dt: math.NaN(), Duration: 1.0}},
		{"infinite dt", Config{Dt: math.Inf(1), Duration: 1.0}},
		{"nan duration", Config{Dt: 0.1, Duration: math.NaN()}},
		{"infinite duration", Config{Dt: 0.1, Duration: math.Inf(1)}},
		{"adaptive without tolerance", Config{Dt: 0.1, Duration: 1.0, Adaptive: true}},
		{"adaptive nan tolerance", Config{Dt: 0.1, Duration: 1.0, Adaptive: true, Tolerance: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), State{1.0}, tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	_, err := sim.Run(context.Background(), State{1.0, 2.0}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (m *testMetric) Name() string { return "test" }
func (m *testMetric) Observe(x State, time float64) {
	m.count++
	m.sum += x[0]
}
func (m *testMetric) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
func (m *testMetric) Reset() {
	m.count = 0
	m.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	metric := &testMetric{}
	sim.AddMetric(metric)

	result, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}

	// every recorded state is observed once
	if metric.count != len(result.States) {
		t.Errorf("expected %d observations, got %d", len(result.States), metric.count)
	}
}

func TestSimulatorHalter(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	sim.AddHalter(HaltFunc(func(x State, _ float64) bool { return x[0] < 0.5 }))

	result, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.01, Duration: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Halted {
		t.Fatal("expected run to halt")
	}
	if math.Abs(result.HaltTime-math.Ln2) > 0.05 {
		t.Errorf("expected halt near ln 2, got %.4f", result.HaltTime)
	}
	if result.Final()[0] >= 0.5 {
		t.Errorf("expected final state below threshold, got %f", result.Final()[0])
	}
}

type blowup struct{}

func (b *blowup) Derive(x State, t float64) State { return State{math.Inf(1)} }
func (b *blowup) StateDim() int                   { return 1 }

func TestSimulatorInvalidState(t *testing.T) {
	sim := New(&blowup{}, &testIntegrator{})

	cfg := DefaultConfig()
	result, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
	var simErr *SimulationError
	if !errors.As(result.Errors[0], &simErr) || simErr.Step != 0 {
		t.Errorf("expected SimulationError at step 0, got %v", result.Errors[0])
	}
}

func TestSimulatorAdaptiveFallback(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	cfg := DefaultConfig()
	cfg.Adaptive = true
	cfg.Tolerance = 1e-4
	cfg.Duration = 1.0

	result, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := result.Times[len(result.Times)-1]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected run to end at t=1, got %f", got)
	}
	if math.Abs(result.Final()[0]-math.Exp(-1)) > 0.01 {
		t.Errorf("expected ~%.4f, got %.4f", math.Exp(-1), result.Final()[0])
	}
}

func TestSimulatorCanceled(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, State{1.0}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestResultAt(t *testing.T) {
	r := &Result{
		States: []State{{0, 10}, {1, 20}, {3, 40}},
		Times:  []float64{0, 1, 2},
	}

	tests := []struct {
		t    float64
		want State
	}{
		{-1, State{0, 10}},
		{0.5, State{0.5, 15}},
		{1, State{1, 20}},
		{1.5, State{2, 30}},
		{5, State{3, 40}},
	}

	for _, tt := range tests {
		got := r.At(tt.t)
		for i := range tt.want {
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("At(%v) = %v, want %v", tt.t, got, tt.want)
				break
			}
		}
	}

	if (&Result{}).At(1) != nil {
		t.Error("expected nil for empty result")
	}
}

type recorder struct{ times []float64 }

func (r *recorder) OnStep(x State, t float64) { r.times = append(r.times, t) }

func TestSimulatorObserver(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	rec := &recorder{}
	sim.AddObserver(rec)

	result, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(rec.times) != len(result.Times) {
		t.Fatalf("expected every state observed once, got %d of %d", len(rec.times), len(result.Times))
	}
	if last := rec.times[len(rec.times)-1]; math.Abs(last-1.0) > 1e-9 {
		t.Errorf("expected final observation at 1.0, got %f", last)
	}
}
