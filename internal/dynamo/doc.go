// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Halter]: terminal condition that ends a run early
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	field := physics.NewField(geodesic)
//	sim := dynamo.New(field, integrators.NewRK4())
//	result, _ := sim.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe: integrators keep scratch buffers.
// For parallel runs build one Simulator per goroutine, or use [Ensemble].
package dynamo
