// Package physics provides closed-form models of test particles and binaries
// around Schwarzschild black holes, in geometrized units (G = c = 1).
//
//   - [BlackHole]: a spherically symmetric mass source
//   - [Geodesic]: the trajectory of a test particle, implemented by
//     [SchwarzschildGeodesic] (general relativity) and [NewtonGeodesic]
//   - [SelectParameters]: maps two normalized controls to initial conditions
//     spanning circular orbits to fall-in
//   - [Field]: adapts a geodesic's effective radial force to [dynamo.System]
//     so an integrator can trace the trajectory
//   - [BinarySystem]: the late inspiral of two black holes as a function of
//     time to coalescence
//
// All values are immutable and every query is a pure function of its
// arguments, so models may be shared freely between goroutines.
//
// # Example
//
//	params, _ := physics.SelectParameters(0.2, 0.5, 0.3)
//	gr, newton := params.Geodesics()
//	v0 := gr.InitialVelocity()
//	field := physics.NewField(newton)
package physics
