// Package analysis measures integrated orbits.
//
//   - [MeasurePrecession]: periapsis advance per orbit
//   - [PowerSpectrum], [DominantFrequency]: spectra of sampled signals
//   - [TrackPortrait], [RadialPortrait]: planar and (r, dr/dt) portraits
//
// A Schwarzschild orbit precesses while its Newtonian counterpart closes:
//
//	p, err := analysis.MeasurePrecession(res.Times, xs, ys)
//	if err == nil && p.PerOrbit > 0 {
//	    // periapsis advances in the direction of motion
//	}
package analysis
