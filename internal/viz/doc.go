// Package viz renders orbits, sweeps and inspirals for the terminal.
//
//   - [Canvas]: braille dot canvas over a square window of world coordinates
//   - [OrbitView], [SweepMap], [InspiralView]: scene renderers
//   - [Plot]: asciigraph line charts in the current theme
//
// Colors come from the current [Theme]; see [SetTheme].
package viz
