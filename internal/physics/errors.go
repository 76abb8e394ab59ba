package physics

import "errors"

var (
	// ErrInvalidParameter indicates a non-positive mass or an out-of-range control.
	ErrInvalidParameter = errors.New("physics: invalid parameter")

	// ErrNoStableOrbit indicates an angular momentum below the saddle value,
	// where no circular orbit exists.
	ErrNoStableOrbit = errors.New("physics: no stable circular orbit")

	// ErrTemporalSingularity indicates an inspiral query at or after coalescence.
	ErrTemporalSingularity = errors.New("physics: time to coalescence must be positive")
)
