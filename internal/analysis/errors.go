package analysis

import "errors"

// ErrInsufficientData indicates a series too short to analyse.
var ErrInsufficientData = errors.New("analysis: insufficient data")
