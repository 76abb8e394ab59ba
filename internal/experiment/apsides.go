package experiment

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/blackholes/internal/dynamo"
	"github.com/san-kum/blackholes/internal/physics"
)

// apsides watches the radius of a body step by step and records the times
// of its periapsis and apoapsis passages.
type apsides struct {
	logger log.Logger
	field  *physics.Field

	prev, prev2 float64
	seen        int

	periapses []float64
	apoapses  []float64
}

func newApsides(logger log.Logger, field *physics.Field) *apsides {
	return &apsides{logger: logger, field: field}
}

func (a *apsides) OnStep(x dynamo.State, t float64) {
	r := a.field.Radius(x)
	if a.seen >= 2 {
		switch {
		case a.prev < a.prev2 && a.prev <= r:
			a.periapses = append(a.periapses, t)
			level.Debug(a.logger).Log("msg", "periapsis passage", "t", t, "r", a.prev)
		case a.prev > a.prev2 && a.prev >= r:
			a.apoapses = append(a.apoapses, t)
			level.Debug(a.logger).Log("msg", "apoapsis passage", "t", t, "r", a.prev)
		}
	}
	a.prev2, a.prev = a.prev, r
	a.seen++
}
