package physics

// Kind is the qualitative shape of a trajectory.
type Kind int

const (
	NearCircular Kind = iota
	Elliptic
	FlyBy
	NearCatch
	FallIn
)

var kindNames = [...]string{
	NearCircular: "near-circular",
	Elliptic:     "elliptic",
	FlyBy:        "fly-by",
	NearCatch:    "near-catch",
	FallIn:       "fall-in",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Classify places energy in the bands around the circular-orbit energy, the
// escape energy 1 and the barrier-top energy innerEnergy. Bands are tested
// in order, so overlapping bands resolve to the earlier kind.
func Classify(energy, circularEnergy, innerEnergy float64) Kind {
	catchBand := (innerEnergy - 1) / 6
	switch {
	case energy >= 0 && energy <= circularEnergy+(1-circularEnergy)/5:
		return NearCircular
	case energy >= circularEnergy+(1-circularEnergy)/5 && energy <= 1:
		return Elliptic
	case energy >= 1 && energy <= innerEnergy-catchBand:
		return FlyBy
	case energy >= innerEnergy-catchBand && energy <= innerEnergy+catchBand:
		return NearCatch
	}
	return FallIn
}
