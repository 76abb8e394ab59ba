package experiment

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/blackholes/internal/dynamo"
	"github.com/san-kum/blackholes/internal/physics"
)

const (
	// audioReferenceFrequency and audioReferencePitch map the radiation
	// frequency onto an audible pitch: f / 0.07 * 200 Hz.
	audioReferenceFrequency = 0.07
	audioReferencePitch     = 200.0
)

// Timeline plays an inspiral back in wall-clock time. Duration seconds of
// playback cover Duration/Timescale units of time to coalescence, so a
// smaller Timescale moves faster.
type Timeline struct {
	Binary    physics.BinarySystem
	Duration  time.Duration
	Timescale float64
}

func NewTimeline(b physics.BinarySystem) Timeline {
	return Timeline{Binary: b, Duration: 20 * time.Second, Timescale: 0.05}
}

func (tl Timeline) Validate() error {
	if tl.Duration <= 0 {
		return fmt.Errorf("%w: timeline duration must be positive, got %s", dynamo.ErrInvalidConfig, tl.Duration)
	}
	if tl.Timescale <= 0 || math.IsNaN(tl.Timescale) || math.IsInf(tl.Timescale, 0) {
		return fmt.Errorf("%w: timescale must be positive, got %g", dynamo.ErrInvalidConfig, tl.Timescale)
	}
	return nil
}

// InitialTime is the time to coalescence when playback starts.
func (tl Timeline) InitialTime() float64 {
	return tl.Duration.Seconds() / tl.Timescale
}

// Align returns the timeline with the binary's initial angle chosen so
// that both components start on the x axis when playback begins.
func (tl Timeline) Align() (Timeline, error) {
	if err := tl.Validate(); err != nil {
		return Timeline{}, err
	}
	b, err := tl.Binary.AlignedAt(tl.InitialTime())
	if err != nil {
		return Timeline{}, err
	}
	tl.Binary = b
	return tl, nil
}

// TimeToCoalescence converts elapsed playback time to time to coalescence.
func (tl Timeline) TimeToCoalescence(elapsed time.Duration) float64 {
	return (tl.Duration - elapsed).Seconds() / tl.Timescale
}

// Frame is the binary as displayed at one instant of playback. Positions
// are normalised so the wider initial orbit has radius 1.
type Frame struct {
	Elapsed           time.Duration
	TimeToCoalescence float64
	Merged            bool

	First  r3.Vec
	Second r3.Vec
	// Final is set once the components have merged.
	Final physics.BlackHole

	Frequency      float64
	AudioFrequency float64
	Distance       float64
	Angle          float64
}

// AudioFrequency maps a radiation frequency to a pitch in Hz.
func AudioFrequency(f float64) float64 {
	return f / audioReferenceFrequency * audioReferencePitch
}

func (tl Timeline) normalization() (float64, error) {
	t0 := tl.InitialTime()
	r1, err := tl.Binary.FirstRadius(t0)
	if err != nil {
		return 0, err
	}
	r2, err := tl.Binary.SecondRadius(t0)
	if err != nil {
		return 0, err
	}
	return 1 / math.Max(r1, r2), nil
}

// Sample evaluates the binary after elapsed playback time. At and after
// coalescence the frame is merged and carries the final black hole.
func (tl Timeline) Sample(elapsed time.Duration) (Frame, error) {
	if err := tl.Validate(); err != nil {
		return Frame{}, err
	}
	frame := Frame{Elapsed: elapsed, TimeToCoalescence: tl.TimeToCoalescence(elapsed)}
	if frame.TimeToCoalescence <= 0 {
		frame.Merged = true
		frame.Final = tl.Binary.FinalBlackHole()
		return frame, nil
	}

	norm, err := tl.normalization()
	if err != nil {
		return Frame{}, err
	}
	s, err := tl.Binary.State(frame.TimeToCoalescence)
	if err != nil {
		return Frame{}, err
	}

	frame.First = r3.Scale(norm, s.First.Position)
	frame.Second = r3.Scale(norm, s.Second.Position)
	frame.Frequency = s.Frequency
	frame.AudioFrequency = AudioFrequency(s.Frequency)
	frame.Distance = s.Distance
	frame.Angle = s.Angle
	return frame, nil
}

// Frames samples the whole timeline at fps frames per second, ending with
// the merged frame.
func (tl Timeline) Frames(fps float64) ([]Frame, error) {
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(fps) || fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %g", dynamo.ErrInvalidConfig, fps)
	}
	step := time.Duration(float64(time.Second) / fps)
	if step <= 0 {
		return nil, fmt.Errorf("%w: fps %g is finer than the clock resolution", dynamo.ErrInvalidConfig, fps)
	}
	n := int(tl.Duration/step) + 1

	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		f, err := tl.Sample(time.Duration(i) * step)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 || !frames[len(frames)-1].Merged {
		f, err := tl.Sample(tl.Duration)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}
