package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/san-kum/blackholes/internal/experiment"
)

// chirp is a sine whose pitch follows the audio frequency of an inspiral
// timeline. The pitch is refreshed every update interval and the phase is
// carried across refreshes, so pitch changes do not click.
type chirp struct {
	timeline experiment.Timeline
	rate     beep.SampleRate

	update   int
	merge    int
	fade     int
	total    int
	position int

	freq  float64
	phase float64
	err   error
}

// NewChirp returns a unit-amplitude streamer covering the timeline plus the
// configured tail of silence.
func NewChirp(tl experiment.Timeline, cfg Config) (beep.Streamer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	rate := beep.SampleRate(cfg.SampleRate)
	update := rate.N(cfg.UpdateInterval)
	if update < 1 {
		update = 1
	}
	merge := rate.N(tl.Duration)
	return &chirp{
		timeline: tl,
		rate:     rate,
		update:   update,
		merge:    merge,
		fade:     rate.N(cfg.Fade),
		total:    merge + rate.N(cfg.Tail),
	}, nil
}

// Sonify is NewChirp scaled to the configured amplitude.
func Sonify(tl experiment.Timeline, cfg Config) (beep.Streamer, error) {
	s, err := NewChirp(tl, cfg)
	if err != nil {
		return nil, err
	}
	return newVolume(s, cfg.Amplitude), nil
}

func (c *chirp) Stream(samples [][2]float64) (n int, ok bool) {
	if c.err != nil {
		return 0, false
	}
	for i := range samples {
		if c.position >= c.total {
			return i, i > 0
		}

		var val float64
		if c.position < c.merge {
			if c.position%c.update == 0 {
				if err := c.retune(); err != nil {
					c.err = err
					return i, i > 0
				}
			}
			val = math.Sin(2*math.Pi*c.phase) * c.gain()
			c.phase += c.freq / float64(c.rate)
			c.phase -= math.Floor(c.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		c.position++
	}
	return len(samples), true
}

func (c *chirp) Err() error { return c.err }

func (c *chirp) retune() error {
	elapsed := c.rate.D(c.position)
	frame, err := c.timeline.Sample(elapsed)
	if err != nil {
		return err
	}
	if frame.Merged {
		c.freq = 0
		return nil
	}
	// keep below Nyquist
	c.freq = math.Min(frame.AudioFrequency, 0.45*float64(c.rate))
	return nil
}

// gain ramps linearly over the fade length at both ends of the tone.
func (c *chirp) gain() float64 {
	if c.fade <= 0 {
		return 1
	}
	g := 1.0
	if c.position < c.fade {
		g = float64(c.position) / float64(c.fade)
	}
	if left := c.merge - c.position; left < c.fade {
		g = math.Min(g, float64(left)/float64(c.fade))
	}
	return g
}

// newVolume scales s linearly by vol. effects.Volume works in powers of
// Base, so zero needs the Silent flag.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
