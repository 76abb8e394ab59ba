package audio

import (
	"fmt"
	"time"
)

type Config struct {
	SampleRate int
	// UpdateInterval is how often the pitch follows the inspiral.
	UpdateInterval time.Duration
	// Amplitude is the peak sample value, in (0, 1].
	Amplitude float64
	// Tail is the silence kept after coalescence.
	Tail time.Duration
	// Fade ramps the tone in at the start and out at coalescence.
	Fade time.Duration
}

func DefaultConfig() Config {
	return Config{
		SampleRate:     44100,
		UpdateInterval: 100 * time.Millisecond,
		Amplitude:      0.5,
		Tail:           time.Second,
		Fade:           20 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("audio: sample rate must be positive, got %d", c.SampleRate)
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("audio: update interval must be positive, got %s", c.UpdateInterval)
	}
	if !(c.Amplitude > 0 && c.Amplitude <= 1) {
		return fmt.Errorf("audio: amplitude must be in (0, 1], got %g", c.Amplitude)
	}
	if c.Tail < 0 || c.Fade < 0 {
		return fmt.Errorf("audio: tail and fade must not be negative")
	}
	return nil
}
