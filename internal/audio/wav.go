package audio

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/san-kum/blackholes/internal/experiment"
)

// WriteWAV encodes s as 16-bit stereo PCM at rate until s is drained. A
// streamer that stops on an error fails the write.
func WriteWAV(w io.WriteSeeker, s beep.Streamer, rate int) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(w, s, format); err != nil {
		return err
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("audio: stream stopped early: %w", err)
	}
	return nil
}

// Render writes the sonified timeline to w as a WAV file.
func Render(w io.WriteSeeker, tl experiment.Timeline, cfg Config) error {
	s, err := Sonify(tl, cfg)
	if err != nil {
		return err
	}
	return WriteWAV(w, s, cfg.SampleRate)
}
