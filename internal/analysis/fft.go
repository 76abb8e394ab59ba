package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// PowerSpectrum returns the magnitude of the first half of the discrete
// Fourier transform of data. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency is the frequency in Hz of the strongest non-constant
// component of samples taken at rate Hz.
func DominantFrequency(samples []float64, rate float64) (float64, error) {
	if len(samples) < 4 {
		return 0, fmt.Errorf("%w: need at least 4 samples, got %d", ErrInsufficientData, len(samples))
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w: sample rate must be positive, got %g", ErrInsufficientData, rate)
	}
	ps := PowerSpectrum(samples)
	// skip the constant term
	bin := floats.MaxIdx(ps[1:]) + 1
	return float64(bin) * rate / float64(len(samples)), nil
}
