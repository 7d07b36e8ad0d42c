package spectrum

import (
	"errors"
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// ErrWindowSize is returned when a Fourier transform is requested for a
// window size it cannot handle.
var ErrWindowSize = errors.New("invalid FFT window size")

// Transformer is the Fourier primitive used by the analyzer. It is created
// once for a fixed window size.
type Transformer interface {
	Size() int
	Transform(window []float64) []complex128
}

// FFT is a radix-2 Transformer backed by go-dsp.
type FFT struct {
	n int
}

// NewFFT prepares a transform for windows of n samples. n must be a power of
// two. Failure here is a setup error: the analyzer cannot run without it.
func NewFFT(n int) (*FFT, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrWindowSize, n)
	}
	fft.EnsureRadix2Factors(n)
	return &FFT{n: n}, nil
}

func (f *FFT) Size() int { return f.n }

// Transform returns the complex spectrum of window, which must hold Size
// samples.
func (f *FFT) Transform(window []float64) []complex128 {
	return fft.FFTReal(window)
}
