package player

import "time"

// Buffer holds one track's decoded mono samples in [-1, 1] at a fixed
// sample rate. It is built once at load time and never modified, so any
// number of goroutines may read Samples concurrently.
type Buffer struct {
	samples []float32
	rate    int
}

// NewBuffer takes ownership of samples.
func NewBuffer(samples []float32, rate int) *Buffer {
	if rate <= 0 {
		rate = PlaybackSampleRate
	}
	return &Buffer{samples: samples, rate: rate}
}

// Samples returns the sample slice. Callers must not modify it.
func (b *Buffer) Samples() []float32 { return b.samples }

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.samples) }

// SampleRate returns samples per second.
func (b *Buffer) SampleRate() int { return b.rate }

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(len(b.samples)) * time.Second / time.Duration(b.rate)
}
