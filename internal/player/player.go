package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/olivier-w/cadence/internal/clock"
)

const bytesPerSample = 4 // mono float32

// ErrNoDevice is returned when the output has no audio context.
var ErrNoDevice = errors.New("audio device unavailable")

// Output plays buffers through the system audio device. The device is
// opened once; each track gets its own oto player reading from a stream
// that advances the track's clock.
type Output struct {
	ctx *oto.Context

	mu     sync.Mutex
	player *oto.Player
	stream *stream
	volume float64
}

// NewOutput opens the audio device for mono float32 at PlaybackSampleRate.
// bufferSize bounds how far the device reads ahead of what is heard.
func NewOutput(bufferSize time.Duration, volume float64) (*Output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   PlaybackSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready
	return &Output{ctx: ctx, volume: clampVolume(volume)}, nil
}

// Start begins playing buf, advancing clk as samples are handed to the
// device. Any previous track is stopped first. A failure leaves the output
// idle so the caller can skip the track.
func (o *Output) Start(buf *Buffer, clk *clock.Clock) error {
	o.Stop()

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctx == nil {
		return ErrNoDevice
	}

	s := newStream(buf.Samples(), clk)
	p := o.ctx.NewPlayer(s)
	p.SetVolume(o.volume)
	p.Play()
	if err := p.Err(); err != nil {
		s.stop()
		p.Pause()
		return fmt.Errorf("starting playback: %w", err)
	}
	o.player = p
	o.stream = s
	return nil
}

// Stop silences the current track and releases its player. Reads that start
// after Stop returns no longer advance the track's clock.
func (o *Output) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stream != nil {
		o.stream.stop()
		o.stream = nil
	}
	if o.player != nil {
		o.player.Pause()
		o.player = nil
	}
}

// Volume returns current volume (0.0 to 1.0).
func (o *Output) Volume() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (o *Output) SetVolume(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.volume = clampVolume(v)
	if o.player != nil {
		o.player.SetVolume(o.volume)
	}
}

// AdjustVolume adjusts volume by delta.
func (o *Output) AdjustVolume(delta float64) {
	o.SetVolume(o.Volume() + delta)
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// stream is the device callback. It is the only caller of Clock.Advance and
// decides when to emit silence: paused, stopped, or past the end. Read never
// blocks; stop swaps the buffer out and a Read already in flight finishes
// with the slice it loaded.
type stream struct {
	samples atomic.Pointer[[]float32]
	clock   *clock.Clock
}

func newStream(samples []float32, clk *clock.Clock) *stream {
	s := &stream{clock: clk}
	s.samples.Store(&samples)
	return s
}

func (s *stream) stop() {
	s.samples.Store(nil)
}

func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerSample
	out := p[:frames*bytesPerSample]

	n := 0
	if sp := s.samples.Load(); sp != nil && s.clock.Playing() && !s.clock.Paused() {
		samples := *sp
		pos := s.clock.Position()
		n, _ = s.clock.Advance(frames)
		if pos+n > len(samples) {
			n = max(len(samples)-pos, 0)
		}
		for i := range n {
			binary.LittleEndian.PutUint32(out[i*bytesPerSample:], math.Float32bits(samples[pos+i]))
		}
	}
	clear(out[n*bytesPerSample:])
	return len(out), nil
}
