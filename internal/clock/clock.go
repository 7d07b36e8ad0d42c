// Package clock tracks how far into the current track playback is.
//
// A Clock is shared between the audio output callback, which is the only
// caller of Advance, and any number of UI goroutines that read it. Every
// field is an independent atomic value; there is no mutex, so the audio
// callback never blocks. Two reads (for example Position and Paused) may
// observe different instants. That is fine for display code and must not be
// relied on for anything else.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock is the playhead of one track.
type Clock struct {
	length     int64
	sampleRate int
	base       time.Time

	pos      atomic.Int64
	playing  atomic.Bool
	paused   atomic.Bool
	start    atomic.Int64 // nanoseconds since base
	pausedAt atomic.Int64 // nanoseconds since base
}

// New returns a stopped clock for a buffer of length samples played at
// sampleRate samples per second.
func New(length, sampleRate int) *Clock {
	if length < 0 {
		length = 0
	}
	if sampleRate <= 0 {
		sampleRate = 1
	}
	return &Clock{
		length:     int64(length),
		sampleRate: sampleRate,
		base:       time.Now(),
	}
}

// offset converts now into nanoseconds since the clock's base, keeping the
// monotonic reading of both times.
func (c *Clock) offset(now time.Time) int64 {
	return int64(now.Sub(c.base))
}

// Start rewinds to the beginning and starts playing.
func (c *Clock) Start(now time.Time) {
	c.pos.Store(0)
	c.start.Store(c.offset(now))
	c.paused.Store(false)
	c.playing.Store(c.length > 0)
}

// Stop marks the track as no longer playing. Readers observe it within one
// tick and exit.
func (c *Clock) Stop() {
	c.playing.Store(false)
}

// Advance moves the playhead forward by n samples. It must only be called by
// the audio output callback. The playhead never passes the buffer length;
// reaching it ends the track. ended is true only for the call that performed
// the transition.
func (c *Clock) Advance(n int) (advanced int, ended bool) {
	if n <= 0 {
		return 0, false
	}
	for {
		cur := c.pos.Load()
		next := cur + int64(n)
		if next > c.length {
			next = c.length
		}
		if !c.pos.CompareAndSwap(cur, next) {
			continue
		}
		if next >= c.length {
			ended = c.playing.CompareAndSwap(true, false)
		}
		return int(next - cur), ended
	}
}

// Pause freezes elapsed-time accounting. Pausing twice is a no-op.
func (c *Clock) Pause(now time.Time) {
	if c.paused.Load() {
		return
	}
	c.pausedAt.Store(c.offset(now))
	c.paused.Store(true)
}

// Resume shifts the start epoch by the length of the pause so Elapsed does
// not count it.
func (c *Clock) Resume(now time.Time) {
	if !c.paused.Load() {
		return
	}
	gap := c.offset(now) - c.pausedAt.Load()
	if gap > 0 {
		c.start.Add(gap)
	}
	c.paused.Store(false)
}

// Elapsed returns the wall time played since Start, excluding pauses. While
// paused it stays at the value it had when Pause was called.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	at := c.offset(now)
	if c.paused.Load() {
		at = c.pausedAt.Load()
	}
	d := time.Duration(at - c.start.Load())
	if d < 0 {
		return 0
	}
	return d
}

// Seek moves the playhead to sample and rewrites the start epoch so that
// Elapsed matches the new position.
func (c *Clock) Seek(sample int, now time.Time) {
	s := int64(sample)
	if s < 0 {
		s = 0
	}
	if s > c.length {
		s = c.length
	}
	c.pos.Store(s)
	played := time.Duration(s) * time.Second / time.Duration(c.sampleRate)
	at := c.offset(now)
	if c.paused.Load() {
		c.pausedAt.Store(at)
	}
	c.start.Store(at - int64(played))
}

// Position returns the current sample index.
func (c *Clock) Position() int { return int(c.pos.Load()) }

// Playing reports whether the track is still playing. It turns false at the
// end of the buffer or after Stop.
func (c *Clock) Playing() bool { return c.playing.Load() }

// Paused reports whether playback is paused.
func (c *Clock) Paused() bool { return c.paused.Load() }

// Length returns the buffer length in samples.
func (c *Clock) Length() int { return int(c.length) }

// SampleRate returns the sample rate the clock counts in.
func (c *Clock) SampleRate() int { return c.sampleRate }
