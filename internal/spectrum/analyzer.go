// Package spectrum turns a rolling window of mono samples into bar heights.
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
)

const epsilon = 1e-9

// Config tunes the analyzer. Attack, Decay and TrebleBoost are visual
// heuristics, not derived values.
type Config struct {
	DBFloor     float64 // level treated as silence, e.g. -60
	Reference   float64 // magnitude treated as 0 dB
	TrebleBoost float64 // highest bucket gets 1+TrebleBoost gain
	Attack      float64 // blend toward a higher target
	Decay       float64 // blend toward a lower target
	Mirror      bool    // symmetric layout, low frequencies in the middle
}

// DefaultConfig returns the tuning used by the player.
func DefaultConfig() Config {
	return Config{
		DBFloor:     -60,
		Reference:   40,
		TrebleBoost: 2.5,
		Attack:      0.7,
		Decay:       0.2,
	}
}

// Analyzer computes bar heights. It keeps the previous frame for smoothing,
// so one Analyzer serves one display and is not safe for concurrent use.
type Analyzer struct {
	cfg  Config
	fft  Transformer
	n    int
	hann []float64
	buf  []float64
	mags []float64
	prev []float64
}

// New builds an analyzer around t, whose size fixes the window length.
func New(cfg Config, t Transformer) (*Analyzer, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: no transformer", ErrWindowSize)
	}
	n := t.Size()
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrWindowSize, n)
	}
	if cfg.DBFloor >= 0 {
		cfg.DBFloor = DefaultConfig().DBFloor
	}
	if cfg.Reference <= 0 {
		cfg.Reference = DefaultConfig().Reference
	}
	return &Analyzer{
		cfg:  cfg,
		fft:  t,
		n:    n,
		hann: window.Hann(n),
		buf:  make([]float64, n),
		mags: make([]float64, n/2),
	}, nil
}

// WindowSize returns the number of samples analyzed per call.
func (a *Analyzer) WindowSize() int { return a.n }

// Reset drops the smoothing state, for example on track change.
func (a *Analyzer) Reset() { a.prev = nil }

// Bars returns barCount heights in [1, maxHeight] for the window of samples
// starting at pos. Samples past the end of the buffer count as silence.
func (a *Analyzer) Bars(pos int, samples []float32, barCount, maxHeight int) []int {
	if barCount <= 0 {
		return []int{}
	}
	if maxHeight < 1 {
		return make([]int, barCount)
	}

	buckets := barCount
	if a.cfg.Mirror {
		buckets = (barCount + 1) / 2
	}

	a.fill(pos, samples)
	heights := a.smooth(a.intensities(buckets), maxHeight)

	if a.cfg.Mirror {
		return mirror(heights, barCount)
	}
	return heights
}

func (a *Analyzer) fill(pos int, samples []float32) {
	for i := range a.buf {
		idx := pos + i
		var s float64
		if pos >= 0 && idx < len(samples) {
			s = float64(samples[idx])
		}
		a.buf[i] = s * a.hann[i]
	}

	spec := a.fft.Transform(a.buf)
	for i := range a.mags {
		a.mags[i] = cmplx.Abs(spec[i])
	}
}

// intensities returns one 0..1 value per bucket.
func (a *Analyzer) intensities(buckets int) []float64 {
	out := make([]float64, buckets)
	total := len(a.mags)
	for b := range buckets {
		lo, hi := bucketRange(b, buckets, total)

		peak := 0.0
		for i := lo; i < hi; i++ {
			if a.mags[i] > peak {
				peak = a.mags[i]
			}
		}

		db := 20 * math.Log10(peak/a.cfg.Reference+epsilon)
		v := (db - a.cfg.DBFloor) / -a.cfg.DBFloor
		if v < 0 {
			v = 0
		}

		rel := 0.0
		if buckets > 1 {
			rel = float64(b) / float64(buckets-1)
		}
		v *= 1 + rel*a.cfg.TrebleBoost
		if v > 1 {
			v = 1
		}
		out[b] = v
	}
	return out
}

// bucketRange returns the bin range [lo, hi) of bucket b out of n, using
// power-law boundaries floor(total^(b/n)). Every bucket gets at least one bin.
func bucketRange(b, n, total int) (lo, hi int) {
	lo = int(math.Pow(float64(total), float64(b)/float64(n)))
	hi = int(math.Pow(float64(total), float64(b+1)/float64(n)))
	if lo >= total {
		lo = total - 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	if hi > total {
		hi = total
	}
	return lo, hi
}

// smooth blends the new targets into the previous frame: fast attack, slow
// decay.
func (a *Analyzer) smooth(targets []float64, maxHeight int) []int {
	if len(a.prev) != len(targets) {
		a.prev = make([]float64, len(targets))
	}

	out := make([]int, len(targets))
	for i, v := range targets {
		target := v * float64(maxHeight)
		prev := a.prev[i]
		blend := a.cfg.Decay
		if target > prev {
			blend = a.cfg.Attack
		}
		cur := prev + (target-prev)*blend
		a.prev[i] = cur

		h := int(math.Round(cur))
		if h < 1 {
			h = 1
		}
		if h > maxHeight {
			h = maxHeight
		}
		out[i] = h
	}
	return out
}

// mirror lays out half so that the lowest bucket sits in the middle and the
// left side is the right side reversed.
func mirror(half []int, width int) []int {
	out := make([]int, 0, width)
	stop := width & 1
	for i := len(half) - 1; i >= stop; i-- {
		out = append(out, half[i])
	}
	return append(out, half...)
}
