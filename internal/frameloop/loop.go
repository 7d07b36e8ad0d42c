// Package frameloop drives the per-track display ticks: spectrum frames at
// a fixed rate and a slower progress readout.
package frameloop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olivier-w/cadence/internal/clock"
	"github.com/olivier-w/cadence/internal/spectrum"
	"github.com/olivier-w/cadence/internal/util"
)

// errTrackEnded stops the sibling tick as soon as one tick sees the clock
// stop, so the track's end is reported without waiting for the slower tick.
var errTrackEnded = errors.New("track ended")

// Progress is one progress readout.
type Progress struct {
	Elapsed     time.Duration
	Total       time.Duration
	ElapsedText string
	TotalText   string
	Bar         string
	Ratio       float64
}

// Renderer receives frames. Implementations must not block; the loop calls
// them from its tick goroutines. gen identifies the track the frame belongs
// to so a renderer can drop frames from a track that was already replaced.
type Renderer interface {
	DrawBars(gen uint64, bars []int)
	DrawProgress(gen uint64, p Progress)
}

// Layout is the size of the spectrum panel.
type Layout struct {
	Bars      int
	MaxHeight int
}

// Config holds the tick rates and the progress bar width.
type Config struct {
	FrameInterval    time.Duration
	ProgressInterval time.Duration
	ProgressWidth    int
}

// Loop renders one track. It only reads the clock and the samples; the audio
// callback is the sole writer.
type Loop struct {
	cfg      Config
	gen      uint64
	clock    *clock.Clock
	samples  []float32
	analyzer *spectrum.Analyzer
	total    time.Duration
	out      Renderer
	layout   atomic.Pointer[Layout]

	now func() time.Time
}

// New prepares a loop for the track identified by gen. duration is the
// track's "m:ss" text; a malformed value shows as zero progress.
func New(cfg Config, gen uint64, clk *clock.Clock, samples []float32, a *spectrum.Analyzer, duration string, out Renderer) *Loop {
	l := &Loop{
		cfg:      cfg,
		gen:      gen,
		clock:    clk,
		samples:  samples,
		analyzer: a,
		total:    util.ParseTimestamp(duration),
		out:      out,
		now:      time.Now,
	}
	l.layout.Store(&Layout{})
	return l
}

// SetLayout changes the spectrum size from the next frame on. Safe to call
// while Run is active.
func (l *Loop) SetLayout(layout Layout) {
	l.layout.Store(&layout)
}

// Run ticks until the clock stops playing or ctx is cancelled. Both tick
// goroutines have returned when Run returns, so the caller may release the
// sample buffer afterwards.
func (l *Loop) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.frames(ctx) })
	g.Go(func() error { return l.progress(ctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, errTrackEnded) {
		return err
	}
	return nil
}

func (l *Loop) frames(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if !l.clock.Playing() {
			return errTrackEnded
		}
		if l.clock.Paused() {
			continue
		}
		layout := l.layout.Load()
		if layout.Bars <= 0 {
			continue
		}
		bars := l.analyzer.Bars(l.clock.Position(), l.samples, layout.Bars, layout.MaxHeight)
		l.out.DrawBars(l.gen, bars)
	}
}

func (l *Loop) progress(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.ProgressInterval)
	defer ticker.Stop()

	l.out.DrawProgress(l.gen, l.Progress())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if !l.clock.Playing() {
			return errTrackEnded
		}
		l.out.DrawProgress(l.gen, l.Progress())
	}
}

// Progress computes the readout for the current instant.
func (l *Loop) Progress() Progress {
	elapsed := l.clock.Elapsed(l.now())
	if l.total > 0 && elapsed > l.total {
		elapsed = l.total
	}
	p := Progress{
		Elapsed:     elapsed,
		Total:       l.total,
		ElapsedText: util.FormatDuration(elapsed),
		TotalText:   util.FormatDuration(l.total),
		Bar:         util.ProgressBar(elapsed.Seconds(), l.total.Seconds(), l.cfg.ProgressWidth),
	}
	if l.total > 0 {
		p.Ratio = elapsed.Seconds() / l.total.Seconds()
	}
	return p
}
