package frameloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/olivier-w/cadence/internal/clock"
	"github.com/olivier-w/cadence/internal/spectrum"
)

type recorder struct {
	mu       sync.Mutex
	bars     [][]int
	progress []Progress
	gens     []uint64
}

func (r *recorder) DrawBars(gen uint64, bars []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bars = append(r.bars, bars)
	r.gens = append(r.gens, gen)
}

func (r *recorder) DrawProgress(gen uint64, p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, p)
	r.gens = append(r.gens, gen)
}

func (r *recorder) counts() (bars, progress int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bars), len(r.progress)
}

func newAnalyzer(t *testing.T) *spectrum.Analyzer {
	t.Helper()
	fft, err := spectrum.NewFFT(64)
	if err != nil {
		t.Fatalf("NewFFT: %v", err)
	}
	a, err := spectrum.New(spectrum.DefaultConfig(), fft)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

var fastConfig = Config{
	FrameInterval:    time.Millisecond,
	ProgressInterval: 5 * time.Millisecond,
	ProgressWidth:    10,
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

func runAsync(l *Loop, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunDrawsUntilClockStops(t *testing.T) {
	samples := make([]float32, 48000)
	clk := clock.New(len(samples), 48000)
	clk.Start(time.Now())
	rec := &recorder{}

	l := New(fastConfig, 7, clk, samples, newAnalyzer(t), "0:01", rec)
	l.SetLayout(Layout{Bars: 8, MaxHeight: 10})
	done := runAsync(l, context.Background())

	waitFor(t, func() bool { b, p := rec.counts(); return b >= 3 && p >= 1 })
	clk.Stop()
	waitDone(t, done)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, bars := range rec.bars {
		if len(bars) != 8 {
			t.Fatalf("expected 8 bars, got %d", len(bars))
		}
	}
	for _, gen := range rec.gens {
		if gen != 7 {
			t.Fatalf("expected generation 7, got %d", gen)
		}
	}
}

func TestPausedSkipsBarsButKeepsRunning(t *testing.T) {
	samples := make([]float32, 48000)
	clk := clock.New(len(samples), 48000)
	now := time.Now()
	clk.Start(now)
	clk.Pause(now)
	rec := &recorder{}

	l := New(fastConfig, 1, clk, samples, newAnalyzer(t), "0:01", rec)
	l.SetLayout(Layout{Bars: 4, MaxHeight: 5})
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(l, ctx)

	waitFor(t, func() bool { _, p := rec.counts(); return p >= 2 })
	if b, _ := rec.counts(); b != 0 {
		t.Fatalf("expected no bars while paused, got %d", b)
	}

	clk.Resume(time.Now())
	waitFor(t, func() bool { b, _ := rec.counts(); return b >= 1 })
	cancel()
	waitDone(t, done)
}

func TestZeroLayoutDrawsNoBars(t *testing.T) {
	clk := clock.New(100, 48000)
	clk.Start(time.Now())
	rec := &recorder{}

	l := New(fastConfig, 1, clk, make([]float32, 100), newAnalyzer(t), "0:01", rec)
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(l, ctx)
	waitFor(t, func() bool { _, p := rec.counts(); return p >= 1 })
	time.Sleep(10 * time.Millisecond)
	cancel()
	waitDone(t, done)

	if b, _ := rec.counts(); b != 0 {
		t.Fatalf("expected no bars without a layout, got %d", b)
	}
}

func TestProgressHalfway(t *testing.T) {
	clk := clock.New(48000*10, 48000)
	now := time.Now()
	clk.Start(now)
	clk.Seek(48000*5, now)

	l := New(fastConfig, 1, clk, nil, newAnalyzer(t), "0:10", &recorder{})
	l.now = func() time.Time { return now }

	p := l.Progress()
	if p.ElapsedText != "0:05" || p.TotalText != "0:10" {
		t.Fatalf("unexpected text %q / %q", p.ElapsedText, p.TotalText)
	}
	if p.Bar != "[#####-----]" {
		t.Fatalf("unexpected bar %q", p.Bar)
	}
	if p.Ratio != 0.5 {
		t.Fatalf("expected ratio 0.5, got %v", p.Ratio)
	}
}

func TestProgressMalformedDuration(t *testing.T) {
	clk := clock.New(48000, 48000)
	now := time.Now()
	clk.Start(now)

	l := New(fastConfig, 1, clk, nil, newAnalyzer(t), "abc", &recorder{})
	l.now = func() time.Time { return now.Add(3 * time.Second) }

	p := l.Progress()
	if p.Total != 0 || p.Ratio != 0 {
		t.Fatalf("expected zero total, got %+v", p)
	}
	if p.Bar != "[----------]" {
		t.Fatalf("expected empty bar, got %q", p.Bar)
	}
	if p.ElapsedText != "0:03" {
		t.Fatalf("expected elapsed to keep counting, got %q", p.ElapsedText)
	}
}

func TestTrackEndReturnsWithoutWaitingForProgressTick(t *testing.T) {
	samples := make([]float32, 48000)
	clk := clock.New(len(samples), 48000)
	clk.Start(time.Now())
	rec := &recorder{}

	cfg := fastConfig
	cfg.ProgressInterval = time.Hour
	l := New(cfg, 1, clk, samples, newAnalyzer(t), "0:01", rec)
	done := runAsync(l, context.Background())

	waitFor(t, func() bool { _, p := rec.counts(); return p >= 1 })
	clk.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Run waited for the progress tick after the track ended")
	}
}
