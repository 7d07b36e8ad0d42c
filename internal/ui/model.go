// Package ui is the Bubbletea front end. The model owns the lifetime of each
// track: it loads it, starts the clock, audio output and frame loop, and
// tears them down again before the next track replaces the buffer.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/cadence/internal/clock"
	"github.com/olivier-w/cadence/internal/config"
	"github.com/olivier-w/cadence/internal/frameloop"
	"github.com/olivier-w/cadence/internal/imaging"
	"github.com/olivier-w/cadence/internal/player"
	"github.com/olivier-w/cadence/internal/queue"
	"github.com/olivier-w/cadence/internal/spectrum"
	"github.com/olivier-w/cadence/internal/term"
)

const (
	volumeStep = 0.05
	seekStep   = 5 * time.Second
)

// ErrNothingPlayable is returned by Model.Err when every track in the queue
// failed to load or start.
var ErrNothingPlayable = errors.New("no track could be played")

// Audio is the output device as seen by the model.
type Audio interface {
	Start(buf *player.Buffer, clk *clock.Clock) error
	Stop()
	Volume() float64
	AdjustVolume(delta float64)
}

// session is everything tied to the track that is playing.
type session struct {
	gen    uint64
	clock  *clock.Clock
	loop   *frameloop.Loop
	cancel context.CancelFunc
	done   chan struct{}
}

// Model is the Bubbletea model for the cadence TUI.
type Model struct {
	cfg       config.Config
	queue     *queue.Queue
	audio     Audio
	analyzer  *spectrum.Analyzer
	renderer  *term.Renderer
	coverOpts imaging.CoverOptions
	barLayout term.BarLayout
	load      func(path string) (*player.Track, error)

	gen      uint64
	sess     *session
	sink     *frameSink
	track    *player.Track
	loading  string // path being loaded, "" once playing
	spinner  spinner.Model
	cover    string
	coverW   int
	bars     []int
	progress frameloop.Progress
	glide    glide
	paused   bool
	failures int
	err      error
	width    int
	height   int
	quitting bool
}

// New creates a Model that plays q. The analyzer is reused for every track.
func New(cfg config.Config, q *queue.Queue, audio Audio, a *spectrum.Analyzer) (Model, error) {
	coverOpts, err := cfg.CoverOptions()
	if err != nil {
		return Model{}, err
	}
	repeat, err := queue.ParseRepeat(cfg.Library.Repeat)
	if err != nil {
		return Model{}, err
	}
	q.Repeat = repeat

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	return Model{
		cfg:       cfg,
		queue:     q,
		audio:     audio,
		analyzer:  a,
		renderer:  term.NewRenderer(),
		coverOpts: coverOpts,
		barLayout: term.BarLayout{
			Height:   cfg.Cover.Height,
			BarWidth: cfg.Spectrum.BarWidth,
			Gap:      cfg.Spectrum.BarGap,
			Glyph:    []rune(cfg.Spectrum.Glyph)[0],
		},
		load:    player.Load,
		sink:    newFrameSink(),
		spinner: s,
		glide:   newGlide(cfg.UI.FPS),
	}, nil
}

// Err reports why the program stopped, if it was not the user's choice.
func (m Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.sink.wait(), m.loadCmd(m.queue.Current()))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.handleMsg(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case trackLoadedMsg:
		if msg.gen != m.gen {
			return nil
		}
		if msg.err != nil {
			log.Printf("load %s: %v", msg.path, msg.err)
			return m.drop(msg.err)
		}
		return m.startTrack(msg.track)

	case trackEndedMsg:
		if m.sess == nil || msg.gen != m.sess.gen {
			return nil
		}
		m.stopSession()
		path, ok := m.queue.Finished()
		if !ok {
			return m.quit()
		}
		return m.loadCmd(path)

	case barsMsg:
		if msg.gen == m.gen && m.sess != nil {
			m.bars = msg.bars
			m.glide.step()
		}
		return m.sink.wait()

	case progressMsg:
		if msg.gen == m.gen && m.sess != nil {
			m.progress = msg.progress
			if m.paused {
				m.glide.snap(msg.progress.Ratio)
			} else {
				m.glide.setTarget(msg.progress.Ratio)
			}
		}
		return m.sink.wait()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.sess != nil {
			m.sess.loop.SetLayout(m.spectrumLayout())
		}
		return nil
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	now := time.Now()
	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit()

	case key.Matches(msg, keys.Pause):
		if m.sess == nil {
			return nil
		}
		if m.sess.clock.Paused() {
			m.sess.clock.Resume(now)
		} else {
			m.sess.clock.Pause(now)
		}
		m.paused = m.sess.clock.Paused()
		return tea.SetWindowTitle(windowTitle(m.track.Meta.Title, m.paused))

	case key.Matches(msg, keys.Restart):
		if m.sess == nil {
			return nil
		}
		m.sess.clock.Seek(0, now)
		m.progress = m.sess.loop.Progress()
		m.glide.snap(0)
		return nil

	case key.Matches(msg, keys.SeekBack):
		m.seekBy(-seekStep, now)

	case key.Matches(msg, keys.SeekFwd):
		m.seekBy(seekStep, now)

	case key.Matches(msg, keys.Next):
		m.stopSession()
		return m.loadCmd(m.queue.Next())

	case key.Matches(msg, keys.Previous):
		m.stopSession()
		return m.loadCmd(m.queue.Previous())

	case key.Matches(msg, keys.VolumeUp):
		m.audio.AdjustVolume(volumeStep)

	case key.Matches(msg, keys.VolumeDown):
		m.audio.AdjustVolume(-volumeStep)

	case key.Matches(msg, keys.Repeat):
		m.queue.Repeat = m.queue.Repeat.Next()

	case key.Matches(msg, keys.Shuffle):
		m.queue.ToggleShuffle()
	}
	return nil
}

// seekBy moves the playhead by d. Seeking past the end finishes the track on
// the next audio callback.
func (m *Model) seekBy(d time.Duration, now time.Time) {
	if m.sess == nil {
		return
	}
	clk := m.sess.clock
	delta := int(d.Seconds() * float64(clk.SampleRate()))
	clk.Seek(clk.Position()+delta, now)
	m.progress = m.sess.loop.Progress()
	m.glide.snap(m.progress.Ratio)
}

// loadCmd decodes path off the Update goroutine. Bumping the generation
// invalidates every message still in flight for the previous track.
func (m *Model) loadCmd(path string) tea.Cmd {
	m.gen++
	m.loading = path
	m.track = nil
	m.cover = ""
	m.bars = nil
	m.progress = frameloop.Progress{}
	m.glide.snap(0)

	gen, load := m.gen, m.load
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		t, err := load(path)
		return trackLoadedMsg{gen: gen, path: path, track: t, err: err}
	})
}

// skip moves past a track that could not be played. Once every track in a
// row has failed there is nothing left to try.
func (m *Model) skip(err error) tea.Cmd {
	m.failures++
	if m.failures >= m.queue.Len() {
		m.err = fmt.Errorf("%w: %v", ErrNothingPlayable, err)
		return m.quit()
	}
	return m.loadCmd(m.queue.Next())
}

// drop removes a track that could not be decoded so later laps through the
// queue do not retry it.
func (m *Model) drop(err error) tea.Cmd {
	if m.queue.Len() <= 1 {
		m.err = fmt.Errorf("%w: %v", ErrNothingPlayable, err)
		return m.quit()
	}
	failed := m.queue.CurrentIndex()
	next := m.queue.Next()
	m.queue.Remove(failed)
	if m.failures >= m.queue.Len() {
		m.err = fmt.Errorf("%w: %v", ErrNothingPlayable, err)
		return m.quit()
	}
	return m.loadCmd(next)
}

// startTrack renders the cover once and starts audio and the frame loop.
func (m *Model) startTrack(t *player.Track) tea.Cmd {
	clk := clock.New(t.Buffer.Len(), t.Buffer.SampleRate())
	clk.Start(time.Now())
	if err := m.audio.Start(t.Buffer, clk); err != nil {
		clk.Stop()
		log.Printf("start %s: %v", t.Path, err)
		return m.skip(err)
	}
	m.failures = 0

	frame := imaging.Cover(t.Meta.Cover, m.coverOpts)
	m.cover = m.renderer.Frame(frame)
	m.coverW = frame.Width

	m.track = t
	m.loading = ""
	m.paused = false
	m.analyzer.Reset()

	loop := frameloop.New(frameloop.Config{
		FrameInterval:    m.cfg.FrameInterval(),
		ProgressInterval: m.cfg.UI.ProgressInterval,
		ProgressWidth:    m.cfg.UI.ProgressWidth,
	}, m.gen, clk, t.Buffer.Samples(), m.analyzer, t.Meta.Duration, m.sink)
	loop.SetLayout(m.spectrumLayout())

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{gen: m.gen, clock: clk, loop: loop, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		if err := loop.Run(ctx); err != nil {
			log.Printf("frame loop: %v", err)
		}
	}()
	m.sess = s
	m.progress = loop.Progress()

	log.Printf("playing %s (%s)", t.Path, t.TechLine())
	return tea.Batch(waitForEnd(s), tea.SetWindowTitle(windowTitle(t.Meta.Title, false)))
}

func waitForEnd(s *session) tea.Cmd {
	return func() tea.Msg {
		<-s.done
		return trackEndedMsg{gen: s.gen}
	}
}

// stopSession ends the current track. The frame loop has returned and the
// audio stream has let go of the buffer by the time it returns.
func (m *Model) stopSession() {
	s := m.sess
	if s == nil {
		return
	}
	m.sess = nil
	s.clock.Stop()
	m.audio.Stop()
	s.cancel()
	<-s.done
}

func (m *Model) quit() tea.Cmd {
	m.stopSession()
	m.quitting = true
	return tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

// spectrumLayout sizes the bar panel to the space right of the cover.
func (m *Model) spectrumLayout() frameloop.Layout {
	width := m.width - m.coverWidth() - 6
	fit := term.MaxBars(width, m.barLayout)
	n := fit
	if m.cfg.Spectrum.Bars > 0 {
		n = min(m.cfg.Spectrum.Bars, fit)
	}
	return frameloop.Layout{Bars: n, MaxHeight: m.barLayout.Height}
}

func (m *Model) coverWidth() int {
	if m.coverW > 0 {
		return m.coverW
	}
	return m.cfg.Cover.Width
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 80
	}

	var b strings.Builder
	b.WriteString("\n  " + headerStyle.Render("cadence") + "\n\n")

	if m.track == nil {
		name := filepath.Base(m.loading)
		b.WriteString("  " + m.spinner.View() + " Loading " + name + "\n")
		return b.String()
	}

	var panels []string
	if m.cover != "" {
		panels = append(panels, m.cover, "  ")
	}
	if len(m.bars) > 0 {
		panels = append(panels, renderSpectrum(m.bars, m.barLayout))
	}
	if len(panels) > 0 {
		b.WriteString(indentBlock(lipgloss.JoinHorizontal(lipgloss.Bottom, panels...), "  "))
		b.WriteString("\n\n")
	}

	b.WriteString(indentBlock(renderNowPlaying(m.track.Meta, w-4), "  "))
	b.WriteString("\n\n")

	b.WriteString("  " + statusStyle.Render(m.track.TechLine()) + "\n")
	ratio := m.progress.Ratio
	if !m.paused {
		ratio = m.glide.value()
	}
	b.WriteString("  " + renderProgressLine(m.progress.ElapsedText, m.progress.TotalText, ratio, m.cfg.UI.ProgressWidth) + "\n\n")

	statusText := "▶  playing"
	if m.paused {
		statusText = "❚❚ paused"
	}
	for _, icon := range []string{m.queue.Repeat.Icon(), shuffleIcon(m.queue.Shuffled())} {
		if icon != "" {
			statusText += "  " + icon
		}
	}
	statusText += fmt.Sprintf("  %d/%d", m.queue.CurrentIndex()+1, m.queue.Len())
	vol := renderVolumePercent(m.audio.Volume())
	gap := max(w-lipgloss.Width(statusText)-lipgloss.Width(vol)-4, 2)
	b.WriteString("  " + statusStyle.Render(statusText) + strings.Repeat(" ", gap) + statusStyle.Render(vol) + "\n")

	if next := m.queue.Peek(1); len(next) == 1 {
		b.WriteString("  " + helpStyle.Render("up next: "+trackName(next[0])) + "\n")
	}
	if m.err != nil {
		b.WriteString("  " + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n  " + helpStyle.Render(helpText()) + "\n")
	return b.String()
}

func trackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func shuffleIcon(on bool) string {
	if on {
		return "[shuffle]"
	}
	return ""
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
