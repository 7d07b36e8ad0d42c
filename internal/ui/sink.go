package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/cadence/internal/frameloop"
)

// frameSink hands frames from the loop goroutines to the Bubbletea program.
// Each channel holds one message; a newer frame replaces an unread one, so
// the loop never waits on the UI.
type frameSink struct {
	bars     chan barsMsg
	progress chan progressMsg
}

func newFrameSink() *frameSink {
	return &frameSink{
		bars:     make(chan barsMsg, 1),
		progress: make(chan progressMsg, 1),
	}
}

func (s *frameSink) DrawBars(gen uint64, bars []int) {
	offer(s.bars, barsMsg{gen: gen, bars: bars})
}

func (s *frameSink) DrawProgress(gen uint64, p frameloop.Progress) {
	offer(s.progress, progressMsg{gen: gen, progress: p})
}

// offer sends v, discarding the pending value if the channel is full.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// wait delivers the next frame of either kind.
func (s *frameSink) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case m := <-s.bars:
			return m
		case m := <-s.progress:
			return m
		}
	}
}
