package ui

import (
	"github.com/olivier-w/cadence/internal/frameloop"
	"github.com/olivier-w/cadence/internal/player"
)

// Every message that belongs to a track carries the generation it was
// created for. Messages from a replaced track are dropped.

type trackLoadedMsg struct {
	gen   uint64
	path  string
	track *player.Track
	err   error
}

type trackEndedMsg struct {
	gen uint64
}

type barsMsg struct {
	gen  uint64
	bars []int
}

type progressMsg struct {
	gen      uint64
	progress frameloop.Progress
}
