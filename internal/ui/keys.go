package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Pause      key.Binding
	Restart    key.Binding
	Next       key.Binding
	Previous   key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Repeat     key.Binding
	Shuffle    key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" ", "p", "P"),
		key.WithHelp("space", "pause"),
	),
	Restart: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "restart"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n"),
		key.WithHelp("→", "next"),
	),
	Previous: key.NewBinding(
		key.WithKeys("b", "B"),
		key.WithHelp("b", "back"),
	),
	SeekBack: key.NewBinding(
		key.WithKeys(",", "<"),
		key.WithHelp(",/.", "seek"),
	),
	SeekFwd: key.NewBinding(
		key.WithKeys(".", ">"),
	),
	VolumeUp: key.NewBinding(
		key.WithKeys("up", "k", "+", "="),
		key.WithHelp("+/-", "volume"),
	),
	VolumeDown: key.NewBinding(
		key.WithKeys("down", "j", "-"),
	),
	Repeat: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "repeat"),
	),
	Shuffle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "shuffle"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func helpText() string {
	var parts []string
	for _, b := range []key.Binding{keys.Pause, keys.Restart, keys.Next, keys.Previous, keys.SeekBack, keys.VolumeUp, keys.Repeat, keys.Shuffle, keys.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
