// Package term turns glyph frames and bar heights into terminal text.
// It owns no terminal state; the caller decides where the text goes.
package term

import (
	"strings"

	"github.com/olivier-w/cadence/internal/imaging"
)

// Renderer converts frames into strings for a fixed color mode.
type Renderer struct {
	mode ColorMode
	sb   strings.Builder
}

// NewRenderer creates a renderer using the current terminal's color
// capabilities.
func NewRenderer() *Renderer {
	return &Renderer{mode: DetectColorMode()}
}

// NewRendererWithMode creates a renderer for an explicit color mode.
func NewRendererWithMode(mode ColorMode) *Renderer {
	return &Renderer{mode: mode}
}

// Frame renders a glyph frame as Height lines of Width glyphs, each colored
// with its cell color when colors are enabled.
func (r *Renderer) Frame(f imaging.Frame) string {
	if f.Empty() || f.Width <= 0 || len(f.Glyphs) != f.Width*f.Height || len(f.Colors) != len(f.Glyphs) {
		return ""
	}

	r.sb.Reset()
	r.sb.Grow(f.Width * f.Height * 20)

	for row := range f.Height {
		var last string
		for col := range f.Width {
			i := row*f.Width + col
			c := f.Colors[i]
			if seq := fgColorSeq(r.mode, c.R, c.G, c.B); seq != last {
				r.sb.WriteString(seq)
				last = seq
			}
			r.sb.WriteRune(f.Glyphs[i])
		}
		if r.mode != ColorOff {
			r.sb.WriteString(ansiReset)
		}
		if row < f.Height-1 {
			r.sb.WriteByte('\n')
		}
	}
	return r.sb.String()
}

// BarLayout describes how bar heights are drawn.
type BarLayout struct {
	Height   int  // rows available
	BarWidth int  // columns per bar
	Gap      int  // blank columns between bars
	Glyph    rune // fill character
}

// MaxBars returns how many bars of the layout fit in width columns.
func MaxBars(width int, l BarLayout) int {
	if l.BarWidth <= 0 || width < l.BarWidth {
		return 0
	}
	return (width + l.Gap) / (l.BarWidth + l.Gap)
}

// Bars draws heights as vertical bars growing from the bottom row. It
// returns l.Height lines, top first.
func Bars(heights []int, l BarLayout) []string {
	if l.Height <= 0 {
		return nil
	}
	glyph := l.Glyph
	if glyph == 0 {
		glyph = '#'
	}
	fill := strings.Repeat(string(glyph), max(l.BarWidth, 1))
	blank := strings.Repeat(" ", max(l.BarWidth, 1))
	gap := strings.Repeat(" ", max(l.Gap, 0))

	rows := make([]string, l.Height)
	var sb strings.Builder
	for row := range l.Height {
		level := l.Height - row
		sb.Reset()
		for i, h := range heights {
			if i > 0 {
				sb.WriteString(gap)
			}
			if h >= level {
				sb.WriteString(fill)
			} else {
				sb.WriteString(blank)
			}
		}
		rows[row] = sb.String()
	}
	return rows
}
