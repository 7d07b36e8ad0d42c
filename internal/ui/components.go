package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/cadence/internal/player"
	"github.com/olivier-w/cadence/internal/term"
	"github.com/olivier-w/cadence/internal/util"
)

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}

// renderNowPlaying centers title, artist and album in width columns.
func renderNowPlaying(meta player.Metadata, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	lines := []string{center.Render(titleStyle.Render(strings.ToUpper(meta.Title)))}
	if meta.Artist != "" {
		lines = append(lines, center.Render(artistStyle.Render(strings.ToUpper(meta.Artist))))
	}
	if meta.Album != "" {
		lines = append(lines, center.Render(albumStyle.Render(strings.ToUpper(meta.Album))))
	}
	return strings.Join(lines, "\n")
}

// renderSpectrum draws bars bottom-aligned in a panel of layout.Height rows.
func renderSpectrum(bars []int, layout term.BarLayout) string {
	rows := term.Bars(bars, layout)
	for i, r := range rows {
		rows[i] = barStyle.Render(r)
	}
	return strings.Join(rows, "\n")
}

// renderProgressLine shows "m:ss [###---] m:ss" with the bar drawn at ratio.
func renderProgressLine(elapsed, total string, ratio float64, width int) string {
	bar := util.ProgressBar(ratio, 1, width)
	return progressStyle.Render(elapsed + " " + bar + " " + total)
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " - cadence"
	}
	return "▶ " + title + " - cadence"
}
