package util

import "strings"

// ProgressBar renders elapsed/total as "[###---]" with width fill cells.
func ProgressBar(elapsed, total float64, width int) string {
	if width < 1 {
		width = 1
	}

	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	ratio = max(0, min(1, ratio))

	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
