package term

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// ColorMode describes how colors are rendered.
type ColorMode uint8

const (
	ColorOff     ColorMode = iota // NO_COLOR or dumb terminal
	ColorANSI16                   // basic 16-color
	ColorANSI256                  // 256-color
	ColorTrue                     // 24-bit truecolor
)

// DetectColorMode inspects the environment for terminal color support.
func DetectColorMode() ColorMode {
	return colorModeFromEnv(os.LookupEnv)
}

func colorModeFromEnv(lookup func(string) (string, bool)) ColorMode {
	if _, ok := lookup("NO_COLOR"); ok {
		return ColorOff
	}
	termName, _ := lookup("TERM")
	colorTerm, _ := lookup("COLORTERM")
	termName = strings.ToLower(termName)
	colorTerm = strings.ToLower(colorTerm)
	switch {
	case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
		return ColorTrue
	case strings.Contains(termName, "256color"):
		return ColorANSI256
	case termName == "dumb":
		return ColorOff
	case termName == "" && runtime.GOOS == "windows":
		return ColorANSI16
	case termName == "":
		return ColorOff
	default:
		return ColorANSI16
	}
}

const ansiReset = "\x1b[0m"

// fgColorSeq returns an ANSI foreground escape for the given RGB, or "" when
// colors are off.
func fgColorSeq(mode ColorMode, r, g, b uint8) string {
	switch mode {
	case ColorTrue:
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	case ColorANSI256:
		ri := int(r) * 5 / 255
		gi := int(g) * 5 / 255
		bi := int(b) * 5 / 255
		return fmt.Sprintf("\x1b[38;5;%dm", 16+36*ri+6*gi+bi)
	case ColorANSI16:
		best := nearestANSI16(r, g, b)
		if best < 8 {
			return fmt.Sprintf("\x1b[%dm", 30+best)
		}
		return fmt.Sprintf("\x1b[%dm", 90+best-8)
	default:
		return ""
	}
}

func nearestANSI16(r, g, b uint8) int {
	best := 0
	bestDist := 1<<31 - 1
	for i, c := range ansi16Palette {
		dr := int(r) - int(c[0])
		dg := int(g) - int(c[1])
		db := int(b) - int(c[2])
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

var ansi16Palette = [16][3]uint8{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
	{102, 102, 102}, // bright black
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}
