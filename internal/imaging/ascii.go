package imaging

import "math"

// DefaultRamp orders glyphs from dimmest to brightest.
const DefaultRamp = "o%&8#@$"

// toneFloor keeps glyphs visible against dark terminal backgrounds.
const toneFloor = 15

// Tone shapes the contrast curve applied before glyph mapping.
//
// Brightness shifts the curve's midpoint by Brightness/100: a positive value
// raises the midpoint and darkens the image, a negative value brightens it.
type Tone struct {
	Contrast   float64
	Brightness float64
	Midpoint   float64
}

// DefaultTone is tuned for album covers on dark terminals.
func DefaultTone() Tone {
	return Tone{Contrast: 8.5, Brightness: -10, Midpoint: 0.35}
}

// Frame is a glyph grid with one color per glyph, row-major.
type Frame struct {
	Width  int
	Height int
	Glyphs []rune
	Colors []RGB
}

// Empty reports whether the frame has no cells.
func (f Frame) Empty() bool { return len(f.Glyphs) == 0 }

// ToASCII maps every pixel of src to a glyph from ramp and its tone-shaped
// color. An empty source yields an empty frame.
func ToASCII(src *Raster, tone Tone, ramp string) Frame {
	glyphs := []rune(ramp)
	if len(glyphs) == 0 {
		glyphs = []rune(DefaultRamp)
	}
	if src.Empty() {
		return Frame{}
	}

	mid := tone.Midpoint + tone.Brightness/100

	n := src.width * src.height
	f := Frame{
		Width:  src.width,
		Height: src.height,
		Glyphs: make([]rune, 0, n),
		Colors: make([]RGB, 0, n),
	}
	for i := 0; i < len(src.pix); i += 3 {
		c := RGB{
			R: shape(src.pix[i], tone.Contrast, mid),
			G: shape(src.pix[i+1], tone.Contrast, mid),
			B: shape(src.pix[i+2], tone.Contrast, mid),
		}
		f.Colors = append(f.Colors, c)
		f.Glyphs = append(f.Glyphs, glyphs[GlyphIndex(Luminance(c), len(glyphs))])
	}
	return f
}

// shape runs one channel through the logistic curve and clamps it to
// [toneFloor, 255].
func shape(v uint8, contrast, mid float64) uint8 {
	x := float64(v) / 255
	s := 1 / (1 + math.Exp(-contrast*(x-mid)))
	out := int(s * 255)
	if out < toneFloor {
		out = toneFloor
	}
	if out > 255 {
		out = 255
	}
	return uint8(out)
}

// Luminance returns the BT.709 luminance of c in [0, 1].
func Luminance(c RGB) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// GlyphIndex maps a luminance in [0, 1] to an index into a ramp of n glyphs.
// Each glyph covers an equal share of the range, so a tone curve that only
// approaches white still reaches the brightest glyph.
func GlyphIndex(lum float64, n int) int {
	if n <= 1 {
		return 0
	}
	idx := int(math.Floor(lum * float64(n)))
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}
