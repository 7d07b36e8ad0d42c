package imaging

import (
	"fmt"
	"math"
	"strings"
)

// Downscaler is a resampling strategy. Implementations may assume the target
// size has already been validated by Downscale.
type Downscaler interface {
	Name() string
	resample(src *Raster, w, h int) *Raster
}

// Box averages every source pixel whose center falls in the output pixel's
// region.
type Box struct{}

// Bilinear interpolates the four source pixels around each output sample.
type Bilinear struct{}

// Methods returns the available strategies.
func Methods() []Downscaler {
	return []Downscaler{Box{}, Bilinear{}}
}

// MethodByName looks a strategy up by its configuration name.
func MethodByName(name string) (Downscaler, error) {
	for _, m := range Methods() {
		if strings.EqualFold(m.Name(), name) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown downscale method %q", ErrInvalidArgument, name)
}

// Downscale returns src reduced to w x h using method. It only ever reduces:
// a non-positive target or one larger than the source is rejected.
func Downscale(src *Raster, w, h int, method Downscaler) (*Raster, error) {
	if src.Empty() {
		return nil, fmt.Errorf("%w: empty source", ErrInvalidArgument)
	}
	if w <= 0 || h <= 0 || w > src.width || h > src.height {
		return nil, fmt.Errorf("%w: cannot downscale %dx%d to %dx%d", ErrInvalidArgument, src.width, src.height, w, h)
	}
	if method == nil {
		method = Box{}
	}
	return method.resample(src, w, h), nil
}

func (Box) Name() string { return "box" }

func (Box) resample(src *Raster, w, h int) *Raster {
	kw := float64(src.width) / float64(w)
	kh := float64(src.height) / float64(h)

	out := Blank(w, h)
	i := 0
	for y := range h {
		y0, y1 := centerSpan(y, kh, src.height)
		for x := range w {
			x0, x1 := centerSpan(x, kw, src.width)

			var sr, sg, sb, n int
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					r, g, b := src.at(sx, sy)
					sr += int(r)
					sg += int(g)
					sb += int(b)
					n++
				}
			}
			if n > 0 {
				out.pix[i] = uint8(sr / n)
				out.pix[i+1] = uint8(sg / n)
				out.pix[i+2] = uint8(sb / n)
			}
			i += 3
		}
	}
	return out
}

// centerSpan returns the source pixels [lo, hi) whose centers lie in
// [i*k, (i+1)*k), clamped to the image.
func centerSpan(i int, k float64, limit int) (lo, hi int) {
	lo = int(math.Ceil(float64(i)*k - 0.5))
	hi = int(math.Ceil(float64(i+1)*k - 0.5))
	if lo < 0 {
		lo = 0
	}
	if hi > limit {
		hi = limit
	}
	if hi <= lo {
		if lo >= limit {
			lo = limit - 1
		}
		hi = lo + 1
	}
	return lo, hi
}

func (Bilinear) Name() string { return "bilinear" }

func (Bilinear) resample(src *Raster, w, h int) *Raster {
	kw := float64(src.width) / float64(w)
	kh := float64(src.height) / float64(h)

	out := Blank(w, h)
	i := 0
	for y := range h {
		sy := float64(y) * kh
		y0 := int(sy)
		y1 := min(y0+1, src.height-1)
		fy := sy - float64(y0)
		for x := range w {
			sx := float64(x) * kw
			x0 := int(sx)
			x1 := min(x0+1, src.width-1)
			fx := sx - float64(x0)

			r00, g00, b00 := src.at(x0, y0)
			r10, g10, b10 := src.at(x1, y0)
			r01, g01, b01 := src.at(x0, y1)
			r11, g11, b11 := src.at(x1, y1)

			out.pix[i] = lerp2(r00, r10, r01, r11, fx, fy)
			out.pix[i+1] = lerp2(g00, g10, g01, g11, fx, fy)
			out.pix[i+2] = lerp2(b00, b10, b01, b11, fx, fy)
			i += 3
		}
	}
	return out
}

func lerp2(c00, c10, c01, c11 uint8, fx, fy float64) uint8 {
	top := float64(c00)*(1-fx) + float64(c10)*fx
	bot := float64(c01)*(1-fx) + float64(c11)*fx
	return clampByte(math.Round(top*(1-fy) + bot*fy))
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
