package imaging

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decode decodes compressed cover art. A failed or empty decode returns an
// empty raster rather than an error so callers can fall back to text only.
func Decode(data []byte) *Raster {
	if len(data) == 0 {
		return Blank(0, 0)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Blank(0, 0)
	}
	return FromImage(img)
}

// FromImage copies img into an RGB24 raster, dropping alpha.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	if b.Empty() {
		return Blank(0, 0)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}

	w, h := b.Dx(), b.Dy()
	out := Blank(w, h)
	for y := range h {
		row := rgba.Pix[y*rgba.Stride:]
		for x := range w {
			si := x * 4
			di := (y*w + x) * 3
			out.pix[di] = row[si]
			out.pix[di+1] = row[si+1]
			out.pix[di+2] = row[si+2]
		}
	}
	return out
}
