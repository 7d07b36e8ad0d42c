package imaging

// CoverOptions describes how cover art is turned into a glyph frame.
type CoverOptions struct {
	Width  int
	Height int
	Method Downscaler
	Tone   Tone
	Ramp   string
}

// Cover decodes data and renders it as a glyph frame no larger than
// opts.Width x opts.Height. Sources smaller than the target are used at their
// own size since Downscale never enlarges. Any failure yields an empty frame.
func Cover(data []byte, opts CoverOptions) Frame {
	src := Decode(data)
	if src.Empty() {
		return Frame{}
	}

	w := min(opts.Width, src.Width())
	h := min(opts.Height, src.Height())
	small, err := Downscale(src, w, h, opts.Method)
	if err != nil {
		return Frame{}
	}
	return ToASCII(small, opts.Tone, opts.Ramp)
}
