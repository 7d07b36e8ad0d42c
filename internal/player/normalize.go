package player

// PlaybackSampleRate is the rate every buffer is normalized to, so one
// output device serves all tracks.
const PlaybackSampleRate = 48000

// mixdown averages interleaved channels into one.
func mixdown(data []float32, channels int) []float32 {
	if channels == 1 {
		return data
	}
	frames := len(data) / channels
	out := make([]float32, frames)
	for i := range frames {
		var sum float32
		for ch := range channels {
			sum += data[i*channels+ch]
		}
		out[i] = clampSample(sum / float32(channels))
	}
	return out
}

// resample converts mono samples from srcRate to dstRate with linear
// interpolation between neighboring source samples.
func resample(src []float32, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || len(src) == 0 {
		return src
	}

	total := int64(len(src)) * int64(dstRate) / int64(srcRate)
	if total == 0 {
		total = 1
	}
	out := make([]float32, total)
	last := len(src) - 1
	for i := range out {
		// position in source frames, kept as a fraction of dstRate
		num := int64(i) * int64(srcRate)
		s0 := int(num / int64(dstRate))
		if s0 > last {
			s0 = last
		}
		s1 := min(s0+1, last)
		frac := float32(num%int64(dstRate)) / float32(dstRate)
		out[i] = src[s0] + (src[s1]-src[s0])*frac
	}
	return out
}

func clampSample(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
