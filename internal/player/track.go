package player

import (
	"fmt"
	"os"

	"github.com/olivier-w/cadence/internal/util"
)

// Track is a fully loaded song: tags, cover bytes and decoded samples.
type Track struct {
	Path    string
	Meta    Metadata
	Buffer  *Buffer
	Source  Format
	Bitrate int // kbps, estimated from file size
}

// Load reads tags and decodes the whole file into memory.
func Load(path string) (*Track, error) {
	buf, src, err := DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	meta := ReadMetadata(path)
	meta.Duration = util.FormatDuration(buf.Duration())

	t := &Track{
		Path:   path,
		Meta:   meta,
		Buffer: buf,
		Source: src,
	}
	if info, err := os.Stat(path); err == nil {
		if secs := buf.Duration().Seconds(); secs > 0 {
			t.Bitrate = int(float64(info.Size()) * 8 / secs / 1000)
		}
	}
	return t, nil
}

// ChannelLabel describes the source channel layout.
func (t *Track) ChannelLabel() string {
	switch t.Source.Channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return "Multi"
	}
}

// TechLine is the status line shown under the progress bar.
func (t *Track) TechLine() string {
	return fmt.Sprintf("%d kbps | %.1f kHz | %s", t.Bitrate, float64(t.Source.SampleRate)/1000, t.ChannelLabel())
}
