package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Format describes a decoded source before normalization.
type Format struct {
	SampleRate int
	Channels   int
}

// pcm is interleaved float samples straight out of a format decoder.
type pcm struct {
	data []float32
	Format
}

// DecodeFile decodes an audio file and normalizes it to a mono buffer at
// PlaybackSampleRate. The returned Format describes the source.
func DecodeFile(path string) (*Buffer, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Format{}, err
	}
	defer f.Close()

	raw, err := decode(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, Format{}, err
	}
	if raw.SampleRate <= 0 || raw.Channels <= 0 {
		return nil, raw.Format, fmt.Errorf("unsupported stream: %d Hz, %d channels", raw.SampleRate, raw.Channels)
	}

	mono := mixdown(raw.data, raw.Channels)
	mono = resample(mono, raw.SampleRate, PlaybackSampleRate)
	return NewBuffer(mono, PlaybackSampleRate), raw.Format, nil
}

// decode detects the format by extension and returns interleaved samples.
func decode(f *os.File, ext string) (pcm, error) {
	switch ext {
	case ".mp3":
		return decodeMP3(f)
	case ".wav":
		return decodeWAV(f)
	case ".flac":
		return decodeFLAC(f)
	case ".ogg":
		return decodeOGG(f)
	default:
		return pcm{}, fmt.Errorf("unsupported format: %s", ext)
	}
}

// --- MP3 decoder ---

// go-mp3 always produces 16-bit little-endian stereo.
func decodeMP3(r io.ReadSeeker) (pcm, error) {
	start, end := mp3GaplessTrim(r)
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return pcm{}, fmt.Errorf("decoding MP3: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return pcm{}, fmt.Errorf("reading MP3: %w", err)
	}

	out := make([]float32, len(raw)/2)
	for i := range out {
		s := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		out[i] = float32(s) / 32768
	}
	out = trimFrames(out, 2, start, end)
	return pcm{data: out, Format: Format{SampleRate: dec.SampleRate(), Channels: 2}}, nil
}

// --- WAV decoder ---

func decodeWAV(r io.ReadSeeker) (pcm, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return pcm{}, fmt.Errorf("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm{}, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	depth := int(dec.BitDepth)
	if depth <= 0 || depth > 32 {
		return pcm{}, fmt.Errorf("unsupported WAV bit depth: %d", depth)
	}
	scale := float32(int64(1) << (depth - 1))

	out := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		if depth == 8 {
			// 8-bit WAV is unsigned
			v -= 128
		}
		out[i] = float32(v) / scale
	}
	return pcm{data: out, Format: Format{SampleRate: int(dec.SampleRate), Channels: int(dec.NumChans)}}, nil
}

// --- FLAC decoder ---

func decodeFLAC(r io.Reader) (pcm, error) {
	stream, err := flac.New(r)
	if err != nil {
		return pcm{}, fmt.Errorf("decoding FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	if info.BitsPerSample == 0 || info.BitsPerSample > 32 {
		return pcm{}, fmt.Errorf("unsupported FLAC bit depth: %d", info.BitsPerSample)
	}
	scale := float32(int64(1) << (info.BitsPerSample - 1))

	out := make([]float32, 0, int(info.NSamples)*channels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pcm{}, fmt.Errorf("decoding FLAC frame: %w", err)
		}
		n := int(frame.Subframes[0].NSamples)
		for i := range n {
			for ch := range channels {
				out = append(out, float32(frame.Subframes[ch].Samples[i])/scale)
			}
		}
	}
	return pcm{data: out, Format: Format{SampleRate: int(info.SampleRate), Channels: channels}}, nil
}

// --- OGG Vorbis decoder ---

func decodeOGG(r io.Reader) (pcm, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return pcm{}, fmt.Errorf("decoding OGG: %w", err)
	}
	return pcm{data: data, Format: Format{SampleRate: format.SampleRate, Channels: format.Channels}}, nil
}
