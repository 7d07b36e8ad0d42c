package player

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olivier-w/cadence/internal/clock"
)

func readFloats(t *testing.T, s *stream, n int) []float32 {
	t.Helper()
	p := make([]byte, n*bytesPerSample)
	got, err := s.Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != len(p) {
		t.Fatalf("expected %d bytes, got %d", len(p), got)
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}
	return out
}

func TestStreamAdvancesClock(t *testing.T) {
	samples := []float32{0.1, 0.2, 0.3, 0.4, 0.5}
	clk := clock.New(len(samples), PlaybackSampleRate)
	clk.Start(time.Now())
	s := newStream(samples, clk)

	got := readFloats(t, s, 3)
	if got[0] != 0.1 || got[2] != 0.3 {
		t.Fatalf("unexpected samples %v", got)
	}
	if clk.Position() != 3 {
		t.Fatalf("expected clock at 3, got %d", clk.Position())
	}

	got = readFloats(t, s, 4)
	if got[1] != 0.5 || got[2] != 0 || got[3] != 0 {
		t.Fatalf("expected tail then silence, got %v", got)
	}
	if clk.Playing() {
		t.Fatal("expected clock to stop at the end of the buffer")
	}
}

func TestStreamSilentWhilePaused(t *testing.T) {
	samples := []float32{1, 1, 1, 1}
	clk := clock.New(len(samples), PlaybackSampleRate)
	now := time.Now()
	clk.Start(now)
	clk.Pause(now)
	s := newStream(samples, clk)

	for i, v := range readFloats(t, s, 4) {
		if v != 0 {
			t.Fatalf("sample %d: expected silence while paused, got %v", i, v)
		}
	}
	if clk.Position() != 0 {
		t.Fatalf("expected clock not to advance while paused, got %d", clk.Position())
	}
}

func TestStreamSilentAfterStop(t *testing.T) {
	samples := []float32{1, 1, 1, 1}
	clk := clock.New(len(samples), PlaybackSampleRate)
	clk.Start(time.Now())
	s := newStream(samples, clk)
	s.stop()

	for _, v := range readFloats(t, s, 2) {
		if v != 0 {
			t.Fatal("expected silence after stop")
		}
	}
	if clk.Position() != 0 {
		t.Fatalf("expected clock untouched after stop, got %d", clk.Position())
	}
}

func TestStreamStopDuringReads(t *testing.T) {
	samples := make([]float32, PlaybackSampleRate)
	clk := clock.New(len(samples), PlaybackSampleRate)
	clk.Start(time.Now())
	s := newStream(samples, clk)

	done := make(chan struct{})
	go func() {
		defer close(done)
		p := make([]byte, 256*bytesPerSample)
		for range 200 {
			if _, err := s.Read(p); err != nil {
				t.Errorf("Read: %v", err)
				return
			}
		}
	}()
	s.stop()
	<-done

	pos := clk.Position()
	readFloats(t, s, 16)
	if clk.Position() != pos {
		t.Fatalf("expected no advance after stop, %d -> %d", pos, clk.Position())
	}
}

func TestOutputWithoutDeviceFails(t *testing.T) {
	o := &Output{}
	clk := clock.New(10, PlaybackSampleRate)
	if err := o.Start(NewBuffer(make([]float32, 10), PlaybackSampleRate), clk); err != ErrNoDevice {
		t.Fatalf("expected ErrNoDevice, got %v", err)
	}
}

func TestOutputVolumeClamps(t *testing.T) {
	o := &Output{volume: 0.5}
	o.AdjustVolume(0.8)
	if o.Volume() != 1 {
		t.Fatalf("expected volume 1, got %v", o.Volume())
	}
	o.SetVolume(-3)
	if o.Volume() != 0 {
		t.Fatalf("expected volume 0, got %v", o.Volume())
	}
}

// wavFile encodes 16-bit PCM as a minimal RIFF/WAVE file.
func wavFile(rate, channels int, samples []int16) []byte {
	var data bytes.Buffer
	binary.Write(&data, binary.LittleEndian, samples)

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+data.Len()))
	b.WriteString("WAVEfmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(channels))
	binary.Write(&b, binary.LittleEndian, uint32(rate))
	binary.Write(&b, binary.LittleEndian, uint32(rate*channels*2))
	binary.Write(&b, binary.LittleEndian, uint16(channels*2))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(data.Len()))
	b.Write(data.Bytes())
	return b.Bytes()
}

func TestLoadWAVNormalizesToMono(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	samples := make([]int16, 48000*2)
	for i := 0; i < len(samples); i += 2 {
		samples[i] = 16384
		samples[i+1] = 0
	}
	if err := os.WriteFile(path, wavFile(48000, 2, samples), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}

	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tr.Buffer.Len() != 48000 {
		t.Fatalf("expected 48000 mono samples, got %d", tr.Buffer.Len())
	}
	if v := tr.Buffer.Samples()[10]; v != 0.25 {
		t.Fatalf("expected mixed sample 0.25, got %v", v)
	}
	if tr.Meta.Title != "tone" {
		t.Fatalf("expected filename title, got %q", tr.Meta.Title)
	}
	if tr.Meta.Duration != "0:01" {
		t.Fatalf("expected duration 0:01, got %q", tr.Meta.Duration)
	}
	if tr.ChannelLabel() != "Stereo" {
		t.Fatalf("expected stereo source, got %s", tr.ChannelLabel())
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestReadMetadataFallsBackToFolderCover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.wav")
	if err := os.WriteFile(path, wavFile(8000, 1, make([]int16, 8)), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Cover.JPG"), []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatalf("write cover: %v", err)
	}

	meta := ReadMetadata(path)
	if string(meta.Cover) != "jpeg bytes" {
		t.Fatalf("expected folder cover, got %q", meta.Cover)
	}
}
