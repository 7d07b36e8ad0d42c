package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const mp3DecoderDelaySamples = 529

var errNotLayer3 = errors.New("not an mpeg layer iii frame")

// mp3GaplessTrim reads the LAME encoder delay and padding from the Xing/Info
// frame and returns how many samples per channel to drop from each end of
// the decoded stream. Files without the tag yield zeros. The read position
// of r is restored.
func mp3GaplessTrim(r io.ReadSeeker) (start, end int) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, 0
	}
	defer r.Seek(pos, io.SeekStart)

	frameOffset, err := firstMP3FrameOffset(r)
	if err != nil {
		return 0, 0
	}
	if _, err := r.Seek(frameOffset, io.SeekStart); err != nil {
		return 0, 0
	}

	head := make([]byte, 4)
	if _, err := io.ReadFull(r, head); err != nil {
		return 0, 0
	}
	xingOffset, err := mp3XingOffset(head)
	if err != nil {
		return 0, 0
	}
	if _, err := r.Seek(frameOffset+int64(xingOffset), io.SeekStart); err != nil {
		return 0, 0
	}

	buf := make([]byte, 256)
	n, _ := io.ReadFull(r, buf)
	return parseLAMEGapless(buf[:n])
}

// firstMP3FrameOffset skips a leading ID3v2 tag.
func firstMP3FrameOffset(r io.ReadSeeker) (int64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	header := make([]byte, 10)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, err
	}
	if !bytes.Equal(header[:3], []byte("ID3")) {
		return 0, nil
	}
	size := int(header[6]&0x7f)<<21 | int(header[7]&0x7f)<<14 | int(header[8]&0x7f)<<7 | int(header[9]&0x7f)
	footer := 0
	if header[5]&0x10 != 0 {
		footer = 10
	}
	return int64(10 + size + footer), nil
}

// mp3XingOffset returns where the Xing/Info tag starts inside the first
// frame: after the header, the optional CRC and the side information.
func mp3XingOffset(b []byte) (int, error) {
	h := binary.BigEndian.Uint32(b)
	if h>>21 != 0x7ff {
		return 0, errNotLayer3
	}
	version := (h >> 19) & 0x3
	layer := (h >> 17) & 0x3
	if layer != 0x1 || version == 0x1 {
		return 0, errNotLayer3
	}

	mpeg1 := version == 0x3
	mono := (h>>6)&0x3 == 0x3
	side := 17
	switch {
	case mpeg1 && !mono:
		side = 32
	case !mpeg1 && mono:
		side = 9
	}
	crc := 0
	if (h>>16)&0x1 == 0 {
		crc = 2
	}
	return 4 + crc + side, nil
}

func parseLAMEGapless(b []byte) (start, end int) {
	if len(b) < 8 {
		return 0, 0
	}
	if tag := string(b[:4]); tag != "Xing" && tag != "Info" {
		return 0, 0
	}

	flags := binary.BigEndian.Uint32(b[4:8])
	offset := 8
	for _, f := range []struct {
		bit  uint32
		size int
	}{{0x1, 4}, {0x2, 4}, {0x4, 100}, {0x8, 4}} {
		if flags&f.bit != 0 {
			offset += f.size
		}
	}
	if len(b) < offset+24 {
		return 0, 0
	}

	dp := b[offset+21 : offset+24]
	delay := int(dp[0])<<4 | int(dp[1]>>4)
	padding := int(dp[1]&0x0f)<<8 | int(dp[2])
	if delay == 0 && padding == 0 {
		return 0, 0
	}
	return delay + mp3DecoderDelaySamples, max(padding-mp3DecoderDelaySamples, 0)
}

// trimFrames drops start frames from the front and end frames from the back
// of interleaved samples.
func trimFrames(data []float32, channels, start, end int) []float32 {
	frames := len(data) / channels
	if start+end >= frames {
		return data
	}
	return data[start*channels : (frames-end)*channels]
}
