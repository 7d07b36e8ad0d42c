package player

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds song information.
type Metadata struct {
	Title  string
	Artist string
	Album  string
	// Duration is the track length as "m:ss".
	Duration string
	Cover    []byte
}

// ReadMetadata reads ID3v2 tags and the attached cover picture, falling back
// to the filename for the title.
func ReadMetadata(path string) Metadata {
	var m Metadata
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err == nil {
		defer tag.Close()
		m.Title = strings.TrimSpace(tag.Title())
		m.Artist = strings.TrimSpace(tag.Artist())
		m.Album = strings.TrimSpace(tag.Album())
		m.Cover = coverArt(tag)
	}

	if len(m.Cover) == 0 {
		m.Cover = folderCover(filepath.Dir(path))
	}
	if m.Title == "" {
		base := filepath.Base(path)
		m.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return m
}

// coverArt returns the front cover if tagged as such, else the first
// attached picture.
func coverArt(tag *id3v2.Tag) []byte {
	var first []byte
	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return pic.Picture
		}
		if first == nil {
			first = pic.Picture
		}
	}
	return first
}

var folderCoverNames = []string{"cover", "folder", "front", "album"}

// folderCover reads a cover image stored next to the audio files, for
// albums whose files carry no embedded picture.
func folderCover(dir string) []byte {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, want := range folderCoverNames {
		for _, e := range entries {
			name := e.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if e.IsDir() || !strings.EqualFold(strings.TrimSuffix(name, filepath.Ext(name)), want) {
				continue
			}
			switch ext {
			case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp":
			default:
				continue
			}
			if data, err := os.ReadFile(filepath.Join(dir, name)); err == nil && len(data) > 0 {
				return data
			}
		}
	}
	return nil
}
