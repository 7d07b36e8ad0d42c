package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir returns all supported audio files directly inside dir, sorted
// alphabetically (case-insensitive).
func ScanDir(dir string) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSupportedExt(filepath.Ext(e.Name())) {
			continue
		}
		files = append(files, filepath.Join(absDir, e.Name()))
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}

// Resolve expands command line arguments into playable files. Directories
// are scanned, playlists parsed, and plain files kept if supported. start is
// the index of the first file named explicitly when a single file was given
// together with its siblings.
func Resolve(args []string) (files []string, start int, err error) {
	if len(args) == 1 {
		info, statErr := os.Stat(args[0])
		if statErr == nil && !info.IsDir() && IsSupportedExt(filepath.Ext(args[0])) {
			return siblings(args[0])
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, err
		}
		switch {
		case info.IsDir():
			found, err := ScanDir(arg)
			if err != nil {
				return nil, 0, err
			}
			files = append(files, found...)
		case IsPlaylistExt(filepath.Ext(arg)):
			entries, err := ParsePlaylist(arg)
			if err != nil {
				return nil, 0, err
			}
			files = append(files, FilterPlayable(entries)...)
		case IsSupportedExt(filepath.Ext(arg)):
			files = append(files, FilterPlayable([]string{arg})...)
		default:
			return nil, 0, fmt.Errorf("unsupported format %s (supported: %s)", filepath.Ext(arg), SupportedExtsList())
		}
	}
	if len(files) == 0 {
		return nil, 0, fmt.Errorf("no playable files found")
	}
	return files, 0, nil
}

// siblings plays the directory of path, starting at path.
func siblings(path string) ([]string, int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, 0, err
	}
	files, err := ScanDir(filepath.Dir(abs))
	if err != nil {
		return []string{abs}, 0, nil
	}
	for i, f := range files {
		if f == abs {
			return files, i, nil
		}
	}
	return []string{abs}, 0, nil
}
