package media

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ParsePlaylist reads a local .m3u/.m3u8/.pls file and returns its entries
// as absolute paths. Relative entries are resolved against the playlist's
// directory; remote URLs are dropped.
func ParsePlaylist(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsPlaylistExt(ext) {
		return nil, fmt.Errorf("unsupported playlist format %s", ext)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("playlist is not valid UTF-8")
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	baseDir := filepath.Dir(abs)

	var entries []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		entry, ok := playlistEntry(strings.TrimSpace(scanner.Text()), ext == ".pls")
		if !ok || isRemote(entry) {
			continue
		}
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(baseDir, entry)
		}
		entries = append(entries, filepath.Clean(entry))
	}
	return entries, scanner.Err()
}

// playlistEntry extracts the file reference from one playlist line.
func playlistEntry(line string, pls bool) (string, bool) {
	if !pls {
		if line == "" || strings.HasPrefix(line, "#") {
			return "", false
		}
		return strings.Trim(line, `"`), true
	}

	key, val, ok := strings.Cut(line, "=")
	if !ok {
		return "", false
	}
	key = strings.ToLower(strings.TrimSpace(key))
	val = strings.TrimSpace(val)
	num := strings.TrimPrefix(key, "file")
	if val == "" || num == key || num == "" || strings.Trim(num, "0123456789") != "" {
		return "", false
	}
	return val, true
}

func isRemote(entry string) bool {
	return strings.Contains(entry, "://")
}

// FilterPlayable keeps only existing, non-directory, supported audio files.
func FilterPlayable(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() || !IsSupportedExt(filepath.Ext(p)) {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		out = append(out, p)
	}
	return out
}
