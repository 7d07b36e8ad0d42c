package media

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestIsSupportedExt(t *testing.T) {
	for _, ext := range []string{".mp3", ".WAV", ".flac", ".ogg"} {
		if !IsSupportedExt(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	if IsSupportedExt(".txt") {
		t.Fatal("expected .txt to be unsupported")
	}
	if !strings.Contains(SupportedExtsList(), ".flac") {
		t.Fatal("expected supported list to mention .flac")
	}
}

func TestScanDirSortsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "A.flac", "c.txt", "d.ogg"} {
		touch(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	want := []string{
		filepath.Join(dir, "A.flac"),
		filepath.Join(dir, "b.mp3"),
		filepath.Join(dir, "d.ogg"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ScanDir() = %v, want %v", got, want)
	}
}

func TestParsePlaylistM3U(t *testing.T) {
	dir := t.TempDir()
	playlist := filepath.Join(dir, "list.m3u")
	content := "\ufeff#EXTM3U\n\nsong1.mp3\n#comment\n\"https://example.com/stream\"\nsub/song2.wav\n"
	if err := os.WriteFile(playlist, []byte(content), 0o644); err != nil {
		t.Fatalf("write playlist: %v", err)
	}

	got, err := ParsePlaylist(playlist)
	if err != nil {
		t.Fatalf("ParsePlaylist: %v", err)
	}
	want := []string{
		filepath.Join(dir, "song1.mp3"),
		filepath.Join(dir, "sub", "song2.wav"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParsePlaylist() = %v, want %v", got, want)
	}
}

func TestParsePlaylistPLS(t *testing.T) {
	dir := t.TempDir()
	playlist := filepath.Join(dir, "list.pls")
	content := "[playlist]\n file1 = one.flac \nTitle1=One\nLength1=120\nFile2=https://example.com/live\nFileX=bad.mp3\nFile3=\n"
	if err := os.WriteFile(playlist, []byte(content), 0o644); err != nil {
		t.Fatalf("write playlist: %v", err)
	}

	got, err := ParsePlaylist(playlist)
	if err != nil {
		t.Fatalf("ParsePlaylist: %v", err)
	}
	want := []string{filepath.Join(dir, "one.flac")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParsePlaylist() = %v, want %v", got, want)
	}
}

func TestFilterPlayable(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "ok.mp3")
	touch(t, valid)
	touch(t, filepath.Join(dir, "nope.txt"))

	got := FilterPlayable([]string{
		valid,
		filepath.Join(dir, "missing.mp3"),
		filepath.Join(dir, "nope.txt"),
		dir,
	})
	if !reflect.DeepEqual(got, []string{valid}) {
		t.Fatalf("FilterPlayable() = %v", got)
	}
}

func TestResolveSingleFilePlaysSiblings(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		touch(t, filepath.Join(dir, name))
	}

	files, start, err := Resolve([]string{filepath.Join(dir, "b.mp3")})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(files) != 3 || start != 1 {
		t.Fatalf("expected 3 files starting at 1, got %v start %d", files, start)
	}
}

func TestResolveDirectoryAndPlaylist(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "lib", "x.ogg"))
	touch(t, filepath.Join(dir, "y.wav"))
	pl := filepath.Join(dir, "mix.m3u8")
	if err := os.WriteFile(pl, []byte("y.wav\nmissing.mp3\n"), 0o644); err != nil {
		t.Fatalf("write playlist: %v", err)
	}

	files, start, err := Resolve([]string{filepath.Join(dir, "lib"), pl})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{filepath.Join(dir, "lib", "x.ogg"), filepath.Join(dir, "y.wav")}
	if !reflect.DeepEqual(files, want) || start != 0 {
		t.Fatalf("Resolve() = %v start %d, want %v", files, start, want)
	}
}

func TestResolveEmptyFails(t *testing.T) {
	if _, _, err := Resolve([]string{t.TempDir()}); err == nil {
		t.Fatal("expected error for a directory without audio")
	}
}
