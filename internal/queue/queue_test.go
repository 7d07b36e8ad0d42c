package queue

import (
	"reflect"
	"sort"
	"testing"
)

func TestNextPreviousWrap(t *testing.T) {
	q := New([]string{"a", "b", "c"}, 2)
	if q.Current() != "c" {
		t.Fatalf("expected start at c, got %q", q.Current())
	}
	if got := q.Next(); got != "a" {
		t.Fatalf("expected wrap to a, got %q", got)
	}
	if got := q.Previous(); got != "c" {
		t.Fatalf("expected wrap back to c, got %q", got)
	}
}

func TestFinishedHonorsRepeat(t *testing.T) {
	tests := []struct {
		mode RepeatMode
		want string
		ok   bool
	}{
		{RepeatAll, "a", true},
		{RepeatOne, "b", true},
		{RepeatOff, "", false},
	}
	for _, tt := range tests {
		q := New([]string{"a", "b"}, 1)
		q.Repeat = tt.mode
		got, ok := q.Finished()
		if got != tt.want || ok != tt.ok {
			t.Fatalf("%s: Finished() = %q, %v; want %q, %v", tt.mode, got, ok, tt.want, tt.ok)
		}
	}

	q := New([]string{"a", "b"}, 0)
	q.Repeat = RepeatOff
	if got, ok := q.Finished(); !ok || got != "b" {
		t.Fatalf("expected b before the end, got %q %v", got, ok)
	}
}

func TestEmptyQueue(t *testing.T) {
	q := New(nil, 0)
	if q.Current() != "" || q.Next() != "" || q.Previous() != "" {
		t.Fatal("expected empty results")
	}
	if _, ok := q.Finished(); ok {
		t.Fatal("expected nothing to play")
	}
}

func TestPeek(t *testing.T) {
	q := New([]string{"a", "b", "c", "d"}, 1)
	if got := q.Peek(5); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Fatalf("Peek() = %v", got)
	}
}

func TestRemoveKeepsCurrent(t *testing.T) {
	q := New([]string{"a", "b", "c"}, 2)
	if q.Remove(2) {
		t.Fatal("expected current track to be protected")
	}
	if !q.Remove(0) {
		t.Fatal("expected remove to succeed")
	}
	if q.Current() != "c" || q.Len() != 2 {
		t.Fatalf("expected c of 2 tracks, got %q of %d", q.Current(), q.Len())
	}
}

func TestShuffleVisitsEveryTrack(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}
	q := New(append([]string(nil), paths...), 2)
	q.ToggleShuffle()
	if !q.Shuffled() || q.Current() != "c" {
		t.Fatalf("expected shuffle to keep c current, got %q", q.Current())
	}

	seen := []string{q.Current()}
	for range len(paths) - 1 {
		seen = append(seen, q.Next())
	}
	sort.Strings(seen)
	if !reflect.DeepEqual(seen, paths) {
		t.Fatalf("expected every track once, got %v", seen)
	}

	cur := q.Current()
	q.ToggleShuffle()
	if q.Shuffled() || q.Current() != cur {
		t.Fatalf("expected unshuffle to keep %q, got %q", cur, q.Current())
	}
}

func TestParseRepeat(t *testing.T) {
	for s, want := range map[string]RepeatMode{"off": RepeatOff, "one": RepeatOne, "all": RepeatAll} {
		got, err := ParseRepeat(s)
		if err != nil || got != want {
			t.Fatalf("ParseRepeat(%q) = %v, %v", s, got, err)
		}
		if got.String() != s {
			t.Fatalf("String() = %q, want %q", got.String(), s)
		}
	}
	if _, err := ParseRepeat("twice"); err == nil {
		t.Fatal("expected error")
	}
	if RepeatOff.Next().Next().Next() != RepeatOff {
		t.Fatal("expected repeat cycle of three")
	}
}
