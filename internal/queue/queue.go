// Package queue keeps the play order of the library.
package queue

import "math/rand/v2"

// Queue is an ordered list of track paths. It is only mutated from
// Bubbletea's single-threaded Update loop.
type Queue struct {
	paths []string
	order []int // play position -> index into paths
	pos   int

	shuffled bool
	Repeat   RepeatMode
}

// New creates a Queue positioned at start.
func New(paths []string, start int) *Queue {
	q := &Queue{paths: paths}
	q.resetOrder()
	if start >= 0 && start < len(paths) {
		q.pos = start
	}
	return q
}

func (q *Queue) resetOrder() {
	q.order = make([]int, len(q.paths))
	for i := range q.order {
		q.order[i] = i
	}
}

// Len returns the total number of tracks.
func (q *Queue) Len() int { return len(q.paths) }

// CurrentIndex returns the library index of the current track, or -1 if empty.
func (q *Queue) CurrentIndex() int {
	if len(q.order) == 0 {
		return -1
	}
	return q.order[q.pos]
}

// Current returns the path of the current track, or "" if empty.
func (q *Queue) Current() string {
	i := q.CurrentIndex()
	if i < 0 {
		return ""
	}
	return q.paths[i]
}

// Next moves to the following track, wrapping to the start. Explicit skips
// always wrap; use Finished for end-of-track handling.
func (q *Queue) Next() string {
	if len(q.order) == 0 {
		return ""
	}
	q.pos = (q.pos + 1) % len(q.order)
	return q.Current()
}

// Previous moves to the preceding track, wrapping to the end.
func (q *Queue) Previous() string {
	if len(q.order) == 0 {
		return ""
	}
	q.pos = (q.pos - 1 + len(q.order)) % len(q.order)
	return q.Current()
}

// Finished picks the track to play after the current one ended on its own.
// ok is false when playback should stop.
func (q *Queue) Finished() (path string, ok bool) {
	if len(q.order) == 0 {
		return "", false
	}
	switch q.Repeat {
	case RepeatOne:
		return q.Current(), true
	case RepeatOff:
		if q.pos+1 >= len(q.order) {
			return "", false
		}
	}
	return q.Next(), true
}

// Peek returns up to n paths after the current one, in play order, without
// wrapping.
func (q *Queue) Peek(n int) []string {
	var out []string
	for i := q.pos + 1; i < len(q.order) && len(out) < n; i++ {
		out = append(out, q.paths[q.order[i]])
	}
	return out
}

// Remove drops the track at library index i. The current track cannot be
// removed. Returns false if the index is invalid or is current.
func (q *Queue) Remove(i int) bool {
	if i < 0 || i >= len(q.paths) || i == q.CurrentIndex() {
		return false
	}
	cur := q.CurrentIndex()
	q.paths = append(q.paths[:i], q.paths[i+1:]...)

	order := q.order[:0]
	for _, idx := range q.order {
		switch {
		case idx == i:
			continue
		case idx > i:
			idx--
		}
		order = append(order, idx)
	}
	q.order = order
	if cur > i {
		cur--
	}
	q.seek(cur)
	return true
}

// seek sets pos to the play position of library index i.
func (q *Queue) seek(i int) {
	for p, idx := range q.order {
		if idx == i {
			q.pos = p
			return
		}
	}
}

// Shuffled reports whether shuffle mode is active.
func (q *Queue) Shuffled() bool { return q.shuffled }

// ToggleShuffle switches shuffle mode, keeping the current track. When
// enabled, the current track moves to the front and the rest are permuted.
func (q *Queue) ToggleShuffle() {
	cur := q.CurrentIndex()
	if q.shuffled {
		q.shuffled = false
		q.resetOrder()
		q.seek(cur)
		return
	}
	if len(q.paths) <= 1 {
		return
	}
	q.shuffled = true
	rest := make([]int, 0, len(q.paths)-1)
	for i := range q.paths {
		if i != cur {
			rest = append(rest, i)
		}
	}
	rand.Shuffle(len(rest), func(a, b int) { rest[a], rest[b] = rest[b], rest[a] })
	q.order = append([]int{cur}, rest...)
	q.pos = 0
}
