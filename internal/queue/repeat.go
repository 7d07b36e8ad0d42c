package queue

import "fmt"

// RepeatMode controls what happens when a track ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

// ParseRepeat maps a config value to a RepeatMode.
func ParseRepeat(s string) (RepeatMode, error) {
	switch s {
	case "off":
		return RepeatOff, nil
	case "one":
		return RepeatOne, nil
	case "all", "":
		return RepeatAll, nil
	}
	return RepeatOff, fmt.Errorf("unknown repeat mode %q", s)
}

// Next cycles off -> all -> one -> off.
func (r RepeatMode) Next() RepeatMode {
	switch r {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

func (r RepeatMode) String() string {
	switch r {
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	default:
		return "off"
	}
}

// Icon returns a visual indicator for the repeat mode.
func (r RepeatMode) Icon() string {
	switch r {
	case RepeatOne:
		return "[repeat one]"
	case RepeatAll:
		return "[repeat]"
	default:
		return ""
	}
}
