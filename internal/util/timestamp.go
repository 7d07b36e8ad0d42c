package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp parses "m:ss" (or "h:mm:ss") into a duration. Malformed
// input yields 0 so progress display never fails.
func ParseTimestamp(s string) time.Duration {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0
		}
		if i > 0 && n >= 60 {
			return 0
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second
}
