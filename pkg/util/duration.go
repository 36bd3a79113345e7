package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var durationRe = regexp.MustCompile(`(\d+)\s*([smhdw])`)

var unitSeconds = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
	"w": 604800,
}

// ParseDuration parses strings like "30s", "10m", "1h30m", "2d" into seconds.
// Returns an error for empty or unrecognized input so callers can reject bad
// admin input with a message instead of silently clamping.
func ParseDuration(s string) (int64, error) {
	matches := durationRe.FindAllStringSubmatch(strings.ToLower(s), -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration %q (use forms like 30s, 10m, 1h, 2d, 1w)", s)
	}

	var total int64
	for _, m := range matches {
		amount, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		total += amount * unitSeconds[m[2]]
	}

	if total <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return total, nil
}

// FormatDuration renders a second count as a human-readable single unit.
func FormatDuration(seconds int64) string {
	plural := func(n int64, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	switch {
	case seconds < 60:
		return plural(seconds, "second")
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	default:
		return plural(seconds/86400, "day")
	}
}

// Truncate shortens text for embed fields, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
