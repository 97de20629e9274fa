// Package timespan parses human-entered time spans such as "90", "1.5m" or
// "7d": a fractional number of seconds with an optional s, m, h or d suffix.
package timespan

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var suffixSeconds = map[byte]float64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
}

// Parse interprets s as a duration. The bare number counts seconds; a single
// trailing s, m, h or d scales it. Negative spans are rejected.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time span")
	}

	scale := float64(1)
	last := s[len(s)-1]
	if last < '0' || last > '9' {
		factor, ok := suffixSeconds[last]
		if !ok {
			return 0, fmt.Errorf("unknown suffix %q in time span %q", string(last), s)
		}
		scale = factor
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time span %q", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative time span %q", s)
	}

	return time.Duration(value * scale * float64(time.Second)), nil
}
