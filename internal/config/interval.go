package config

import (
	"strconv"
	"strings"
)

// ParseInterval parses timer strings like "30s", "5m", "1h" or "1500ms" into
// whole seconds. A bare number is taken as seconds. Empty or malformed input
// yields defaultSeconds; negative and zero values pass through unchanged.
func ParseInterval(text string, defaultSeconds int) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return defaultSeconds
	}

	num, mult, div := text, 1, 1
	switch {
	case strings.HasSuffix(text, "ms"):
		num, div = strings.TrimSuffix(text, "ms"), 1000
	case strings.HasSuffix(text, "s"):
		num = strings.TrimSuffix(text, "s")
	case strings.HasSuffix(text, "m"):
		num, mult = strings.TrimSuffix(text, "m"), 60
	case strings.HasSuffix(text, "h"):
		num, mult = strings.TrimSuffix(text, "h"), 3600
	}

	n, err := strconv.Atoi(num)
	if err != nil {
		return defaultSeconds
	}
	return n * mult / div
}
