package app

import (
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

// formatDBQueryForTrace puts a statement on one line for span attributes:
// "--" comments are dropped, whitespace runs collapse and long statements are
// cut at maxTracedQueryLength bytes.
func formatDBQueryForTrace(query string) string {
	var lines []string
	for _, line := range strings.Split(query, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		lines = append(lines, line)
	}

	normalized := strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}
