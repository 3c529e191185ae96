// Package parsers turns raw feed text into classified rules. It handles
// Clash rule-provider payload documents, "TYPE,VALUE" rule lines, bare
// CIDR literals and plain domain lists. Anything it does not understand
// is dropped silently; parsing never fails.
package parsers

import "strings"

// Comment introducers are only honored when preceded by whitespace, so
// tokens like "//" inside URLs or values are left alone.
var commentSeps = []string{" #", " ;", " //"}

// StripComment trims a raw line and removes an inline trailing comment.
// Returns the empty string when nothing useful remains.
func StripComment(line string) string {
	line = strings.TrimPrefix(line, "\uFEFF")
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	for _, sep := range commentSeps {
		if idx := strings.Index(line, sep); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
	}
	return strings.TrimSpace(line)
}
