package utils

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// HasListedSuffix reports whether name ends in a suffix from the ICANN
// section of the public suffix list. Bare tokens from plain lists are
// classified as suffix rules on a heuristic, and this check backs the
// debug logging around that heuristic. It never affects classification.
func HasListedSuffix(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	if name == "" {
		return false
	}
	_, icann := publicsuffix.PublicSuffix(name)
	return icann
}
