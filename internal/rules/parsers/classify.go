package parsers

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cinmou/singbox-rules/internal/rules/domain"
)

// ipv4CIDR matches bare IPv4 network literals like "1.2.3.0/24".
var ipv4CIDR = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}/\d{1,2}$`)

// Classify turns one normalized, non-empty entry into a Rule. It never
// fails; anything unrecognized becomes domain.Unsupported and is dropped
// by the caller.
//
// Entries of the form "TYPE,VALUE" are handled first (unless the entry is
// a URL, which may legitimately contain commas). Extra comma-separated
// fields such as Clash's ",no-resolve" are ignored. Then bare IPv4 CIDR
// literals, then bare domain-like tokens.
//
// Bare tokens containing a dot and no whitespace or slash are classified
// as suffix rules, not exact matches: most plain block-lists are written
// as suffix lists. This is a best-effort heuristic carried over from the
// established output format; downstream consumers depend on it.
func Classify(entry string) domain.Rule {
	if strings.Contains(entry, ",") && !strings.HasPrefix(entry, "http") {
		parts := strings.Split(entry, ",")
		ruleType := strings.ToUpper(strings.TrimSpace(parts[0]))
		var value string
		if len(parts) > 1 {
			value = strings.TrimSpace(parts[1])
		}
		switch ruleType {
		case "DOMAIN":
			if value != "" {
				return domain.Rule{Kind: domain.KindDomain, Value: value}
			}
		case "DOMAIN-SUFFIX":
			if value != "" {
				return domain.Rule{Kind: domain.KindDomainSuffix, Value: value}
			}
		case "IP-CIDR", "IP-CIDR6":
			if value != "" {
				return domain.Rule{Kind: domain.KindIPNetwork, Value: value}
			}
		}
		// DOMAIN-KEYWORD, PROCESS-NAME, DST-PORT and friends land here.
		return domain.Unsupported
	}

	if ipv4CIDR.MatchString(entry) {
		return domain.Rule{Kind: domain.KindIPNetwork, Value: entry}
	}

	if strings.Contains(entry, ".") && !containsSpace(entry) && !strings.Contains(entry, "/") {
		return domain.Rule{Kind: domain.KindDomainSuffix, Value: entry}
	}

	return domain.Unsupported
}

func containsSpace(s string) bool {
	return strings.ContainsFunc(s, unicode.IsSpace)
}
