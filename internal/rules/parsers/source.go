package parsers

import (
	"strings"

	logpkg "github.com/cinmou/singbox-rules/internal/rules/common/log"
	"github.com/cinmou/singbox-rules/internal/rules/common/utils"
	"github.com/cinmou/singbox-rules/internal/rules/domain"
)

// ParseSource classifies every entry of one source text into a partial,
// not yet deduplicated RuleSet. Structured rule-provider payloads are
// unwrapped first; everything else is read line by line. The source
// string only labels log output.
func ParseSource(text, source string, logger logpkg.Logger) domain.RuleSet {
	entries, structured := PayloadEntries(text)
	if !structured {
		entries = strings.Split(text, "\n")
	}
	logger.Debug(map[string]any{
		"source":     source,
		"structured": structured,
		"entries":    len(entries),
	}, "parse_source_start")

	var rs domain.RuleSet
	for _, raw := range entries {
		entry := StripComment(raw)
		if entry == "" {
			continue
		}
		rule := Classify(entry)
		if !rule.Supported() {
			logger.Debug(map[string]any{"source": source, "entry": entry}, "skip_unsupported")
			continue
		}
		if rule.Kind == domain.KindDomainSuffix && !utils.HasListedSuffix(rule.Value) {
			logger.Debug(map[string]any{"source": source, "value": rule.Value}, "suffix_without_listed_tld")
		}
		rs.Append(rule)
	}

	logger.Debug(map[string]any{
		"source":        source,
		"domain":        len(rs.Domains),
		"domain_suffix": len(rs.Suffixes),
		"ip_cidr":       len(rs.Networks),
	}, "parse_source_done")
	return rs
}
