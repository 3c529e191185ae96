package domain

// RuleSet holds the classified rules for one named group, split into the
// three supported categories. During per-source classification the slices
// are plain accumulators; the final, published form is deduplicated and
// sorted by the aggregator so output is reproducible across runs.
type RuleSet struct {
	Domains  []string // exact domain matches
	Suffixes []string // domain suffix matches
	Networks []string // CIDR network literals
}

// Append adds a classified rule to its category. Unsupported rules are
// ignored, which keeps the caller's loop free of error handling.
func (rs *RuleSet) Append(r Rule) {
	if !r.Supported() {
		return
	}
	switch r.Kind {
	case KindDomain:
		rs.Domains = append(rs.Domains, r.Value)
	case KindDomainSuffix:
		rs.Suffixes = append(rs.Suffixes, r.Value)
	case KindIPNetwork:
		rs.Networks = append(rs.Networks, r.Value)
	}
}

// Empty reports whether all three categories are empty.
func (rs RuleSet) Empty() bool {
	return len(rs.Domains) == 0 && len(rs.Suffixes) == 0 && len(rs.Networks) == 0
}

// Len returns the total number of rules across all categories.
func (rs RuleSet) Len() int {
	return len(rs.Domains) + len(rs.Suffixes) + len(rs.Networks)
}
