package domain

// Summary describes one complete build run: when it was generated and,
// per group, where the artifact landed and how many rules each category
// ended up with.
type Summary struct {
	GeneratedAt int64                 `json:"generated_at"` // seconds since epoch
	Sets        map[string]SetSummary `json:"sets"`
}

// SetSummary is the per-group record inside a Summary.
type SetSummary struct {
	JSON         string   `json:"json"` // path of the written ruleset file
	Domain       int      `json:"domain"`
	DomainSuffix int      `json:"domain_suffix"`
	IPCIDR       int      `json:"ip_cidr"`
	Sources      []string `json:"sources"` // feed URLs that fed this group
}
