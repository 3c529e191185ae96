package domain

import "fmt"

// RuleKind identifies how a classified entry is meant to match traffic.
//
// domain        - exact domain match
// domain_suffix - matches the domain and any subdomain
// ip_cidr       - CIDR network literal
type RuleKind uint8

const (
	// KindUnsupported marks entries the classifier recognizes but does not
	// handle (DOMAIN-KEYWORD, PROCESS-NAME, port rules, ...) as well as
	// entries it cannot interpret at all. These carry no value and are
	// dropped from output.
	KindUnsupported RuleKind = iota
	// KindDomain is an exact domain match rule.
	KindDomain
	// KindDomainSuffix matches the domain and all of its subdomains.
	KindDomainSuffix
	// KindIPNetwork is a CIDR network literal.
	KindIPNetwork
)

// String returns a stable string representation of the rule kind,
// matching the category names used in the serialized ruleset.
func (k RuleKind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindDomainSuffix:
		return "domain_suffix"
	case KindIPNetwork:
		return "ip_cidr"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("RuleKind(%d)", k)
	}
}

// Rule is a single classified entry from a source feed.
//
// Value is the trimmed, comment-free textual payload. It is never empty
// for the three supported kinds; unsupported rules carry no value.
type Rule struct {
	Kind  RuleKind
	Value string
}

// Unsupported is the zero rule every unclassifiable entry collapses to.
var Unsupported = Rule{Kind: KindUnsupported}

// Supported reports whether the rule belongs in the output at all.
func (r Rule) Supported() bool {
	return r.Kind != KindUnsupported && r.Value != ""
}
