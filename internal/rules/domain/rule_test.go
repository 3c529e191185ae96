package domain

import "testing"

func TestRuleKindString(t *testing.T) {
	cases := []struct {
		kind RuleKind
		want string
	}{
		{KindDomain, "domain"},
		{KindDomainSuffix, "domain_suffix"},
		{KindIPNetwork, "ip_cidr"},
		{KindUnsupported, "unsupported"},
		{RuleKind(42), "RuleKind(42)"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("RuleKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestRuleSupported(t *testing.T) {
	if Unsupported.Supported() {
		t.Error("Unsupported.Supported() = true, want false")
	}
	if (Rule{Kind: KindDomain, Value: ""}).Supported() {
		t.Error("empty-value rule must not be supported")
	}
	if !(Rule{Kind: KindDomain, Value: "example.com"}).Supported() {
		t.Error("domain rule with value must be supported")
	}
}

func TestRuleSetAppendAndCounts(t *testing.T) {
	var rs RuleSet
	if !rs.Empty() {
		t.Fatal("zero RuleSet must be empty")
	}

	rs.Append(Rule{Kind: KindDomain, Value: "example.com"})
	rs.Append(Rule{Kind: KindDomainSuffix, Value: "ads.example.net"})
	rs.Append(Rule{Kind: KindIPNetwork, Value: "1.2.3.0/24"})
	rs.Append(Unsupported)

	if rs.Empty() {
		t.Error("RuleSet with rules must not be empty")
	}
	if rs.Len() != 3 {
		t.Errorf("Len() = %d, want 3", rs.Len())
	}
	if len(rs.Domains) != 1 || len(rs.Suffixes) != 1 || len(rs.Networks) != 1 {
		t.Errorf("unexpected category sizes: %+v", rs)
	}
}
